package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bec-billdesk/internal/constants"
	"github.com/bec-billdesk/internal/models"
	"github.com/bec-billdesk/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLookupServiceTest(t *testing.T) (*LookupService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:lookup_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Student{}, &models.Payment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewLookupService(
		repository.NewPaymentRepository(db),
		repository.NewStudentRepository(db),
	), db
}

func TestLookupEmptyQueryRejected(t *testing.T) {
	svc, _ := setupLookupServiceTest(t)
	if _, err := svc.Lookup("   "); !errors.Is(err, ErrLookupQueryRequired) {
		t.Fatalf("want ErrLookupQueryRequired got %v", err)
	}
}

func TestLookupNoMatchIsFoundFalse(t *testing.T) {
	svc, _ := setupLookupServiceTest(t)
	result, err := svc.Lookup("no-such-reference")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if result.Found {
		t.Fatalf("want found=false got %+v", result)
	}
}

func TestLookupResolvesStudentName(t *testing.T) {
	svc, db := setupLookupServiceTest(t)
	if err := db.Create(&models.Student{
		USN:      "2BA21CS001",
		Name:     "Ravi Kulkarni",
		PaidFees: models.StringList{},
	}).Error; err != nil {
		t.Fatalf("create student failed: %v", err)
	}

	hash := "0xlookup01"
	payment := models.Payment{
		USN:             "2BA21CS001",
		FeeIDs:          models.StringList{"tuition"},
		Amount:          models.NewMoney(75000),
		Method:          constants.PaymentMethodCrypto,
		Channel:         constants.PaymentChannelOnline,
		Status:          constants.PaymentStatusCompleted,
		TransactionHash: &hash,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	result, err := svc.Lookup("0xlookup01")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !result.Found || result.Payment == nil || result.Payment.ID != payment.ID {
		t.Fatalf("lookup result %+v want payment %s", result, payment.ID)
	}
	if result.StudentName != "Ravi Kulkarni" {
		t.Fatalf("student name want Ravi Kulkarni got %s", result.StudentName)
	}
}

func TestLookupMissingStudentUsesPlaceholder(t *testing.T) {
	svc, db := setupLookupServiceTest(t)

	hash := "0xorphan01"
	payment := models.Payment{
		USN:             "2BA19ME042",
		FeeIDs:          models.StringList{"examination"},
		Amount:          models.NewMoney(5000),
		Method:          constants.PaymentMethodUPI,
		Channel:         constants.PaymentChannelOnline,
		Status:          constants.PaymentStatusCompleted,
		TransactionHash: &hash,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	result, err := svc.Lookup("0xorphan01")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !result.Found {
		t.Fatal("want found=true")
	}
	if result.StudentName != "Unknown" {
		t.Fatalf("student name want Unknown got %s", result.StudentName)
	}
}

func TestLookupPrefixTieBreaksMostRecent(t *testing.T) {
	svc, db := setupLookupServiceTest(t)

	older := models.Payment{
		ID:        "aa11older-0000-0000-0000-000000000001",
		USN:       "2BA21CS001",
		FeeIDs:    models.StringList{"tuition"},
		Amount:    models.NewMoney(75000),
		Method:    constants.PaymentMethodUPI,
		Channel:   constants.PaymentChannelOnline,
		Status:    constants.PaymentStatusCompleted,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := models.Payment{
		ID:      "aa11newer-0000-0000-0000-000000000002",
		USN:     "2BA21CS002",
		FeeIDs:  models.StringList{"tuition"},
		Amount:  models.NewMoney(75000),
		Method:  constants.PaymentMethodUPI,
		Channel: constants.PaymentChannelOnline,
		Status:  constants.PaymentStatusCompleted,
	}
	for _, p := range []*models.Payment{&older, &newer} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create payment failed: %v", err)
		}
	}

	result, err := svc.Lookup("aa11")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !result.Found || result.Payment.ID != newer.ID {
		t.Fatalf("tie should resolve to most recent, got %+v", result.Payment)
	}
}
