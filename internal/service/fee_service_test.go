package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bec-billdesk/internal/models"
	"github.com/bec-billdesk/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupFeeServiceTest(t *testing.T) (*FeeService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:fee_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Student{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewFeeService(repository.NewStudentRepository(db)), db
}

func TestFeeOverviewPartitionsByLedger(t *testing.T) {
	svc, db := setupFeeServiceTest(t)
	if err := db.Create(&models.Student{
		USN:      "2BA21CS001",
		Name:     "Test Student",
		PaidFees: models.StringList{"tuition", "examination"},
	}).Error; err != nil {
		t.Fatalf("create student failed: %v", err)
	}

	overview, err := svc.Overview("2BA21CS001")
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if len(overview.Paid) != 2 {
		t.Fatalf("paid want 2 got %d", len(overview.Paid))
	}
	if len(overview.Pending) != 2 {
		t.Fatalf("pending want 2 got %d", len(overview.Pending))
	}
	if overview.Pending[0].ID != "development" || overview.Pending[1].ID != "hostel" {
		t.Fatalf("pending order want [development hostel] got %v", overview.Pending)
	}
}

func TestFeeOverviewMissingStudent(t *testing.T) {
	svc, _ := setupFeeServiceTest(t)
	if _, err := svc.Overview("2BA21CS404"); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("want ErrStudentNotFound got %v", err)
	}
}
