package service

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/bec-billdesk/internal/config"
	"github.com/bec-billdesk/internal/constants"
	"github.com/bec-billdesk/internal/models"
	"github.com/bec-billdesk/internal/queue"
	"github.com/bec-billdesk/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPaymentServiceTest(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	svc := NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewStudentRepository(db),
		queueClient,
		config.InstitutionConfig{Code: "BEC", Name: "Basaveshwar Engineering College"},
	)
	return svc, db
}

func createServiceTestStudent(t *testing.T, db *gorm.DB, usn string) {
	t.Helper()
	student := models.Student{
		USN:        usn,
		Name:       "Anita Deshpande",
		Degree:     "B.E.",
		Department: "Computer Science",
		Category:   "Merit",
		PaidFees:   models.StringList{},
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student failed: %v", err)
	}
}

func TestCreatePaymentOnlineCompletesAndUnionsLedger(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	createServiceTestStudent(t, db, "2BA21CS001")

	payment, err := svc.CreatePayment(CreatePaymentInput{
		USN:            "2BA21CS001",
		FeeIDs:         []string{"tuition", "examination"},
		Amount:         80000,
		Method:         constants.PaymentMethodUPI,
		TransactionRef: "UPI-REF-0001",
	})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("status want %s got %s", constants.PaymentStatusCompleted, payment.Status)
	}
	if payment.Channel != constants.PaymentChannelOnline {
		t.Fatalf("channel want online got %s", payment.Channel)
	}
	if payment.TransactionHash == nil || *payment.TransactionHash != "UPI-REF-0001" {
		t.Fatalf("transaction hash not stored: %v", payment.TransactionHash)
	}
	if payment.ChallanID != nil {
		t.Fatalf("online payment should carry no challan, got %v", *payment.ChallanID)
	}

	var student models.Student
	if err := db.Where("usn = ?", "2BA21CS001").First(&student).Error; err != nil {
		t.Fatalf("load student failed: %v", err)
	}
	if len(student.PaidFees) != 2 || !student.PaidFees.Contains("tuition") || !student.PaidFees.Contains("examination") {
		t.Fatalf("ledger want [tuition examination] got %v", student.PaidFees)
	}
}

func TestCreatePaymentCashParksBehindChallan(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	createServiceTestStudent(t, db, "2BA21CS001")

	payment, err := svc.CreatePayment(CreatePaymentInput{
		USN:    "2BA21CS001",
		FeeIDs: []string{"hostel"},
		Amount: 45000,
		Method: constants.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("create cash payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusPendingBankVerification {
		t.Fatalf("status want %s got %s", constants.PaymentStatusPendingBankVerification, payment.Status)
	}
	if payment.Channel != constants.PaymentChannelCash {
		t.Fatalf("channel want cash got %s", payment.Channel)
	}
	if payment.TransactionHash != nil {
		t.Fatalf("cash payment should carry no transaction hash, got %v", *payment.TransactionHash)
	}
	if payment.ChallanID == nil {
		t.Fatal("challan id not generated")
	}
	challanPattern := regexp.MustCompile(`^BEC-CH-\d{6}-S001$`)
	if !challanPattern.MatchString(*payment.ChallanID) {
		t.Fatalf("challan id %q does not match expected shape", *payment.ChallanID)
	}

	var student models.Student
	if err := db.Where("usn = ?", "2BA21CS001").First(&student).Error; err != nil {
		t.Fatalf("load student failed: %v", err)
	}
	if len(student.PaidFees) != 0 {
		t.Fatalf("ledger should stay empty until verification, got %v", student.PaidFees)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	createServiceTestStudent(t, db, "2BA21CS001")

	cases := []struct {
		name  string
		input CreatePaymentInput
		want  error
	}{
		{
			name:  "no fee ids",
			input: CreatePaymentInput{USN: "2BA21CS001", FeeIDs: nil, Amount: 100, Method: constants.PaymentMethodUPI, TransactionRef: "R1"},
			want:  ErrFeeIDsRequired,
		},
		{
			name:  "repeated fee id",
			input: CreatePaymentInput{USN: "2BA21CS001", FeeIDs: []string{"tuition", "tuition"}, Amount: 150000, Method: constants.PaymentMethodUPI, TransactionRef: "R2"},
			want:  ErrFeeIDRepeated,
		},
		{
			name:  "unknown fee id",
			input: CreatePaymentInput{USN: "2BA21CS001", FeeIDs: []string{"parking"}, Amount: 100, Method: constants.PaymentMethodUPI, TransactionRef: "R3"},
			want:  ErrUnknownFeeID,
		},
		{
			name:  "non positive amount",
			input: CreatePaymentInput{USN: "2BA21CS001", FeeIDs: []string{"tuition"}, Amount: 0, Method: constants.PaymentMethodUPI, TransactionRef: "R4"},
			want:  ErrAmountInvalid,
		},
		{
			name:  "amount mismatch",
			input: CreatePaymentInput{USN: "2BA21CS001", FeeIDs: []string{"tuition"}, Amount: 74999, Method: constants.PaymentMethodUPI, TransactionRef: "R5"},
			want:  ErrAmountMismatch,
		},
		{
			name:  "unknown method",
			input: CreatePaymentInput{USN: "2BA21CS001", FeeIDs: []string{"tuition"}, Amount: 75000, Method: "cheque", TransactionRef: "R6"},
			want:  ErrMethodInvalid,
		},
		{
			name:  "online without reference",
			input: CreatePaymentInput{USN: "2BA21CS001", FeeIDs: []string{"tuition"}, Amount: 75000, Method: constants.PaymentMethodCrypto},
			want:  ErrTransactionRefRequired,
		},
	}
	for _, tc := range cases {
		if _, err := svc.CreatePayment(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}
}

func TestCreatePaymentDuplicateTransactionRef(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	createServiceTestStudent(t, db, "2BA21CS001")
	createServiceTestStudent(t, db, "2BA21CS002")

	input := CreatePaymentInput{
		USN:            "2BA21CS001",
		FeeIDs:         []string{"tuition"},
		Amount:         75000,
		Method:         constants.PaymentMethodCrypto,
		TransactionRef: "0xsamehash",
	}
	if _, err := svc.CreatePayment(input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	input.USN = "2BA21CS002"
	if _, err := svc.CreatePayment(input); !errors.Is(err, ErrDuplicateReference) {
		t.Fatalf("want ErrDuplicateReference got %v", err)
	}

	// The losing attempt must not have touched the second ledger.
	var student models.Student
	if err := db.Where("usn = ?", "2BA21CS002").First(&student).Error; err != nil {
		t.Fatalf("load student failed: %v", err)
	}
	if len(student.PaidFees) != 0 {
		t.Fatalf("ledger should be empty after rolled-back create, got %v", student.PaidFees)
	}
}

func TestVerifyCashPaymentFlipsStatusAndUnionsLedger(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	createServiceTestStudent(t, db, "2BA21CS001")

	payment, err := svc.CreatePayment(CreatePaymentInput{
		USN:    "2BA21CS001",
		FeeIDs: []string{"hostel", "examination"},
		Amount: 50000,
		Method: constants.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("create cash payment failed: %v", err)
	}

	if _, err := svc.VerifyCashPayment("2BA21CS001", payment.ID, ""); !errors.Is(err, ErrBankReferenceRequired) {
		t.Fatalf("want ErrBankReferenceRequired got %v", err)
	}
	if _, err := svc.VerifyCashPayment("2BA21CS999", payment.ID, "UTR100"); !errors.Is(err, ErrPaymentNotFoundOrVerified) {
		t.Fatalf("foreign usn: want ErrPaymentNotFoundOrVerified got %v", err)
	}

	verified, err := svc.VerifyCashPayment("2BA21CS001", payment.ID, "UTR100")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified.Status != constants.PaymentStatusCompleted {
		t.Fatalf("status want %s got %s", constants.PaymentStatusCompleted, verified.Status)
	}
	if verified.BankReferenceID != "UTR100" {
		t.Fatalf("bank reference want UTR100 got %s", verified.BankReferenceID)
	}

	var student models.Student
	if err := db.Where("usn = ?", "2BA21CS001").First(&student).Error; err != nil {
		t.Fatalf("load student failed: %v", err)
	}
	if len(student.PaidFees) != 2 || !student.PaidFees.Contains("hostel") || !student.PaidFees.Contains("examination") {
		t.Fatalf("ledger want [hostel examination] got %v", student.PaidFees)
	}

	// Replay is rejected and the ledger is unchanged.
	if _, err := svc.VerifyCashPayment("2BA21CS001", payment.ID, "UTR101"); !errors.Is(err, ErrPaymentNotFoundOrVerified) {
		t.Fatalf("replay: want ErrPaymentNotFoundOrVerified got %v", err)
	}
	got, err := svc.GetPayment("2BA21CS001", payment.ID)
	if err != nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if got.BankReferenceID != "UTR100" {
		t.Fatalf("replay must not overwrite bank reference, got %s", got.BankReferenceID)
	}
}

func TestVerifyCashPaymentConcurrentSingleWinner(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	createServiceTestStudent(t, db, "2BA21CS001")

	payment, err := svc.CreatePayment(CreatePaymentInput{
		USN:    "2BA21CS001",
		FeeIDs: []string{"development"},
		Amount: 15000,
		Method: constants.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("create cash payment failed: %v", err)
	}

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.VerifyCashPayment("2BA21CS001", payment.ID, fmt.Sprintf("UTR%03d", n))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrPaymentNotFoundOrVerified):
		default:
			t.Fatalf("unexpected verify error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("winners want 1 got %d", wins)
	}

	var student models.Student
	if err := db.Where("usn = ?", "2BA21CS001").First(&student).Error; err != nil {
		t.Fatalf("load student failed: %v", err)
	}
	if len(student.PaidFees) != 1 || student.PaidFees[0] != "development" {
		t.Fatalf("ledger want [development] got %v", student.PaidFees)
	}
}

func TestVerifyOnlinePaymentRejected(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	createServiceTestStudent(t, db, "2BA21CS001")

	payment, err := svc.CreatePayment(CreatePaymentInput{
		USN:            "2BA21CS001",
		FeeIDs:         []string{"tuition"},
		Amount:         75000,
		Method:         constants.PaymentMethodNetbanking,
		TransactionRef: "NB-REF-1",
	})
	if err != nil {
		t.Fatalf("create online payment failed: %v", err)
	}
	if _, err := svc.VerifyCashPayment("2BA21CS001", payment.ID, "UTR1"); !errors.Is(err, ErrPaymentNotFoundOrVerified) {
		t.Fatalf("want ErrPaymentNotFoundOrVerified got %v", err)
	}
}

func TestCreatePaymentReplaySameFeesIsIdempotentOnLedger(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	createServiceTestStudent(t, db, "2BA21CS001")

	for i, ref := range []string{"0xref1", "0xref2"} {
		if _, err := svc.CreatePayment(CreatePaymentInput{
			USN:            "2BA21CS001",
			FeeIDs:         []string{"tuition"},
			Amount:         75000,
			Method:         constants.PaymentMethodCrypto,
			TransactionRef: ref,
		}); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	var student models.Student
	if err := db.Where("usn = ?", "2BA21CS001").First(&student).Error; err != nil {
		t.Fatalf("load student failed: %v", err)
	}
	if len(student.PaidFees) != 1 || student.PaidFees[0] != "tuition" {
		t.Fatalf("ledger want [tuition] got %v", student.PaidFees)
	}

	payments, err := svc.ListPayments("2BA21CS001")
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("payment history want 2 rows got %d", len(payments))
	}
}
