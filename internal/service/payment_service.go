package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bec-billdesk/internal/catalog"
	"github.com/bec-billdesk/internal/config"
	"github.com/bec-billdesk/internal/constants"
	"github.com/bec-billdesk/internal/logger"
	"github.com/bec-billdesk/internal/models"
	"github.com/bec-billdesk/internal/queue"
	"github.com/bec-billdesk/internal/repository"

	"gorm.io/gorm"
)

// PaymentService owns the payment lifecycle: creation over the online and
// cash rails, cash verification, and the student's payment history.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	studentRepo repository.StudentRepository
	queueClient *queue.Client
	institution config.InstitutionConfig
}

// NewPaymentService creates the payment service.
func NewPaymentService(paymentRepo repository.PaymentRepository, studentRepo repository.StudentRepository, queueClient *queue.Client, institution config.InstitutionConfig) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
		queueClient: queueClient,
		institution: institution,
	}
}

// CreatePaymentInput is the create request after binding.
type CreatePaymentInput struct {
	USN            string
	FeeIDs         []string
	Amount         int64
	Method         string
	TransactionRef string
}

// CreatePayment records a fee payment for a student. Online methods
// complete immediately and union the paid-fee ledger in the same
// transaction; cash parks the payment behind a generated bank challan
// until a teller verifies the deposit.
func (s *PaymentService) CreatePayment(input CreatePaymentInput) (*models.Payment, error) {
	feeIDs, err := normalizeFeeIDs(input.FeeIDs)
	if err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, ErrAmountInvalid
	}
	// The client's figure is advisory: the charge is always what the
	// catalog says, and a disagreement rejects the request.
	expected, err := catalog.TotalFor(feeIDs)
	if err != nil {
		return nil, ErrUnknownFeeID
	}
	if !expected.Equal(models.NewMoney(input.Amount)) {
		return nil, ErrAmountMismatch
	}

	method := strings.ToLower(strings.TrimSpace(input.Method))
	if !constants.IsKnownPaymentMethod(method) {
		return nil, ErrMethodInvalid
	}

	payment := &models.Payment{
		USN:     input.USN,
		FeeIDs:  feeIDs,
		Amount:  expected,
		Method:  method,
		Channel: constants.ChannelForMethod(method),
	}

	if constants.IsOnlinePaymentMethod(method) {
		ref := strings.TrimSpace(input.TransactionRef)
		if ref == "" {
			return nil, ErrTransactionRefRequired
		}
		payment.Status = constants.PaymentStatusCompleted
		payment.TransactionHash = &ref
		err = s.createCompleted(payment)
	} else {
		challan := s.generateChallanID(input.USN, time.Now())
		payment.Status = constants.PaymentStatusPendingBankVerification
		payment.ChallanID = &challan
		err = s.createAwaitingVerification(payment)
	}
	if err != nil {
		return nil, err
	}

	logger.Infow("payment_created",
		"payment_id", payment.ID,
		"usn", payment.USN,
		"method", payment.Method,
		"status", payment.Status,
		"amount", payment.Amount.Rupees(),
	)

	if payment.Status == constants.PaymentStatusCompleted {
		s.enqueueReceiptRender(payment.ID)
	}
	return payment, nil
}

// createCompleted inserts an already-settled online payment and unions
// the ledger atomically with it.
func (s *PaymentService) createCompleted(payment *models.Payment) error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.WithTx(tx).Create(payment); err != nil {
			return err
		}
		return s.studentRepo.WithTx(tx).AddPaidFees(payment.USN, payment.FeeIDs)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateReference
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStudentNotFound
	}
	return err
}

// createAwaitingVerification inserts a cash payment. The ledger stays
// untouched until verification.
func (s *PaymentService) createAwaitingVerification(payment *models.Payment) error {
	err := s.paymentRepo.Create(payment)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The challan suffix is time-derived, so a collision clears on
		// retry.
		return ErrDuplicateChallan
	}
	return err
}

// VerifyCashPayment settles a parked cash payment once the bank deposit
// is confirmed. The status flip is one conditional update, so of any
// number of concurrent verifiers exactly one succeeds; the ledger union
// commits in the same transaction.
func (s *PaymentService) VerifyCashPayment(usn, paymentID, bankReferenceID string) (*models.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, ErrPaymentNotFoundOrVerified
	}
	bankReferenceID = strings.TrimSpace(bankReferenceID)
	if bankReferenceID == "" {
		return nil, ErrBankReferenceRequired
	}

	var verified *models.Payment
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		paymentTx := s.paymentRepo.WithTx(tx)
		rows, err := paymentTx.MarkVerified(paymentID, usn, bankReferenceID, time.Now().UTC())
		if err != nil {
			return err
		}
		// Zero rows covers missing, foreign and already-verified alike;
		// the caller cannot distinguish them.
		if rows == 0 {
			return ErrPaymentNotFoundOrVerified
		}
		verified, err = paymentTx.GetByID(paymentID)
		if err != nil {
			return err
		}
		if verified == nil {
			return ErrPaymentNotFoundOrVerified
		}
		return s.studentRepo.WithTx(tx).AddPaidFees(usn, verified.FeeIDs)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	logger.Infow("payment_verified",
		"payment_id", verified.ID,
		"usn", usn,
		"bank_reference_id", bankReferenceID,
	)
	s.enqueueReceiptRender(verified.ID)
	return verified, nil
}

// ListPayments returns the student's payment history, newest first.
func (s *PaymentService) ListPayments(usn string) ([]models.Payment, error) {
	return s.paymentRepo.ListByUSN(usn)
}

// GetPayment fetches one of the student's payments.
func (s *PaymentService) GetPayment(usn, id string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.USN != usn {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// generateChallanID builds the bank challan number printed on the cash
// deposit slip: institution code, a time-derived 6-digit suffix and the
// tail of the USN.
func (s *PaymentService) generateChallanID(usn string, now time.Time) string {
	code := strings.TrimSpace(s.institution.Code)
	if code == "" {
		code = constants.InstitutionCodeDefault
	}
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	tail := strings.ToUpper(usn)
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return fmt.Sprintf("%s-CH-%s-%s", code, millis, tail)
}

// enqueueReceiptRender hands the receipt snapshot off to the worker.
// Failures are logged only: the payment is already committed and the
// snapshot can be regenerated.
func (s *PaymentService) enqueueReceiptRender(paymentID string) {
	if err := s.queueClient.EnqueueReceiptRender(queue.ReceiptRenderPayload{PaymentID: paymentID}); err != nil {
		logger.Errorw("receipt_render_enqueue_failed",
			"payment_id", paymentID,
			"error", err,
		)
	}
}

// normalizeFeeIDs trims, lowercases and validates the requested fee ids.
func normalizeFeeIDs(ids []string) (models.StringList, error) {
	out := make(models.StringList, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.ToLower(strings.TrimSpace(raw))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			return nil, ErrFeeIDRepeated
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, ErrFeeIDsRequired
	}
	return out, nil
}
