package service

import (
	"time"

	"github.com/bec-billdesk/internal/catalog"
	"github.com/bec-billdesk/internal/config"
	"github.com/bec-billdesk/internal/models"
	"github.com/bec-billdesk/internal/repository"
)

// ReceiptService renders receipt snapshots: the structured payload an
// external renderer turns into the printed fee receipt. Snapshots are
// stored on the payment so the receipt survives later catalog or roster
// changes.
type ReceiptService struct {
	paymentRepo repository.PaymentRepository
	studentRepo repository.StudentRepository
	institution config.InstitutionConfig
}

// NewReceiptService creates the receipt service.
func NewReceiptService(paymentRepo repository.PaymentRepository, studentRepo repository.StudentRepository, institution config.InstitutionConfig) *ReceiptService {
	return &ReceiptService{
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
		institution: institution,
	}
}

// RenderAndStore builds the snapshot for a payment and persists it.
func (s *ReceiptService) RenderAndStore(paymentID string) error {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}

	student, err := s.studentRepo.GetByUSN(payment.USN)
	if err != nil {
		return err
	}

	snapshot := s.buildSnapshot(payment, student)
	return s.paymentRepo.UpdateReceiptData(payment.ID, snapshot)
}

func (s *ReceiptService) buildSnapshot(payment *models.Payment, student *models.Student) models.JSONMap {
	items := make([]map[string]any, 0, len(payment.FeeIDs))
	for _, id := range payment.FeeIDs {
		fee, ok := catalog.FeeByID(id)
		if !ok {
			items = append(items, map[string]any{"id": id, "name": id})
			continue
		}
		items = append(items, map[string]any{
			"id":     fee.ID,
			"name":   fee.Name,
			"amount": fee.Total.Rupees(),
		})
	}

	studentBlock := map[string]any{
		"usn":  payment.USN,
		"name": "Unknown",
	}
	if student != nil {
		studentBlock["name"] = student.Name
		studentBlock["degree"] = student.Degree
		studentBlock["department"] = student.Department
		studentBlock["category"] = student.Category
	}

	snapshot := models.JSONMap{
		"institution": map[string]any{
			"name":         s.institution.Name,
			"code":         s.institution.Code,
			"address":      s.institution.Address,
			"bank_name":    s.institution.BankName,
			"bank_account": s.institution.BankAccount,
		},
		"receipt_no":     payment.ReceiptCode,
		"payment_id":     payment.ID,
		"student":        studentBlock,
		"items":          items,
		"total":          payment.Amount.Rupees(),
		"payment_method": payment.Method,
		"status":         payment.Status,
		"generated_at":   time.Now().UTC().Format(time.RFC3339),
	}
	if payment.TransactionHash != nil {
		snapshot["transaction_hash"] = *payment.TransactionHash
	}
	if payment.ChallanID != nil {
		snapshot["challan_id"] = *payment.ChallanID
	}
	if payment.BankReferenceID != "" {
		snapshot["bank_reference_id"] = payment.BankReferenceID
	}
	return snapshot
}
