package service

import (
	"strings"

	"github.com/bec-billdesk/internal/models"
	"github.com/bec-billdesk/internal/repository"
)

// LookupService resolves customer-facing payment references for the
// anonymous transaction locator. Students quote whatever identifier they
// have at hand, so the locator tries each reference family in a fixed
// precedence order.
type LookupService struct {
	paymentRepo repository.PaymentRepository
	studentRepo repository.StudentRepository
}

// NewLookupService creates the lookup service.
func NewLookupService(paymentRepo repository.PaymentRepository, studentRepo repository.StudentRepository) *LookupService {
	return &LookupService{paymentRepo: paymentRepo, studentRepo: studentRepo}
}

// LookupResult is the locator response. Found=false is a normal outcome,
// not an error.
type LookupResult struct {
	Found       bool            `json:"found"`
	Payment     *models.Payment `json:"payment,omitempty"`
	StudentName string          `json:"student_name,omitempty"`
}

// Lookup finds the payment a reference points at. Precedence: receipt
// code / payment id prefix, then transaction hash, then bank reference,
// then challan id; within a family the most recent payment wins.
func (s *LookupService) Lookup(ref string) (*LookupResult, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrLookupQueryRequired
	}

	payment, err := s.paymentRepo.FindByReference(ref)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return &LookupResult{Found: false}, nil
	}

	// A payment can outlive its student row (re-seeded rosters); the
	// locator still reports the payment with a placeholder name.
	name := "Unknown"
	student, err := s.studentRepo.GetByUSN(payment.USN)
	if err != nil {
		return nil, err
	}
	if student != nil && strings.TrimSpace(student.Name) != "" {
		name = student.Name
	}

	return &LookupResult{
		Found:       true,
		Payment:     payment,
		StudentName: name,
	}, nil
}
