package service

import (
	"github.com/bec-billdesk/internal/catalog"
	"github.com/bec-billdesk/internal/repository"
)

// FeeService serves the fee schedule partitioned against a student's
// paid-fee ledger.
type FeeService struct {
	studentRepo repository.StudentRepository
}

// NewFeeService creates the fee service.
func NewFeeService(studentRepo repository.StudentRepository) *FeeService {
	return &FeeService{studentRepo: studentRepo}
}

// FeeOverview is the schedule split for one student.
type FeeOverview struct {
	Pending []catalog.Fee `json:"pending"`
	Paid    []catalog.Fee `json:"paid"`
}

// Overview partitions the schedule by the student's ledger.
func (s *FeeService) Overview(usn string) (*FeeOverview, error) {
	student, err := s.studentRepo.GetByUSN(usn)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	pending, paid := catalog.Partition(student.PaidFees)
	return &FeeOverview{Pending: pending, Paid: paid}, nil
}
