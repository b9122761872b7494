package repository

import (
	"errors"

	"github.com/bec-billdesk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudentRepository is the student data access interface.
type StudentRepository interface {
	Create(student *models.Student) error
	GetByUSN(usn string) (*models.Student, error)
	AddPaidFees(usn string, feeIDs []string) error
	ResetAllLedgers() error
	WithTx(tx *gorm.DB) *GormStudentRepository
}

// GormStudentRepository is the GORM implementation.
type GormStudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a student repository.
func NewStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormStudentRepository) WithTx(tx *gorm.DB) *GormStudentRepository {
	if tx == nil {
		return r
	}
	return &GormStudentRepository{db: tx}
}

// Create inserts a student record.
func (r *GormStudentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

// GetByUSN fetches a student by university seat number.
func (r *GormStudentRepository) GetByUSN(usn string) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("usn = ?", usn).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// AddPaidFees unions feeIDs into the student's paid-fee ledger. The row
// is locked for the read-modify-write so concurrent payments cannot lose
// each other's entries; ids already present are skipped, which keeps the
// operation idempotent on retry.
func (r *GormStudentRepository) AddPaidFees(usn string, feeIDs []string) error {
	if len(feeIDs) == 0 {
		return nil
	}
	var student models.Student
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("usn = ?", usn).
		First(&student).Error; err != nil {
		return err
	}

	merged, changed := student.PaidFees.Union(feeIDs)
	if !changed {
		return nil
	}
	return r.db.Model(&models.Student{}).
		Where("usn = ?", usn).
		Update("paid_fees", merged).Error
}

// ResetAllLedgers clears every student's paid-fee ledger.
func (r *GormStudentRepository) ResetAllLedgers() error {
	return r.db.Model(&models.Student{}).
		Where("1 = 1").
		Update("paid_fees", models.StringList{}).Error
}
