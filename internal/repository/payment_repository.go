package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/bec-billdesk/internal/constants"
	"github.com/bec-billdesk/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository is the payment data access interface.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	ListByUSN(usn string) ([]models.Payment, error)
	MarkVerified(id, usn, bankReferenceID string, now time.Time) (int64, error)
	FindByReference(ref string) (*models.Payment, error)
	UpdateReceiptData(id string, data models.JSONMap) error
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository is the GORM implementation.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository.
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create inserts a payment record. Unique violations on the transaction
// hash or challan id surface as gorm.ErrDuplicatedKey.
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	err := r.db.Create(payment).Error
	if isDuplicateKeyError(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

// GetByID fetches a payment by id.
func (r *GormPaymentRepository) GetByID(id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// ListByUSN returns a student's payment history, newest first.
func (r *GormPaymentRepository) ListByUSN(usn string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("usn = ?", usn).Order("created_at desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// MarkVerified flips a cash payment from awaiting-verification to
// completed in a single conditional UPDATE. The returned row count is 0
// when the payment does not exist, belongs to another student, or was
// already verified, so concurrent verifiers race safely.
func (r *GormPaymentRepository) MarkVerified(id, usn, bankReferenceID string, now time.Time) (int64, error) {
	result := r.db.Model(&models.Payment{}).
		Where("id = ? AND usn = ? AND status = ?", id, usn, constants.PaymentStatusPendingBankVerification).
		Updates(map[string]interface{}{
			"status":            constants.PaymentStatusCompleted,
			"bank_reference_id": bankReferenceID,
			"verified_at":       now,
			"updated_at":        now,
		})
	return result.RowsAffected, result.Error
}

// FindByReference locates a payment by any customer-facing reference,
// checked in precedence order: receipt code, payment id prefix,
// transaction hash, bank reference id, challan id. Ties within a rule
// resolve to the most recent payment.
func (r *GormPaymentRepository) FindByReference(ref string) (*models.Payment, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	// Receipt code fast path: the code is a fixed-width uppercase id
	// prefix, stored in its own indexed column.
	if len(ref) == constants.ReceiptCodeLength {
		if p, err := r.latestWhere("receipt_code = ?", strings.ToUpper(ref)); err != nil || p != nil {
			return p, err
		}
	}

	// Id prefix, case-insensitive.
	operator := caseInsensitiveLikeOperator(r.db)
	if p, err := r.latestWhere("id "+operator+" ? ESCAPE '\\'", likePrefixPattern(ref)); err != nil || p != nil {
		return p, err
	}

	if p, err := r.latestWhere("transaction_hash = ?", ref); err != nil || p != nil {
		return p, err
	}
	if p, err := r.latestWhere("bank_reference_id = ?", ref); err != nil || p != nil {
		return p, err
	}
	return r.latestWhere("challan_id = ?", ref)
}

func (r *GormPaymentRepository) latestWhere(cond string, args ...interface{}) (*models.Payment, error) {
	var payment models.Payment
	result := r.db.Where(cond, args...).Order("created_at desc").Limit(1).Find(&payment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &payment, nil
}

// likePrefixPattern escapes LIKE metacharacters in the user-supplied
// reference before appending the wildcard.
func likePrefixPattern(ref string) string {
	escaped := strings.NewReplacer("\\", "\\\\", "%", "\\%", "_", "\\_").Replace(ref)
	return escaped + "%"
}

// UpdateReceiptData stores the rendered receipt snapshot.
func (r *GormPaymentRepository) UpdateReceiptData(id string, data models.JSONMap) error {
	return r.db.Model(&models.Payment{}).
		Where("id = ?", id).
		Update("receipt_data", data).Error
}
