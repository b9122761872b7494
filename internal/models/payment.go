package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is a fee payment record. One row covers one or more fee items
// paid together by a student.
type Payment struct {
	ID          string     `gorm:"type:varchar(36);primarykey" json:"id"`
	ReceiptCode string     `gorm:"type:varchar(8);index;not null" json:"receipt_code"`
	USN         string     `gorm:"type:varchar(20);index;not null" json:"usn"`
	FeeIDs      StringList `gorm:"type:json;not null" json:"fee_ids"`
	Amount      Money      `gorm:"type:bigint;not null" json:"amount"`
	Method      string     `gorm:"type:varchar(20);not null" json:"payment_method"`
	Channel     string     `gorm:"type:varchar(10);not null" json:"payment_channel"`
	Status      string     `gorm:"type:varchar(30);index;not null" json:"status"`

	// Online reference and cash challan ids are sparse unique: NULL when
	// absent so the constraints only bind rows that carry a value.
	TransactionHash *string `gorm:"type:varchar(128);uniqueIndex" json:"transaction_hash,omitempty"`
	ChallanID       *string `gorm:"type:varchar(40);uniqueIndex" json:"challan_id,omitempty"`
	BankReferenceID string  `gorm:"type:varchar(64);index" json:"bank_reference_id,omitempty"`

	ReceiptData JSONMap `gorm:"type:json" json:"receipt_data,omitempty"`

	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// TableName sets the table name.
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate assigns the id and derives the receipt code.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ReceiptCode == "" {
		p.ReceiptCode = ReceiptCodeFromID(p.ID)
	}
	return nil
}

// ReceiptCodeFromID derives the short code printed on receipts: the
// first eight characters of the payment id, uppercased.
func ReceiptCodeFromID(id string) string {
	code := strings.ToUpper(id)
	if len(code) > 8 {
		code = code[:8]
	}
	return code
}
