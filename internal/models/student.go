package models

import "time"

// Student is the per-student profile plus paid-fee ledger. The ledger is
// a set of fee ids; membership means the fee shows as paid.
type Student struct {
	USN        string     `gorm:"type:varchar(20);primarykey" json:"usn"`
	Name       string     `gorm:"type:varchar(100);not null" json:"name"`
	Degree     string     `gorm:"type:varchar(20)" json:"degree"`
	Department string     `gorm:"type:varchar(60)" json:"department"`
	Category   string     `gorm:"type:varchar(20)" json:"category"`
	PaidFees   StringList `gorm:"type:json;not null" json:"paid_fees"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName sets the table name.
func (Student) TableName() string {
	return "students"
}
