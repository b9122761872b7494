package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a whole-rupee amount. Fee schedules carry no paise, so the
// column stores an integral value; Scan rejects fractional data written
// by other tools.
type Money struct {
	d decimal.Decimal
}

// NewMoney builds an amount from whole rupees.
func NewMoney(rupees int64) Money {
	return Money{d: decimal.NewFromInt(rupees)}
}

// MoneyFromDecimal wraps an existing decimal value.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Rupees returns the amount as whole rupees.
func (m Money) Rupees() int64 {
	return m.d.IntPart()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// String renders the amount without a currency symbol.
func (m Money) String() string {
	return m.d.String()
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.d.IntPart(), nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(value any) error {
	if value == nil {
		m.d = decimal.Zero
		return nil
	}
	switch v := value.(type) {
	case int64:
		m.d = decimal.NewFromInt(v)
	case float64:
		d := decimal.NewFromFloat(v)
		if !d.IsInteger() {
			return fmt.Errorf("money: fractional amount %v not supported", v)
		}
		m.d = d
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	default:
		return fmt.Errorf("money: cannot scan %T", value)
	}
	return nil
}

func (m *Money) scanString(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("money: parse %q: %w", s, err)
	}
	if !d.IsInteger() {
		return fmt.Errorf("money: fractional amount %q not supported", s)
	}
	m.d = d
	return nil
}

// MarshalJSON renders the amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return m.scanString(s)
}
