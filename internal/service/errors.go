package service

import "errors"

// Validation errors surfaced to the client as 400s.
var (
	ErrFeeIDsRequired         = errors.New("at least one fee id is required")
	ErrFeeIDRepeated          = errors.New("fee id repeated in request")
	ErrUnknownFeeID           = errors.New("unknown fee id")
	ErrAmountInvalid          = errors.New("amount must be a positive whole amount")
	ErrAmountMismatch         = errors.New("amount does not match the fee schedule")
	ErrMethodInvalid          = errors.New("unsupported payment method")
	ErrTransactionRefRequired = errors.New("transaction reference is required for online payments")
	ErrBankReferenceRequired  = errors.New("bank reference id is required")
	ErrLookupQueryRequired    = errors.New("transaction id is required")
)

// Conflict and lookup errors.
var (
	ErrDuplicateReference        = errors.New("a payment with this transaction reference already exists")
	ErrDuplicateChallan          = errors.New("challan id collision, please retry")
	ErrPaymentNotFound           = errors.New("payment not found")
	ErrPaymentNotFoundOrVerified = errors.New("payment not found or already verified")
	ErrStudentNotFound           = errors.New("student not found")
)
