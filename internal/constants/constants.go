package constants

// Payment status constants
const (
	PaymentStatusCompleted               = "completed"
	PaymentStatusPendingBankVerification = "pending_bank_verification"
	// Reserved members of the status space. No transition reaches them yet;
	// kept so stored rows and future gateway callbacks stay representable.
	PaymentStatusPending = "pending"
	PaymentStatusFailed  = "failed"
)

// Payment method constants
const (
	PaymentMethodCrypto     = "crypto"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetbanking = "netbanking"
	PaymentMethodCash       = "cash"
)

// Payment channel constants
const (
	PaymentChannelOnline = "online"
	PaymentChannelCash   = "cash"
)

// ReceiptCodeLength is the number of leading payment-id characters shown to
// users as the receipt number.
const ReceiptCodeLength = 8

// InstitutionCodeDefault is the institution short code used in challan ids
// and receipt headers when none is configured.
const InstitutionCodeDefault = "BEC"

// Queue names
const (
	QueueDefault = "default"
)

// Task type names
const (
	TaskReceiptRender = "receipt:render"
)

// IsKnownPaymentMethod reports whether method is one of the accepted values.
func IsKnownPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCrypto, PaymentMethodUPI, PaymentMethodNetbanking, PaymentMethodCash:
		return true
	}
	return false
}

// IsOnlinePaymentMethod reports whether method settles over the online channel.
func IsOnlinePaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCrypto, PaymentMethodUPI, PaymentMethodNetbanking:
		return true
	}
	return false
}

// ChannelForMethod derives the payment channel from the method.
func ChannelForMethod(method string) string {
	if method == PaymentMethodCash {
		return PaymentChannelCash
	}
	return PaymentChannelOnline
}
