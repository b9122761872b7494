package public

import (
	"errors"

	"github.com/bec-billdesk/internal/http/response"
	"github.com/bec-billdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a service error to an API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var paymentCreateErrorRules = []mappedHandlerError{
	{target: service.ErrFeeIDsRequired, code: response.CodeBadRequest, msg: "at least one fee must be selected"},
	{target: service.ErrFeeIDRepeated, code: response.CodeBadRequest, msg: "a fee was selected more than once"},
	{target: service.ErrUnknownFeeID, code: response.CodeBadRequest, msg: "one of the selected fees is not in the fee schedule"},
	{target: service.ErrAmountInvalid, code: response.CodeBadRequest, msg: "amount must be a positive whole amount"},
	{target: service.ErrAmountMismatch, code: response.CodeBadRequest, msg: "amount does not match the fee schedule"},
	{target: service.ErrMethodInvalid, code: response.CodeBadRequest, msg: "unsupported payment method"},
	{target: service.ErrTransactionRefRequired, code: response.CodeBadRequest, msg: "transaction reference is required for online payments"},
	{target: service.ErrDuplicateReference, code: response.CodeConflict, msg: "a payment with this transaction reference already exists"},
	{target: service.ErrDuplicateChallan, code: response.CodeConflict, msg: "challan generation collided, please retry"},
	{target: service.ErrStudentNotFound, code: response.CodeNotFound, msg: "student record not found"},
}

var paymentVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrBankReferenceRequired, code: response.CodeBadRequest, msg: "bank reference id is required"},
	{target: service.ErrPaymentNotFoundOrVerified, code: response.CodeNotFound, msg: "payment not found or already verified"},
	{target: service.ErrStudentNotFound, code: response.CodeNotFound, msg: "student record not found"},
}

var lookupErrorRules = []mappedHandlerError{
	{target: service.ErrLookupQueryRequired, code: response.CodeBadRequest, msg: "transaction id is required"},
}

func respondPaymentCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentCreateErrorRules, response.CodeInternal, "payment creation failed")
}

func respondPaymentVerifyError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentVerifyErrorRules, response.CodeInternal, "payment verification failed")
}

func respondLookupError(c *gin.Context, err error) {
	respondWithMappedError(c, err, lookupErrorRules, response.CodeInternal, "transaction lookup failed")
}
