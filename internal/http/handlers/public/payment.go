package public

import (
	"errors"

	"github.com/bec-billdesk/internal/http/response"
	"github.com/bec-billdesk/internal/models"
	"github.com/bec-billdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePaymentRequest is the create payment body.
type CreatePaymentRequest struct {
	FeeIDs         []string `json:"fee_ids" binding:"required"`
	Amount         int64    `json:"amount" binding:"required"`
	Method         string   `json:"payment_method" binding:"required"`
	TransactionRef string   `json:"transaction_ref"`
}

// VerifyPaymentRequest is the cash verification body.
type VerifyPaymentRequest struct {
	PaymentID       string `json:"payment_id" binding:"required"`
	BankReferenceID string `json:"bank_reference_id" binding:"required"`
}

// CreatePayment records a fee payment for the authenticated student.
func (h *Handler) CreatePayment(c *gin.Context) {
	usn, ok := getUSN(c)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	payment, err := h.PaymentService.CreatePayment(service.CreatePaymentInput{
		USN:            usn,
		FeeIDs:         req.FeeIDs,
		Amount:         req.Amount,
		Method:         req.Method,
		TransactionRef: req.TransactionRef,
	})
	if err != nil {
		respondPaymentCreateError(c, err)
		return
	}

	response.Success(c, paymentView(payment))
}

// VerifyPayment settles a cash payment against its bank deposit.
func (h *Handler) VerifyPayment(c *gin.Context) {
	usn, ok := getUSN(c)
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	payment, err := h.PaymentService.VerifyCashPayment(usn, req.PaymentID, req.BankReferenceID)
	if err != nil {
		respondPaymentVerifyError(c, err)
		return
	}

	response.SuccessWithMsg(c, "payment verified", paymentView(payment))
}

// ListPayments returns the student's payment history.
func (h *Handler) ListPayments(c *gin.Context) {
	usn, ok := getUSN(c)
	if !ok {
		return
	}

	payments, err := h.PaymentService.ListPayments(usn)
	if err != nil {
		respondError(c, response.CodeInternal, "payment history fetch failed", err)
		return
	}

	views := make([]gin.H, 0, len(payments))
	for i := range payments {
		views = append(views, paymentView(&payments[i]))
	}
	response.Success(c, gin.H{"payments": views})
}

// GetPayment returns one of the student's payments.
func (h *Handler) GetPayment(c *gin.Context) {
	usn, ok := getUSN(c)
	if !ok {
		return
	}

	payment, err := h.PaymentService.GetPayment(usn, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			respondError(c, response.CodeNotFound, "payment not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "payment fetch failed", err)
		return
	}

	view := paymentView(payment)
	if payment.ReceiptData != nil {
		view["receipt_data"] = payment.ReceiptData
	}
	response.Success(c, view)
}

func paymentView(p *models.Payment) gin.H {
	view := gin.H{
		"payment_id":     p.ID,
		"receipt_code":   p.ReceiptCode,
		"usn":            p.USN,
		"fee_ids":        p.FeeIDs,
		"amount":         p.Amount.Rupees(),
		"payment_method": p.Method,
		"channel":        p.Channel,
		"status":         p.Status,
		"created_at":     p.CreatedAt,
	}
	if p.TransactionHash != nil {
		view["transaction_hash"] = *p.TransactionHash
	}
	if p.ChallanID != nil {
		view["challan_id"] = *p.ChallanID
	}
	if p.BankReferenceID != "" {
		view["bank_reference_id"] = p.BankReferenceID
	}
	if p.VerifiedAt != nil {
		view["verified_at"] = *p.VerifiedAt
	}
	return view
}
