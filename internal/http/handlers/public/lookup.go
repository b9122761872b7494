package public

import (
	"github.com/bec-billdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LookupRequest is the anonymous transaction locator body. The field
// accepts any customer-facing reference: receipt code, payment id or a
// prefix of it, transaction hash, bank reference or challan id.
type LookupRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

// LookupPayment resolves a payment reference for the support desk.
func (h *Handler) LookupPayment(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "transaction id is required", err)
		return
	}

	result, err := h.LookupService.Lookup(req.TransactionID)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	if !result.Found {
		response.Success(c, gin.H{"found": false})
		return
	}

	view := paymentView(result.Payment)
	view["student_name"] = result.StudentName
	response.Success(c, gin.H{
		"found":   true,
		"payment": view,
	})
}
