package public

import (
	"errors"

	"github.com/bec-billdesk/internal/catalog"
	"github.com/bec-billdesk/internal/http/response"
	"github.com/bec-billdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// ListFees returns the fee schedule partitioned by the student's ledger.
func (h *Handler) ListFees(c *gin.Context) {
	overview, ok := h.feeOverview(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"fees":    catalog.Fees,
		"pending": overview.Pending,
		"paid":    overview.Paid,
	})
}

// ListPendingFees returns the fees still owed by the student.
func (h *Handler) ListPendingFees(c *gin.Context) {
	overview, ok := h.feeOverview(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"fees": overview.Pending})
}

// ListPaidFees returns the fees the student has settled.
func (h *Handler) ListPaidFees(c *gin.Context) {
	overview, ok := h.feeOverview(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"fees": overview.Paid})
}

func (h *Handler) feeOverview(c *gin.Context) (*service.FeeOverview, bool) {
	usn, ok := getUSN(c)
	if !ok {
		return nil, false
	}
	overview, err := h.FeeService.Overview(usn)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			respondError(c, response.CodeNotFound, "student record not found", nil)
			return nil, false
		}
		respondError(c, response.CodeInternal, "fee schedule fetch failed", err)
		return nil, false
	}
	return overview, true
}
