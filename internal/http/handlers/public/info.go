package public

import (
	"time"

	"github.com/bec-billdesk/internal/cache"
	"github.com/bec-billdesk/internal/catalog"
	"github.com/bec-billdesk/internal/constants"
	"github.com/bec-billdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	publicInfoCacheKey = "public:info"
	publicInfoCacheTTL = 60 * time.Second
)

// GetInfo returns the institution identity and the fee schedule. The
// bank details are what a student copies onto a cash challan deposit
// slip, so this stays anonymous.
func (h *Handler) GetInfo(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicInfoCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	institution := h.Config.Institution
	code := institution.Code
	if code == "" {
		code = constants.InstitutionCodeDefault
	}
	data := map[string]interface{}{
		"institution": gin.H{
			"name":         institution.Name,
			"code":         code,
			"address":      institution.Address,
			"bank_name":    institution.BankName,
			"bank_account": institution.BankAccount,
		},
		"fees": catalog.Fees,
	}

	_ = cache.SetJSON(c.Request.Context(), publicInfoCacheKey, data, publicInfoCacheTTL)
	response.Success(c, data)
}
