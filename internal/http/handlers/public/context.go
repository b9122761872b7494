package public

import (
	"strings"

	"github.com/bec-billdesk/internal/http/response"
	"github.com/bec-billdesk/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getUSN reads the authenticated student's USN set by the auth
// middleware.
func getUSN(c *gin.Context) (string, bool) {
	value, exists := c.Get("usn")
	if !exists {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return "", false
	}
	usn, ok := value.(string)
	if !ok || strings.TrimSpace(usn) == "" {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return "", false
	}
	return usn, true
}

// requestLog returns a logger carrying the request id.
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError writes an error envelope and logs the underlying error
// when one exists.
func respondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}
