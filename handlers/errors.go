package handlers

import (
	"net/http"

	"asdcare/services/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:        http.StatusBadRequest,
	apperr.KindNotFound:          http.StatusNotFound,
	apperr.KindAccessDenied:      http.StatusForbidden,
	apperr.KindConflict:          http.StatusConflict,
	apperr.KindExternal:          http.StatusBadGateway,
	apperr.KindSignatureMismatch: http.StatusBadRequest,
	apperr.KindInvalidTransition: http.StatusConflict,
	apperr.KindUnauthorized:      http.StatusUnauthorized,
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	if status, ok := kindStatus[apperr.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": message}. Unclassified errors are
// logged and hidden from the client.
func (h *HandlerBundle) respondError(c *gin.Context, action string, err error) {
	status := statusFor(err)
	logger := h.getLogger(c)
	if status == http.StatusInternalServerError {
		logger.Error(action+" failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	if status == http.StatusBadGateway {
		logger.Warn(action+" failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.MessageOf(err)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}
