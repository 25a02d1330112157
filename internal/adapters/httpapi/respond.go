package httpapi

import (
	"errors"
	"net/http"

	"socialgraph/internal/core/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError نگاشت نوع خطا به کد HTTP؛ Conflict مثل نسخه اصلی 400 است
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.ErrNotFound:
		status = http.StatusNotFound
	case apperr.ErrConflict, apperr.ErrInvalidArgument:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error("❌ request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	msg := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	c.JSON(status, gin.H{"error": msg})
}

func respondInvalidInput(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
}
