package handlers

import (
	"errors"
	"net/http"

	"taskman-app/src/domain"

	"github.com/gin-gonic/gin"
)

// respondStoreError ストアエラーをHTTPステータスに変換して返す
func respondStoreError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, ErrorResponseDTO{
		Error:   message,
		Message: err.Error(),
	})
}
