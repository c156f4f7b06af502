package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

// httpStatus maps the domain error taxonomy onto HTTP codes. Anything
// unrecognized is an internal failure.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrNoPendingRequest),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrNotEditable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error, message string) {
	status := httpStatus(err)
	body := gin.H{"success": false, "message": message}
	if status != http.StatusInternalServerError {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}
