package http

import (
	"errors"
	"log"
	"net/http"

	"reunion-shop/internal/domain"
	"reunion-shop/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidBody  = "invalid request body"
	msgRetry        = "could not place the order right now, please try again"
	msgInternal     = "something went wrong, please try again later"
	msgUnauthorized = "unauthorized"
)

// respondError maps service errors onto status codes. Anything unrecognised is
// logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: verr.Error(), Errors: verr.Fields})
	case errors.Is(err, domain.ErrStaleCatalog),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrCodeAllocationExhausted):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgRetry})
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrVariantNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrAdminNotConfigured):
		log.Printf("[Handler] admin login attempted but %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "admin login is not configured"})
	default:
		log.Printf("[Handler] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: msgInternal})
	}
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgInvalidBody + ": " + err.Error()})
}
