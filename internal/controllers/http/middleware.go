package http

import (
	"net/http"

	"reunion-shop/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminOnly rejects requests that do not carry a valid admin session cookie.
func AdminOnly(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(services.AdminCookieName)
		if !auth.IsAdmin(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: msgUnauthorized})
			return
		}
		c.Next()
	}
}
