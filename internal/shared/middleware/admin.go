package middleware

import (
	"github.com/gin-gonic/gin"

	"article-backend/internal/shared/response"
)

// RequireAdmin must run after AuthMiddleware: 401 without a principal, 403 without the admin flag
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.Unauthorized(c)
			return
		}

		if !principal.IsAdmin {
			response.Forbidden(c, "Forbidden resource")
			return
		}

		c.Next()
	}
}
