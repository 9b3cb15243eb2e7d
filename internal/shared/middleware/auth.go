package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"article-backend/internal/shared"
	"article-backend/internal/shared/response"
	"article-backend/pkg/jwt"
)

const PrincipalKey = "principal"

// TokenValidator is the part of jwt.Manager the guard needs
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token with 401
// and attaches the resolved Principal otherwise.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c)
			return
		}

		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c)
			return
		}

		principal := &shared.Principal{
			ID:       claims.UserID,
			Username: claims.Username,
			IsAdmin:  claims.IsAdmin,
		}
		c.Set(PrincipalKey, principal)
		if rc := GetRequestContext(c); rc != nil {
			rc.Principal = principal
		}

		c.Next()
	}
}

// GetPrincipal returns the principal attached by AuthMiddleware
func GetPrincipal(c *gin.Context) (*shared.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*shared.Principal)
	return p, ok && p != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
