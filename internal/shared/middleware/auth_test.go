package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-backend/pkg/jwt"
)

func newGuardedEngine(tokens *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.Use(Correlation())
	auth := AuthMiddleware(tokens)

	r.GET("/me", auth, func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		rc := GetRequestContext(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "admin": p.IsAdmin, "same": rc.Principal == p})
	})
	r.GET("/admin", auth, RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/no-auth-admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func request(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	r := newGuardedEngine(tokens)

	valid, err := tokens.GenerateAccessToken(5, "regularuser", false)
	require.NoError(t, err)
	foreign, err := jwt.NewManager("other-secret", time.Hour).GenerateAccessToken(5, "regularuser", false)
	require.NoError(t, err)

	t.Run("valid token attaches principal", func(t *testing.T) {
		w := request(r, "/me", "Bearer "+valid)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":5,"admin":false,"same":true}`, w.Body.String())
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + valid,
		"no token":       "Bearer",
		"bad signature":  "Bearer " + foreign,
		"garbage":        "Bearer abc.def.ghi",
	} {
		t.Run(name, func(t *testing.T) {
			w := request(r, "/me", header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"statusCode":401,"error":"Unauthorized","message":"Unauthorized"}`, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(HeaderCorrelationID))
			assert.NotEmpty(t, w.Header().Get(HeaderResponseTime))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	r := newGuardedEngine(tokens)

	admin, err := tokens.GenerateAccessToken(1, "admin", true)
	require.NoError(t, err)
	user, err := tokens.GenerateAccessToken(2, "user", false)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, request(r, "/admin", "Bearer "+admin).Code)
	assert.Equal(t, http.StatusForbidden, request(r, "/admin", "Bearer "+user).Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "/admin", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "/no-auth-admin", "").Code)
}
