package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"article-backend/internal/domains/user/model"
	"article-backend/internal/domains/user/service/mocks"
	"article-backend/internal/shared"
	"article-backend/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*gin.Engine, *mocks.MockUserService) {
	t.Helper()
	svc := mocks.NewMockUserService(gomock.NewController(t))
	h := NewUserHandler(svc)

	asUser := func(c *gin.Context) {
		c.Set(middleware.PrincipalKey, &shared.Principal{ID: 2, Username: "user"})
		c.Next()
	}

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/profile", asUser, h.Profile)
	r.GET("/auth/profile-anonymous", h.Profile)
	r.GET("/user", h.List)
	r.PATCH("/user/:id/admin", h.SetAdmin)
	r.DELETE("/user/:id", h.Delete)
	return r, svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	r, svc := setup(t)

	svc.EXPECT().Register(gomock.Any(), model.RegisterRequest{
		Username: "newuser01", Email: "new@example.com", Password: "Str0ng!pass",
	}).Return(&model.UserView{ID: 3, Username: "newuser01", Email: "new@example.com"}, nil)

	w := do(r, http.MethodPost, "/auth/register", `{"username":"newuser01","email":"new@example.com","password":"Str0ng!pass"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"isAdmin":false`)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegister_ValidationListsAllFailures(t *testing.T) {
	r, _ := setup(t)

	w := do(r, http.MethodPost, "/auth/register", `{"username":"short","email":"nope","password":"weak"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email: invalid email format")
	assert.Contains(t, w.Body.String(), "username: username must be 8-64 characters")
}

func TestLogin_Created(t *testing.T) {
	r, svc := setup(t)
	svc.EXPECT().Login(gomock.Any(), model.LoginRequest{Username: "admin", Password: "admin"}).
		Return(&model.TokenInfo{AccessToken: "tok"}, nil)

	w := do(r, http.MethodPost, "/auth/login", `{"username":"admin","password":"admin"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"access_token":"tok"}`, w.Body.String())
}

func TestLogin_Locked(t *testing.T) {
	r, svc := setup(t)
	svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, model.NewLoginLocked())

	w := do(r, http.MethodPost, "/auth/login", `{"username":"admin","password":"x"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestProfile(t *testing.T) {
	r, svc := setup(t)
	svc.EXPECT().Profile(gomock.Any(), int64(2)).Return(&model.UserView{ID: 2, Username: "user"}, nil)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/auth/profile", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/auth/profile-anonymous", "").Code)
}

func TestSetAdmin(t *testing.T) {
	r, svc := setup(t)
	svc.EXPECT().SetAdmin(gomock.Any(), int64(2), true).Return(&model.UserView{ID: 2, IsAdmin: true}, nil)

	w := do(r, http.MethodPatch, "/user/2/admin", `{"isAdmin":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPatch, "/user/2/admin", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPatch, "/user/x/admin", `{"isAdmin":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_NotFound(t *testing.T) {
	r, svc := setup(t)
	svc.EXPECT().Delete(gomock.Any(), int64(8)).Return(nil, model.NewUserIDNotFound(8))

	w := do(r, http.MethodDelete, "/user/8", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User 8 not found")
}
