package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"article-backend/internal/domains/user/model"
	"article-backend/internal/domains/user/service"
	"article-backend/internal/shared/request"
	"article-backend/internal/shared/response"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTH
// ========================================

// Register - POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	view, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// Login - POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, token)
}

// Profile - GET /auth/profile
func (h *UserHandler) Profile(c *gin.Context) {
	principal, ok := request.Principal(c)
	if !ok {
		return
	}

	view, err := h.service.Profile(c.Request.Context(), principal.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// ========================================
// ADMIN
// ========================================

// List - GET /user
func (h *UserHandler) List(c *gin.Context) {
	views, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, views)
}

// SetAdmin - PATCH /user/:id/admin
func (h *UserHandler) SetAdmin(c *gin.Context) {
	id, ok := request.PathID(c)
	if !ok {
		return
	}

	var req model.UpdateAdminRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	view, err := h.service.SetAdmin(c.Request.Context(), id, *req.IsAdmin)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Delete - DELETE /user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := request.PathID(c)
	if !ok {
		return
	}

	view, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}
