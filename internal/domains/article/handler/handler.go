package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"article-backend/internal/domains/article/model"
	"article-backend/internal/domains/article/service"
	"article-backend/internal/shared/request"
	"article-backend/internal/shared/response"
)

// Handler - article HTTP handlers; every route sits behind AuthMiddleware
type Handler struct {
	service service.Service
}

func NewHandler(service service.Service) *Handler {
	return &Handler{service: service}
}

// Create - POST /article
func (h *Handler) Create(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}

	var req model.CreateArticleRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	view, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// FindAll - GET /article
func (h *Handler) FindAll(c *gin.Context) {
	views, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, views)
}

// FindOne - GET /article/:id
func (h *Handler) FindOne(c *gin.Context) {
	id, ok := request.PathID(c)
	if !ok {
		return
	}

	view, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Replace - PUT /article/:id
func (h *Handler) Replace(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	id, ok := request.PathID(c)
	if !ok {
		return
	}

	var req model.ReplaceArticleRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	view, err := h.service.Replace(c.Request.Context(), callerID, id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Update - PATCH /article/:id
func (h *Handler) Update(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	id, ok := request.PathID(c)
	if !ok {
		return
	}

	var req model.UpdateArticleRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	view, err := h.service.Update(c.Request.Context(), callerID, id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Remove - DELETE /article/:id
func (h *Handler) Remove(c *gin.Context) {
	id, ok := request.PathID(c)
	if !ok {
		return
	}

	view, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

func principalID(c *gin.Context) (int64, bool) {
	principal, ok := request.Principal(c)
	if !ok {
		return 0, false
	}
	return principal.ID, true
}
