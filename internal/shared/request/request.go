// Package request holds the binding helpers shared by the HTTP handlers.
// Each helper writes the error response itself and reports false on failure.
package request

import (
	"github.com/gin-gonic/gin"

	"article-backend/internal/shared"
	"article-backend/internal/shared/apperror"
	"article-backend/internal/shared/middleware"
	"article-backend/internal/shared/response"
	"article-backend/internal/shared/utils"
)

type Validatable interface {
	Validate() error
}

// BindAndValidate decodes the JSON body into req and runs req.Validate
func BindAndValidate(c *gin.Context, req Validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.FromValidation(err))
		return false
	}
	return true
}

// PathID parses the :id path parameter
func PathID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Validation failed (numeric string is expected)")
		return 0, false
	}
	return id, true
}

// Principal returns the authenticated caller or answers 401
func Principal(c *gin.Context) (*shared.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c)
		return nil, false
	}
	return principal, true
}
