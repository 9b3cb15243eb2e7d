package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"article-backend/internal/shared"
	"article-backend/internal/shared/apperror"
)

// ErrorBody is the envelope for every error response.
// Message is a string, or a list of strings for validation failures.
type ErrorBody struct {
	StatusCode int         `json:"statusCode"`
	Error      string      `json:"error"`
	Message    interface{} `json:"message"`
}

// Success writes data as the JSON body
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Error writes the error envelope and aborts the chain
func Error(c *gin.Context, statusCode int, message interface{}) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{
		StatusCode: statusCode,
		Error:      http.StatusText(statusCode),
		Message:    message,
	})
}

// HandleError classifies err and writes the matching response.
// Unclassified errors are logged and hidden behind a generic message.
func HandleError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}

	status := apperror.HTTPStatus(appErr.Kind)
	if status >= http.StatusInternalServerError {
		event := log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path)
		if rc, ok := c.Get(shared.RequestContextKey); ok {
			if reqCtx, ok := rc.(*shared.RequestContext); ok {
				event = event.Int("correlation_id", reqCtx.CorrelationID)
			}
		}
		event.Msg("Request failed")
		Error(c, status, "Internal server error")
		return
	}

	if appErr.Kind == apperror.KindValidation {
		details := appErr.Details
		if len(details) == 0 {
			details = []string{appErr.Message}
		}
		Error(c, status, details)
		return
	}

	Error(c, status, appErr.Message)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, []string{message})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}
