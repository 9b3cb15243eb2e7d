package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"article-backend/internal/shared/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				event := log.Error().Interface("error", err).Str("path", c.Request.URL.Path)
				if rc := GetRequestContext(c); rc != nil {
					event = event.Int("correlation_id", rc.CorrelationID)
				}
				event.Msg("Panic recovered")

				if !c.Writer.Written() {
					response.Error(c, http.StatusInternalServerError, "Internal server error")
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
