package middleware

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"article-backend/internal/shared"
	"article-backend/internal/shared/utils"
)

const (
	HeaderCorrelationID = "X-Correlation-Id"
	HeaderResponseTime  = "X-Response-Time"

	minCorrelationID = 10000
	maxCorrelationID = 99999 // exclusive
)

// Correlation creates the RequestContext for every request, logs the entry line
// and stamps X-Correlation-Id / X-Response-Time on the response.
func Correlation() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := &shared.RequestContext{
			CorrelationID: parseCorrelationID(c.GetHeader(HeaderCorrelationID)),
			StartedAt:     time.Now(),
			ClientIP:      utils.ExtractClientIP(c),
		}
		c.Set(shared.RequestContextKey, rc)

		log.Info().
			Int("correlation_id", rc.CorrelationID).
			Msgf("%d %s %s from %s", rc.CorrelationID, c.Request.Method, c.Request.URL.RequestURI(), rc.ClientIP)

		w := &stampingWriter{ResponseWriter: c.Writer, rc: rc}
		c.Writer = w

		c.Next()

		// nothing written: gin flushes the status after the chain returns
		if !w.Written() {
			w.stamp()
		}
	}
}

// GetRequestContext returns the context created by Correlation, nil outside the pipeline
func GetRequestContext(c *gin.Context) *shared.RequestContext {
	v, ok := c.Get(shared.RequestContextKey)
	if !ok {
		return nil
	}
	rc, _ := v.(*shared.RequestContext)
	return rc
}

// parseCorrelationID accepts any non-zero integer; anything else gets a random id
func parseCorrelationID(raw string) int {
	if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && id != 0 {
		return id
	}
	return minCorrelationID + rand.IntN(maxCorrelationID-minCorrelationID)
}

func formatResponseTime(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
}

// stampingWriter sets the correlation headers right before the header block is flushed
type stampingWriter struct {
	gin.ResponseWriter
	rc      *shared.RequestContext
	stamped bool
}

func (w *stampingWriter) stamp() {
	if w.stamped {
		return
	}
	w.stamped = true
	h := w.ResponseWriter.Header()
	h.Set(HeaderCorrelationID, strconv.Itoa(w.rc.CorrelationID))
	h.Set(HeaderResponseTime, formatResponseTime(w.rc.Elapsed()))
}

func (w *stampingWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *stampingWriter) Write(data []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(data)
}

func (w *stampingWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}
