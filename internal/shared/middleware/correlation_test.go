package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var responseTimePattern = regexp.MustCompile(`^\d+\.\d{2}ms$`)

func newCorrelationEngine(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(), Correlation())
	r.GET("/probe", handler)
	return r
}

func doProbe(r http.Handler, correlationID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if correlationID != "" {
		req.Header.Set("x-correlation-id", correlationID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCorrelation_EchoesProvidedID(t *testing.T) {
	var seen int
	r := newCorrelationEngine(func(c *gin.Context) {
		seen = GetRequestContext(c).CorrelationID
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := doProbe(r, " 42 ")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Header().Get(HeaderCorrelationID))
	assert.Equal(t, 42, seen)
	assert.Regexp(t, responseTimePattern, w.Header().Get(HeaderResponseTime))
}

func TestCorrelation_GeneratesIDWhenMissingOrInvalid(t *testing.T) {
	r := newCorrelationEngine(func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, header := range []string{"", "abc", "0"} {
		w := doProbe(r, header)

		id, err := strconv.Atoi(w.Header().Get(HeaderCorrelationID))
		require.NoError(t, err, "header %q", header)
		assert.GreaterOrEqual(t, id, 10000)
		assert.Less(t, id, 99999)
		assert.Regexp(t, responseTimePattern, w.Header().Get(HeaderResponseTime))
	}
}

func TestCorrelation_StampsAbortedResponses(t *testing.T) {
	r := newCorrelationEngine(func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) })

	w := doProbe(r, "7")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "7", w.Header().Get(HeaderCorrelationID))
	assert.NotEmpty(t, w.Header().Get(HeaderResponseTime))
}

func TestCorrelation_StampsRecoveredPanics(t *testing.T) {
	r := newCorrelationEngine(func(c *gin.Context) { panic("boom") })

	w := doProbe(r, "99")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "99", w.Header().Get(HeaderCorrelationID))
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestCorrelation_ResponseTimeCoversHandler(t *testing.T) {
	r := newCorrelationEngine(func(c *gin.Context) {
		time.Sleep(20 * time.Millisecond)
		c.String(http.StatusOK, "done")
	})

	w := doProbe(r, "")

	raw := w.Header().Get(HeaderResponseTime)
	ms, err := strconv.ParseFloat(raw[:len(raw)-2], 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ms, 20.0)
}

func TestCorrelation_EntryLineKeepsQueryString(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	r := newCorrelationEngine(func(c *gin.Context) { c.Status(http.StatusNoContent) })
	req := httptest.NewRequest(http.MethodGet, "/probe?page=2&sort=name", nil)
	req.Header.Set("x-correlation-id", "31337")
	req.RemoteAddr = "10.0.0.9:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"message":"31337 GET /probe?page=2&sort=name from `)
	assert.Contains(t, buf.String(), `"correlation_id":31337`)
}

func TestFormatResponseTime(t *testing.T) {
	assert.Equal(t, "1.50ms", formatResponseTime(1500*time.Microsecond))
	assert.Equal(t, "0.00ms", formatResponseTime(0))
}
