package shared

import "time"

// RequestContextKey is the gin context key holding *RequestContext
const RequestContextKey = "request_context"

// Principal is the authenticated identity resolved from the bearer token
type Principal struct {
	ID       int64
	Username string
	IsAdmin  bool
}

// RequestContext is the per-request metadata created by the correlation middleware.
// Principal stays nil until the auth middleware accepts a token.
type RequestContext struct {
	CorrelationID int
	Principal     *Principal
	StartedAt     time.Time
	ClientIP      string
}

// Elapsed returns the time spent since the request entered the pipeline
func (rc *RequestContext) Elapsed() time.Duration {
	return time.Since(rc.StartedAt)
}

// ========================================
// BACKGROUND TASKS
// ========================================

const TypeSecurityAlert = "user:security_alert"

type SecurityAlertType string

const AlertLoginLocked SecurityAlertType = "login_locked"

// SecurityAlertPayload is enqueued when an account trips the failed-login lockout
type SecurityAlertPayload struct {
	UserID     int64             `json:"user_id"`
	Username   string            `json:"username"`
	AlertType  SecurityAlertType `json:"alert_type"`
	Attempts   int64             `json:"attempts"`
	LockedFor  time.Duration     `json:"locked_for"`
	OccurredAt time.Time         `json:"occurred_at"`
}
