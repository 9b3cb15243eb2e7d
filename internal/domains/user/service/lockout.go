package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"article-backend/internal/domains/user/model"
	"article-backend/internal/shared"
	"article-backend/pkg/cache"
)

// loginLockout counts failed logins per username in the cache.
// Cache errors are logged and never block a login.
type loginLockout struct {
	cache       cache.Cache
	alerts      AlertPublisher
	maxAttempts int64
	window      time.Duration
	now         func() time.Time
}

func newLoginLockout(c cache.Cache, alerts AlertPublisher, maxAttempts int, window time.Duration) *loginLockout {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &loginLockout{
		cache:       c,
		alerts:      alerts,
		maxAttempts: int64(maxAttempts),
		window:      window,
		now:         time.Now,
	}
}

func attemptKey(username string) string { return fmt.Sprintf("failed_login:%s", username) }
func lockKey(username string) string    { return fmt.Sprintf("login_locked:%s", username) }

func (l *loginLockout) isLocked(ctx context.Context, username string) bool {
	locked, err := l.cache.Exists(ctx, lockKey(username))
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Lockout check failed, allowing login")
		return false
	}
	return locked
}

// recordFailure counts one failed attempt for u and reports whether the account is now locked
func (l *loginLockout) recordFailure(ctx context.Context, u *model.User) bool {
	username := u.Username
	key := attemptKey(username)

	attempts, err := l.cache.Increment(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed to count login attempt")
		return false
	}

	// window starts at the first failure; repeated so a failed first call is retried
	if err := l.cache.ExpireNX(ctx, key, l.window); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed to set attempt window")
	}

	if attempts < l.maxAttempts {
		return false
	}

	if err := l.cache.Set(ctx, lockKey(username), "1", l.window); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed to lock login")
		return false
	}
	if err := l.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed to clear attempt counter")
	}

	log.Warn().
		Str("username", username).
		Int64("attempts", attempts).
		Dur("duration", l.window).
		Msg("Login locked")

	l.alert(ctx, u, attempts)
	return true
}

func (l *loginLockout) alert(ctx context.Context, u *model.User, attempts int64) {
	if l.alerts == nil {
		return
	}

	err := l.alerts.PublishSecurityAlert(ctx, shared.SecurityAlertPayload{
		UserID:     u.ID,
		Username:   u.Username,
		AlertType:  shared.AlertLoginLocked,
		Attempts:   attempts,
		LockedFor:  l.window,
		OccurredAt: l.now(),
	})
	if err != nil {
		log.Warn().Err(err).Int64("user_id", u.ID).Msg("Failed to publish security alert")
	}
}

func (l *loginLockout) reset(ctx context.Context, username string) {
	if err := l.cache.Delete(ctx, attemptKey(username)); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed to clear attempt counter")
	}
}
