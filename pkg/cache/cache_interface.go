package cache

import (
	"context"
	"time"
)

//go:generate mockgen -source=cache_interface.go -destination=mocks/mock_cache.go -package=mocks

// Cache is the key/value contract used by the services.
// Redis backs it in production; tests swap in mocks.
type Cache interface {
	// Set stores value (JSON encoded unless it is a string) with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection
	Ping(ctx context.Context) error

	// Counters for failed login tracking
	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)

	// ExpireNX sets ttl only when key has none, so repeating it never extends the window
	ExpireNX(ctx context.Context, key string, ttl time.Duration) error
}
