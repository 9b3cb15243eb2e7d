package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *RedisClient {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	r := NewRedisClient(fmt.Sprintf("%s:%s", host, port.Port()), "", 0)
	require.NoError(t, r.Connect(ctx))
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRedisClient_LockoutPrimitives(t *testing.T) {
	r := startRedis(t)
	ctx := context.Background()

	n, err := r.Increment(ctx, "failed_login:someuser")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	n, err = r.Increment(ctx, "failed_login:someuser")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	require.NoError(t, r.ExpireNX(ctx, "failed_login:someuser", time.Minute))
	ttl, err := r.Client.TTL(ctx, "failed_login:someuser").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	// an existing window is left alone
	require.NoError(t, r.ExpireNX(ctx, "failed_login:someuser", time.Hour))
	ttl, err = r.Client.TTL(ctx, "failed_login:someuser").Result()
	require.NoError(t, err)
	require.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, r.Set(ctx, "login_locked:someuser", "1", time.Minute))
	ok, err := r.Exists(ctx, "login_locked:someuser")
	require.NoError(t, err)
	require.True(t, ok)
	raw, err := r.Client.Get(ctx, "login_locked:someuser").Result()
	require.NoError(t, err)
	require.Equal(t, "1", raw)

	require.NoError(t, r.Delete(ctx, "login_locked:someuser", "failed_login:someuser"))
	ok, err = r.Exists(ctx, "login_locked:someuser")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisClient_SetEncodesStructs(t *testing.T) {
	r := startRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "obj", map[string]int{"a": 1}, time.Minute))
	raw, err := r.Client.Get(ctx, "obj").Result()
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, raw)
}
