package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"article-backend/pkg/container"
)

// checkStartup refuses to start without Redis; the worker has nothing to consume otherwise
func checkStartup(ctx context.Context, c *container.Container) error {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	checks := []struct {
		name   string
		status func(context.Context) string
	}{
		{"Redis Connection", c.CacheStatus},
		{"Database Connection", c.DatabaseStatus},
	}

	for _, check := range checks {
		if status := check.status(checkCtx); status != "up" {
			return fmt.Errorf("%s is %s", check.name, status)
		}
		log.Info().Str("check", check.name).Msg("[Startup] OK")
	}
	return nil
}
