package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"article-backend/internal/config"
	"article-backend/internal/domains/user/job"
	"article-backend/internal/infrastructure/queue"
	"article-backend/internal/shared"
	"article-backend/pkg/container"
)

// workerServer wraps asynq.Server with its handler mux
type workerServer struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

func newWorkerServer(cfg *config.Config, c *container.Container) *workerServer {
	return &workerServer{
		srv: asynq.NewServer(
			queue.RedisOpt(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB),
			asynq.Config{
				Queues:      queue.Priorities,
				Concurrency: cfg.Worker.Concurrency,
				ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
					log.Error().Err(err).Str("task_type", task.Type()).Msg("[Asynq] Task failed")
				}),
			},
		),
		mux: newMux(c),
	}
}

func newMux(c *container.Container) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(shared.TypeSecurityAlert, job.NewSecurityAlertHandler(c.UserRepo).ProcessTask)
	return mux
}

// Start runs the server in the background
func (s *workerServer) Start() error {
	log.Info().Msg("[Worker] Starting...")
	return s.srv.Start(s.mux)
}

// Shutdown waits for in-flight tasks, bounded by asynq's ShutdownTimeout
func (s *workerServer) Shutdown() {
	s.srv.Shutdown()
}
