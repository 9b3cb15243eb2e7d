package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"article-backend/internal/config"
	"article-backend/pkg/container"
	"article-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[Config] Failed to load")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	if err := checkStartup(ctx, c); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	srv := newWorkerServer(cfg, c)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("[Worker] Failed to start")
	}

	<-ctx.Done()

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	srv.Shutdown()
	log.Info().Msg("[Shutdown] Stopped")
}
