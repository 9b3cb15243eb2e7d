package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"article-backend/internal/config"
	infraCache "article-backend/internal/infrastructure/cache"
	"article-backend/internal/infrastructure/database"
	"article-backend/internal/infrastructure/queue"
	"article-backend/internal/shared/middleware"
	"article-backend/pkg/cache"
	pkgdb "article-backend/pkg/database"
	"article-backend/pkg/jwt"

	articleHandler "article-backend/internal/domains/article/handler"
	articleRepo "article-backend/internal/domains/article/repository"
	articleService "article-backend/internal/domains/article/service"
	userHandler "article-backend/internal/domains/user/handler"
	userRepo "article-backend/internal/domains/user/repository"
	userService "article-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph.
// Build order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient
	Cache      cache.Cache
	Queue      *queue.Client
	JWTManager *jwt.Manager
	Registry   *prometheus.Registry
	Metrics    *middleware.Metrics

	// Repositories
	ArticleRepo articleRepo.Repository
	UserRepo    userRepo.UserRepository

	// Services
	ArticleService articleService.Service
	UserService    userService.UserService

	// Handlers
	ArticleHandler *articleHandler.Handler
	UserHandler    *userHandler.UserHandler
}

// ========================================
// CONSTRUCTORS
// ========================================

// NewContainer connects PostgreSQL and Redis, applies migrations and wires every layer
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	// STEP 1: DATABASE
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(connectCtx, dbConfig.DSN()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// STEP 2: REDIS
	// Redis only backs the login lockout, which fails open, so an outage is not fatal
	redis := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
	}

	// STEP 3: TASK QUEUE (same Redis)
	q := queue.NewClient(queue.RedisOpt(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB))

	c := New(cfg, articleRepo.NewPostgresRepository(db.Pool), userRepo.NewUserRepository(db.Pool), redis, q)
	c.DB = db
	c.Redis = redis
	c.Queue = q
	c.Registry.MustRegister(db.PoolCollectors()...)

	log.Info().Msg("DI container initialized")
	return c, nil
}

// New wires services and handlers over the given repositories and cache.
// alerts may be nil, in which case lockouts are only logged.
func New(cfg *config.Config, articles articleRepo.Repository, users userRepo.UserRepository, c cache.Cache, alerts userService.AlertPublisher) *Container {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ct := &Container{
		Config:      cfg,
		Cache:       c,
		JWTManager:  jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute),
		Registry:    registry,
		Metrics:     middleware.NewMetrics(registry),
		ArticleRepo: articles,
		UserRepo:    users,
	}

	ct.initServices(alerts)
	ct.initHandlers()
	return ct
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initServices(alerts userService.AlertPublisher) {
	c.ArticleService = articleService.NewArticleService(c.ArticleRepo)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.Cache,
		c.JWTManager,
		userService.Options{
			MaxFailedLogins: c.Config.Auth.MaxFailedLogins,
			LockoutDuration: time.Duration(c.Config.Auth.LockoutMinutes) * time.Minute,
			Alerts:          alerts,
		},
	)
}

func (c *Container) initHandlers() {
	c.ArticleHandler = articleHandler.NewHandler(c.ArticleService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// ========================================
// SEEDING
// ========================================

// Seed creates the default accounts and the sample article in one transaction
func (c *Container) Seed(ctx context.Context) error {
	if c.DB == nil || c.DB.Pool == nil {
		return fmt.Errorf("seed requires a database connection")
	}

	return pkgdb.WithTransaction(ctx, c.DB.Pool, func(tx pgx.Tx) error {
		adminID, err := userService.SeedAccounts(ctx, c.UserRepo.WithTx(tx),
			c.Config.Seed.AdminPassword, c.Config.Seed.UserPassword, 0)
		if err != nil {
			return err
		}
		return articleService.SeedSampleArticle(ctx, c.ArticleRepo.WithTx(tx), adminID)
	})
}

// ========================================
// HEALTH
// ========================================

// DatabaseStatus reports "up" or "down"
func (c *Container) DatabaseStatus(ctx context.Context) string {
	if err := c.DB.HealthCheck(ctx); err != nil {
		log.Warn().Err(err).Msg("Database health check failed")
		return "down"
	}
	return "up"
}

// CacheStatus reports "up" or "down"
func (c *Container) CacheStatus(ctx context.Context) string {
	if c.Cache == nil {
		return "down"
	}
	if err := c.Cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis health check failed")
		return "down"
	}
	return "up"
}

// Cleanup releases connections on shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	c.DB.Close()

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close task queue client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
