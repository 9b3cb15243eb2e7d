package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// Every field is populated from environment variables (optionally loaded from .env).
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Seed   SeedConfig
	Worker WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// AuthConfig controls the failed-login lockout.
type AuthConfig struct {
	MaxFailedLogins int
	LockoutMinutes  int
}

// SeedConfig controls bootstrap data (default accounts + sample article).
type SeedConfig struct {
	Enabled       bool
	AdminPassword string
	UserPassword  string
}

// WorkerConfig sizes the background task worker (cmd/worker).
type WorkerConfig struct {
	Concurrency int
}

// Load reads the config from environment variables
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Article API"),
			Environment: env,
			Port:        getEnv("APP_PORT", "3000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		Auth: AuthConfig{
			MaxFailedLogins: getEnvInt("AUTH_MAX_FAILED_LOGINS", 5),
			LockoutMinutes:  getEnvInt("AUTH_LOCKOUT_MINUTES", 15),
		},
		Seed: SeedConfig{
			Enabled:       getEnvBool("SEED_ENABLED", env != "production"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin"),
			UserPassword:  getEnv("SEED_USER_PASSWORD", "user"),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings that must never take their defaults in production
func (c *Config) Validate() error {
	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive, got %d", c.JWT.AccessTokenExpiry)
	}
	if c.Auth.MaxFailedLogins <= 0 {
		return fmt.Errorf("AUTH_MAX_FAILED_LOGINS must be positive, got %d", c.Auth.MaxFailedLogins)
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Seed.Enabled && (c.Seed.AdminPassword == "admin" || c.Seed.UserPassword == "user") {
			return fmt.Errorf("default seed passwords are not allowed in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
