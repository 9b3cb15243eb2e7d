package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"article-backend/internal/shared/middleware"
	"article-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares; Correlation runs inside Recovery so panics still get stamped headers
	router.Use(
		middleware.Recovery(),
		middleware.Correlation(),
		c.Metrics.Middleware(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))

	setupAuthRoutes(router, c)
	setupUserRoutes(router, c)
	setupArticleRoutes(router, c)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(r *gin.Engine, c *container.Container) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/profile", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Profile)
	}
}

// ========================================
// USER ADMIN ROUTES
// ========================================
func setupUserRoutes(r *gin.Engine, c *container.Container) {
	users := r.Group("/user")
	users.Use(middleware.AuthMiddleware(c.JWTManager), middleware.RequireAdmin())
	{
		users.GET("", c.UserHandler.List)
		users.PATCH("/:id/admin", c.UserHandler.SetAdmin)
		users.DELETE("/:id", c.UserHandler.Delete)
	}
}

// ========================================
// ARTICLE ROUTES
// ========================================
func setupArticleRoutes(r *gin.Engine, c *container.Container) {
	articles := r.Group("/article")
	articles.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		articles.POST("", c.ArticleHandler.Create)
		articles.GET("", c.ArticleHandler.FindAll)
		articles.GET("/:id", c.ArticleHandler.FindOne)
		articles.PUT("/:id", c.ArticleHandler.Replace)
		articles.PATCH("/:id", c.ArticleHandler.Update)
		articles.DELETE("/:id", c.ArticleHandler.Remove)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := appCtx.DatabaseStatus(ctx)
		redisStatus := appCtx.CacheStatus(ctx)

		status := "ok"
		statusCode := http.StatusOK
		switch {
		case dbStatus != "up":
			status = "down"
			statusCode = http.StatusServiceUnavailable
		case redisStatus != "up":
			status = "degraded"
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	}
}
