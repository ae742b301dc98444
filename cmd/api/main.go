package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"campusportal/internal/authclient"
	"campusportal/internal/config"
	"campusportal/internal/httpapi"
	"campusportal/internal/httpmiddleware"
	"campusportal/internal/queue"
	"campusportal/internal/roster"
	"campusportal/internal/session"
	"campusportal/internal/store"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	// Missing auth backend credentials are a startup failure, not a
	// degraded mode.
	if err := cfg.Validate(); err != nil {
		logger.Fatal("configuration invalid", zap.Error(err))
	}

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg, logger); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "production" || env == "prod" {
		logger, _ := zap.NewProduction()
		return logger
	}
	logger, _ := zap.NewDevelopment()
	return logger
}

func runHTTP(cfg config.App, logger *zap.Logger) error {
	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "redis" {
		q = queue.NewRedisList(redisClient.Client, queue.DefaultKey)
	} else {
		q = queue.NewInMemory(64)
	}

	roll := roster.NewStore(roster.Seed())
	sessions := session.NewManager(logger)
	provider := authclient.New(cfg.AuthBaseURL, cfg.AuthAPIKey, cfg.AuthSkip)
	if cfg.AuthSkip {
		logger.Warn("AUTH_SKIP enabled, accepting any credentials (development only)")
	}

	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Access logs, skipping probe endpoints
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	// CORS middleware
	r.Use(corsMiddleware())

	// Security headers
	r.Use(securityHeaders())

	// Rate limiting
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := true
		backlog := int64(-1)
		if cfg.QueueBackend == "redis" {
			redisHealthy = redisClient.Healthy(c.Request.Context())
			backlog = redisClient.QueueDepth(c.Request.Context(), queue.DefaultKey)
		}
		status := http.StatusOK
		if !redisHealthy {
			status = http.StatusServiceUnavailable
		}
		resp := gin.H{"status": "ok", "redis": redisHealthy, "roster": roll.Len()}
		if backlog >= 0 {
			resp["mirror_backlog"] = backlog
		}
		c.JSON(status, resp)
	})

	handler := httpapi.New(cfg, logger, sessions, roll, q, provider)
	handler.Register(r)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced shutdown", zap.Error(err))
	}

	logger.Info("server exited")
	return nil
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
