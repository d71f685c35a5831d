package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waitly/api/routes"
	"waitly/internal/shared/config"
	"waitly/internal/shared/middleware"
	"waitly/internal/waitlist"
	"waitly/pkg/cache"
	"waitly/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		appLogger.Info("No .env file found, using system environment variables")
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	if !cfg.HasAdminToken() {
		appLogger.Warn("ADMIN_TOKEN not set: admin endpoints will reject all requests")
	}

	// Build the state store
	store, cleanup := buildStore(cfg, appLogger)
	defer cleanup()

	// Setup router
	router := setupRouter(cfg, store)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("store_backend", cfg.Store.Backend),
			slog.Int("weekly_cap", cfg.Waitlist.DefaultCap),
			slog.String("version", Version),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// buildStore selects the state store backend. Redis connection failures
// fall back to the file store so the service still comes up.
func buildStore(cfg *config.Config, appLogger *logger.Logger) (waitlist.Store, func()) {
	if cfg.Store.Backend == "redis" {
		client, err := cache.Connect(cache.Config{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			appLogger.Info("Using Redis state store",
				slog.String("addr", cfg.Redis.Addr),
				slog.String("key", cfg.Store.RedisKey),
			)
			store := waitlist.NewRedisStore(client, cfg.Store.RedisKey, cfg.Waitlist.DefaultCap, appLogger)
			return store, func() { client.Close() }
		}
		appLogger.Error("Redis unavailable, falling back to file store", slog.Any("error", err))
	}

	appLogger.Info("Using file state store", slog.String("path", cfg.Store.StateFile))
	store := waitlist.NewFileStore(cfg.Store.StateFile, cfg.Waitlist.DefaultCap, appLogger)
	return store, func() {}
}

func setupRouter(cfg *config.Config, store waitlist.Store) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(middleware.RequestID(), RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration: the API is open to every origin and preflights
	// are answered by the middleware
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:  []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", middleware.AdminTokenHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, store)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
