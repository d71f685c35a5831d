// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"strings"
	"time"

	"waitly/internal/shared/config"
	"waitly/internal/waitlist"
	"waitly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// pinger is implemented by stores that can report backend reachability
type pinger interface {
	Ping(ctx context.Context) error
}

// Router holds all route dependencies
type Router struct {
	config *config.Config
	store  waitlist.Store
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, store waitlist.Store) *Router {
	return &Router{
		config: cfg,
		store:  store,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group("/api")
	{
		r.setupWaitlistRoutes(api)
	}

	// Anything that is not an API route serves the static frontend
	r.setupFallbackRoutes(engine)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if p, ok := r.store.(pinger); ok {
			if err := p.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"error":     err.Error(),
					"timestamp": time.Now(),
					"service":   "waitly",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "waitly",
			"backend":   r.config.Store.Backend,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}

// setupWaitlistRoutes configures waitlist and admin routes
func (r *Router) setupWaitlistRoutes(rg *gin.RouterGroup) {
	clock := waitlist.NewWeekClock()
	service := waitlist.NewService(r.store, clock, &waitlist.ServiceConfig{
		OpenHour:   r.config.Waitlist.OpenHour,
		OpenMinute: r.config.Waitlist.OpenMinute,
	}, logger.GetDefault())
	controller := waitlist.NewController(service)

	waitlist.SetupWaitlistRoutes(rg, controller, r.config)
}

// setupFallbackRoutes serves the static frontend for non-API paths and a
// JSON 404 for unknown API paths.
func (r *Router) setupFallbackRoutes(engine *gin.Engine) {
	staticFS := gin.Dir(r.config.StaticDir, false)

	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
			return
		}

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.FileFromFS(c.Request.URL.Path, staticFS)
			return
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})
}
