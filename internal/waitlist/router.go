package waitlist

import (
	"waitly/internal/shared/config"
	"waitly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupWaitlistRoutes configures the public waitlist routes and the
// token-guarded admin routes.
func SetupWaitlistRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	wl := rg.Group("/waitlist")
	{
		wl.GET("/status", controller.GetStatus)
		wl.POST("/enqueue", controller.Enqueue)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin(cfg))
	{
		admin.POST("/reset", controller.AdminReset)
		admin.POST("/cap", controller.AdminSetCap)
	}
}
