package middleware

import (
	"crypto/subtle"
	"net/http"

	"waitly/internal/shared/config"
	"waitly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminTokenHeader carries the shared admin secret on privileged requests
const AdminTokenHeader = "X-Admin-Token"

// RequestIDHeader carries the per-request correlation ID
const RequestIDHeader = "X-Request-ID"

// RequireAdmin creates a middleware guarding admin endpoints with the shared
// secret from config. If no secret is configured every request is rejected.
func RequireAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.HasAdminToken() {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), "no admin token configured", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		token := c.GetHeader(AdminTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Admin.Token)) != 1 {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), "invalid admin token", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Next()
	}
}

// RequestID assigns a request ID to every request, honoring one supplied by
// the client, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}
