package waitlist

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{
		service: service,
	}
}

func (c *Controller) GetStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.Status(ctx.Request.Context()))
}

func (c *Controller) Enqueue(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.Enqueue(ctx.Request.Context()))
}

func (c *Controller) AdminReset(ctx *gin.Context) {
	state := c.service.AdminReset(ctx.Request.Context(), resetRequestFromPayload(bindLoosePayload(ctx)))

	ctx.JSON(http.StatusOK, ResetResponse{
		OK:    true,
		State: state,
	})
}

func (c *Controller) AdminSetCap(ctx *gin.Context) {
	newCap, ok := coerceInt(bindLoosePayload(ctx)["cap"])
	if !ok || !c.service.AdminSetCap(ctx.Request.Context(), newCap) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": ErrInvalidCap,
		})
		return
	}

	ctx.JSON(http.StatusOK, SetCapResponse{
		OK:  true,
		Cap: newCap,
	})
}

// bindLoosePayload reads the request body as a loosely-typed JSON object.
// Empty or malformed bodies behave as an empty payload so field defaults
// apply.
func bindLoosePayload(ctx *gin.Context) map[string]interface{} {
	payload := map[string]interface{}{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		return map[string]interface{}{}
	}
	return payload
}
