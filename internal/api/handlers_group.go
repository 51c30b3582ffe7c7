package api

import (
	"Creatr/internal/api/handler"
	"Creatr/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	FeedHandler       *handler.FeedHandler
	UserHandler       *handler.UserHandler
	UserFollowHandler *handler.UserFollowHandler
	PostHandler       *handler.PostHandler
	PostActionHandler *handler.PostActionHandler

	// ActionLimiter 写操作限流，为 nil 时不限流
	ActionLimiter *middleware.RateLimiter
	// MetricsHandler 为 nil 时不暴露 /metrics
	MetricsHandler gin.HandlerFunc
}

func (g *HandlersGroup) limited() gin.HandlerFunc {
	if g.ActionLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return g.ActionLimiter.Middleware()
}
