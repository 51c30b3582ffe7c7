package middleware

import (
	"Creatr/internal/pkg/response"
	"Creatr/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 校验 Bearer 令牌并将调用方身份注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(token)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(IdentityKey, claims.Identity())
		c.Next()
	}
}
