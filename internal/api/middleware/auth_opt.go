package middleware

import (
	"Creatr/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入身份，失败或缺失按匿名处理
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := security.ValidateToken(token); err == nil {
				c.Set(IdentityKey, claims.Identity())
			}
		}
		c.Next()
	}
}
