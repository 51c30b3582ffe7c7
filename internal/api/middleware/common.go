package middleware

import (
	"Creatr/internal/pkg/security"
	"strings"

	"github.com/gin-gonic/gin"
)

// IdentityKey gin Context 中保存调用方身份的 Key
const IdentityKey = "identity"

// GetIdentity 取出已校验的调用方身份，匿名请求返回 nil
func GetIdentity(c *gin.Context) *security.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*security.Identity)
	return identity
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}
