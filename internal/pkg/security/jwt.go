package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret = []byte("change-me")
	jwtIssuer = "creatr"
)

// Setup 设置签名密钥与签发者，启动时调用一次
func Setup(secret, issuer string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if issuer != "" {
		jwtIssuer = issuer
	}
}

// GenerateToken 签发令牌，供本地调试与测试使用
func GenerateToken(identity *Identity, expiration time.Duration) (string, error) {
	if identity == nil || identity.Subject == "" {
		return "", errors.New("subject 不能为空")
	}
	if expiration <= 0 {
		expiration = DefaultTokenExpiration
	}

	now := time.Now()
	claims := &IdentityClaims{
		TokenIdentifier: identity.TokenIdentifier,
		Name:            identity.Name,
		Email:           identity.Email,
		Picture:         identity.PictureURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("签名 Token 失败: %w", err)
	}
	return tokenString, nil
}

// ValidateToken 验证 Token 字符串并解析出 Claims
func ValidateToken(tokenString string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名方法: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	}, jwt.WithIssuer(jwtIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("token 解析失败: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token 无效或已过期")
	}
	if claims.Subject == "" && claims.TokenIdentifier == "" {
		return nil, errors.New("token 缺少身份标识")
	}

	return claims, nil
}
