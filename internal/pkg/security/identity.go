package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTokenExpiration = time.Hour * 24
)

// IdentityClaims 外部身份服务签发的令牌内容，sub 为稳定的用户标识
type IdentityClaims struct {
	TokenIdentifier string `json:"token_identifier,omitempty"`
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Picture         string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Identity 已校验的调用方身份
type Identity struct {
	Subject         string
	TokenIdentifier string
	Name            string
	Email           string
	PictureURL      string
}

func (c *IdentityClaims) Identity() *Identity {
	return &Identity{
		Subject:         c.Subject,
		TokenIdentifier: c.TokenIdentifier,
		Name:            c.Name,
		Email:           c.Email,
		PictureURL:      c.Picture,
	}
}
