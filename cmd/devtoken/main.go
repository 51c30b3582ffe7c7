// devtoken 按 configs/config.yaml 中的密钥签发本地调试用的身份令牌
package main

import (
	"Creatr/internal/api/config"
	"Creatr/internal/pkg/security"
	"flag"
	"fmt"
	log "log/slog"
	"os"
	"time"
)

func main() {
	var (
		configDir  = flag.String("config", "./configs", "config.yaml 所在目录")
		subject    = flag.String("sub", "", "外部身份标识（必填）")
		tokenID    = flag.String("token-id", "", "token identifier，默认与 sub 相同")
		name       = flag.String("name", "", "昵称")
		email      = flag.String("email", "", "邮箱")
		picture    = flag.String("picture", "", "头像地址")
		expiration = flag.Duration("exp", security.DefaultTokenExpiration, "有效期")
	)
	flag.Parse()

	if err := config.LoadConfigFrom(*configDir); err != nil {
		log.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	security.Setup(config.Cfg.Security.JWTSecret, config.Cfg.Security.Issuer)

	if *tokenID == "" {
		*tokenID = *subject
	}
	token, err := security.GenerateToken(&security.Identity{
		Subject:         *subject,
		TokenIdentifier: *tokenID,
		Name:            *name,
		Email:           *email,
		PictureURL:      *picture,
	}, *expiration)
	if err != nil {
		log.Error("failed to generate token", "err", err)
		os.Exit(1)
	}

	fmt.Println(token)
	log.Info("token issued", "sub", *subject, "expires_at", time.Now().Add(*expiration).Format(time.RFC3339))
}
