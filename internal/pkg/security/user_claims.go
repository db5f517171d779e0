package security

import (
	"Zheye/internal/api/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret         = "zheye"
	jwtIssuer         = "Zheye"
	jwtExpirationTime = time.Hour * 24
)

// Init 用配置覆盖默认的签名参数
func Init(cfg config.JWTConfig) {
	if cfg.Secret != "" {
		jwtSecret = cfg.Secret
	}
	if cfg.Issuer != "" {
		jwtIssuer = cfg.Issuer
	}
	if cfg.Expire > 0 {
		jwtExpirationTime = time.Duration(cfg.Expire) * time.Hour
	}
}

// UserClaims Token 中携带的业务信息
type UserClaims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
