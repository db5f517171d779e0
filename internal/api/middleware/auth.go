package middleware

import (
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/pkg/response"
	"Zheye/internal/pkg/security"
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey gin.Context 中当前用户 ID 的键
const UserIDKey = "user_id"

var (
	errTokenMissing = errors.New("Token 缺失或格式错误")
	errTokenInvalid = errors.New("Token 无效或已过期")
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, errTokenMissing.Error())
			c.Abort()
			return
		}

		claims, err := ParseToken(c.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			if errors.Is(err, errTokenMissing) || errors.Is(err, errTokenInvalid) {
				response.Fail(c, response.Unauthorized, err.Error())
			} else {
				response.Fail(c, response.InternalServerError, "未知错误")
			}
			c.Abort()
			return
		}

		setUser(c, claims)
		c.Next()
	}
}

// ParseToken 校验签名与有效期，并检查是否已登出
func ParseToken(ctx context.Context, tokenString string) (*security.UserClaims, error) {
	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return nil, errTokenMissing
	}

	value, err := redis.GetValue(ctx, consts.TokenBlacklistKey+signature)
	if err != nil {
		return nil, err
	}
	if value != "" {
		return nil, errTokenInvalid
	}

	claims, err := security.ValidateToken(tokenString)
	if err != nil {
		return nil, errTokenInvalid
	}
	return claims, nil
}

func setUser(c *gin.Context, claims *security.UserClaims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set("username", claims.Username)

	newCtx := context.WithValue(c.Request.Context(), UserIDKey, claims.UserID)
	c.Request = c.Request.WithContext(newCtx)
}
