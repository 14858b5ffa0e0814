package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const JWTExpirationTime = time.Hour * 24

// jwtSecret 由 Init 在启动时注入
var jwtSecret = []byte("fluxo-dev-secret")

// Init 设置签名密钥
func Init(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// UserClaims 定义了 Token 中需要包含的业务信息
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
