package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultJWTSecret  string = "Bobmap"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims 定义了 Token 中携带的业务信息
type UserClaims struct {
	UserID   uint64 `json:"user_id"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}
