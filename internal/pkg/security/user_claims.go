package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTExpirationTime = time.Hour * 24
)

// UserClaims CMS 签发的 Token 中携带的用户信息
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
