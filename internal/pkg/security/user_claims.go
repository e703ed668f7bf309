package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims Token 中携带的业务信息，角色不入 Token，每次请求按库里的用户行为准
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}
