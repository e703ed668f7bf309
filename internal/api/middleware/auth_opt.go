package middleware

import (
	"BiuBiuStar/internal/pkg/security"
	"BiuBiuStar/internal/repository"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败、缺失或
// 已封禁则按匿名处理，UID 为 0
func AuthOptionalMiddleware(userRepo repository.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Set("user_id", uint64(0))
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := security.ValidateToken(token)
		if err != nil {
			c.Set("user_id", uint64(0))
			c.Next()
			return
		}

		user, err := userRepo.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil || user == nil || user.IsBan {
			c.Set("user_id", uint64(0))
			c.Next()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		newCtx := context.WithValue(c.Request.Context(), "user_id", user.ID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
