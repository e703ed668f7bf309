package middleware

import (
	"BiuBiuStar/internal/pkg/response"
	"BiuBiuStar/internal/pkg/security"
	"BiuBiuStar/internal/repository"
	"BiuBiuStar/internal/service"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 验证 JWT 并注入用户身份。角色与封禁状态每次都从
// 数据库读取，角色变更和封禁即时生效，不等 Token 过期。
func AuthMiddleware(userRepo repository.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		denied, err := service.IsTokenDenied(c.Request.Context(), signature)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "未知错误")
			c.Abort()
			return
		}
		if denied {
			response.Fail(c, http.StatusUnauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		user, err := userRepo.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "未知错误")
			c.Abort()
			return
		}
		if user == nil {
			response.Fail(c, http.StatusUnauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}
		if user.IsBan {
			response.Fail(c, http.StatusForbidden, "用户已被封禁")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)

		newCtx := context.WithValue(c.Request.Context(), "user_id", user.ID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
