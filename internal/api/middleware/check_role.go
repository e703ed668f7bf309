package middleware

import (
	"BiuBiuStar/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户的角色是否在允许列表内，需在 AuthMiddleware 之后挂载
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		response.Fail(c, http.StatusForbidden, "权限不足：无权访问该资源")
		c.Abort()
	}
}
