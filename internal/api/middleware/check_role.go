package middleware

import (
	"Pressroom/internal/pkg/consts"
	"Pressroom/internal/pkg/response"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles 当前用户至少拥有 requiredRoles 中的一个
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(consts.ContextRoles)

		if !slices.ContainsFunc(requiredRoles, func(r string) bool { return slices.Contains(roles, r) }) {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
