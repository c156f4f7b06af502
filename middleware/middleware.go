package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Forbidden",
			})
			c.Abort()
			return
		}
		if _, ok := allowed[role.(string)]; !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Forbidden",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly allows admin and superadmin roles.
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin)
}
