package middleware

import (
	"net/http"

	"asdcare/models"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[RoleOf(c)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
				"roles": roles,
			})
			return
		}
		c.Next()
	}
}
