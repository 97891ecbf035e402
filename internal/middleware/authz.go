package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomart/internal/authz"
)

// RequireRoles rejects requests whose authenticated role is not in the allowed
// set. Runs after Auth.
func RequireRoles(allowed ...authz.Role) gin.HandlerFunc {
	allowedSet := map[authz.Role]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get(CtxRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		role, _ := v.(authz.Role)
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// RequireAction gates an endpoint on a single capability check instead of an
// explicit role list.
func RequireAction(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(CtxRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		role, _ := v.(authz.Role)
		if !authz.Can(role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
