package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nimbusmart/commerce-api/policy"
	"github.com/nimbusmart/commerce-api/response"
)

// Authorize gates an endpoint on the capability table. Runs after
// ValidateToken.
func Authorize(table *policy.Table, action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !table.Allow(RoleFrom(c), action) {
			response.Error(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
