package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
	"github.com/nimbusmart/commerce-api/token"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// ValidateToken parses the bearer token and stores the caller's
// identity on the request context. Guest tokens pass too; handlers that
// must not serve guests use RequireUser.
func ValidateToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header is missing")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := token.Parse(secret, tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, models.Role(claims.Role))
		c.Next()
	}
}

// RequireUser rejects guest sessions.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if RoleFrom(c) == models.RoleGuest {
			response.Error(c, http.StatusForbidden, "Sign in required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserIDFrom returns the authenticated identity (user id or guest id).
func UserIDFrom(c *gin.Context) string {
	if v, ok := c.Get(CtxUserID); ok {
		return v.(string)
	}
	return ""
}

func RoleFrom(c *gin.Context) models.Role {
	if v, ok := c.Get(CtxRole); ok {
		return v.(models.Role)
	}
	return ""
}
