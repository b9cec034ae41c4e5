package middleware

import (
	"net/http"
	"strings"

	"github.com/akithw/supermart-golang/internal/auth"
	"github.com/akithw/supermart-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and injects the trusted
// (userID, userRole) pair into the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Authorization header required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Invalid token format (must be Bearer)"))
			return
		}

		userID, role, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Invalid or expired token"))
			return
		}

		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, models.Fail("You do not have permission to access this resource"))
	}
}
