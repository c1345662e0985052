package middleware

import (
	"strings"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to an active user and stores it
// under "user".
func AuthMiddleware(svc *services.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header on %s", c.Request.URL.Path)
			utils.Unauthorized(c, "Please login for access")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			utils.LogError("Invalid Bearer token format")
			utils.Unauthorized(c, "Please login for access")
			return
		}

		user, err := svc.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			utils.LogError("Authentication failed: %v", err)
			utils.RespondError(c, err)
			return
		}

		c.Set("user", *user)
		c.Set("token", tokenString)
		utils.LogDebug("User %d authenticated", user.ID)
		c.Next()
	}
}

// RequireRole lets the request through only for users holding one of roles.
// Admins always pass.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		if !exists {
			utils.LogError("User not found in context")
			utils.Unauthorized(c, "Please login for access")
			return
		}
		user, ok := value.(models.User)
		if !ok {
			utils.LogError("Invalid user type in context")
			utils.InternalServerError(c, "Invalid user type", nil)
			return
		}

		if user.IsAdmin() {
			c.Next()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		utils.LogError("User %d with role %s denied access to %s", user.ID, user.Role, c.Request.URL.Path)
		utils.Forbidden(c, "You do not have access to this resource")
	}
}

// AdminMiddleware restricts a group to admins.
func AdminMiddleware() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}
