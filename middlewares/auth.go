package middlewares

import (
	"net/http"
	"strings"

	"SlowDown/models"
	"SlowDown/repositories"
	"SlowDown/services"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where AuthMiddleware stores the loaded user.
const ContextUserKey = "current_user"

// ContextTokenKey is where AuthMiddleware stores the raw bearer token.
const ContextTokenKey = "session_token"

// AuthMiddleware validates the bearer token and loads the user record.
// Admin-blocked users are refused here with 403; quota exhaustion is not
// an auth concern and never blocks the API.
func AuthMiddleware(secret []byte, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Access denied. No token provided."})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := services.ParseSessionToken(tokenString, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token."})
			c.Abort()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not found."})
			c.Abort()
			return
		}

		if user.IsBlocked {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Your account has been blocked."})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, tokenString)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.Get(ContextUserKey)
		if !ok || !user.(models.User).IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied. Admin privileges required."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by AuthMiddleware.
func CurrentUser(c *gin.Context) models.User {
	return c.MustGet(ContextUserKey).(models.User)
}
