package controllers

import (
	"net/http"

	"SlowDown/middlewares"
	"SlowDown/services"

	"github.com/gin-gonic/gin"
)

var authService *services.AuthService

func SetAuthService(service *services.AuthService) {
	authService = service
}

// GoogleSignIn exchanges a Google identity token for a session token.
func GoogleSignIn(c *gin.Context) {
	var input struct {
		IDToken  string `json:"idToken" binding:"required"`
		DeviceID string `json:"deviceId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID token is required"})
		return
	}

	user, token, isNew, err := authService.SignInWithGoogle(c.Request.Context(), input.IDToken, input.DeviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"user":      user,
		"isNewUser": isNew,
	})
}

// Me returns the authenticated user's record.
func Me(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	fresh, err := authService.Me(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": fresh})
}

// Logout deactivates the presented session.
func Logout(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	token := c.GetString(middlewares.ContextTokenKey)
	if err := authService.Logout(user.ID, token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
