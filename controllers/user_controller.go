package controllers

import (
	"net/http"
	"strconv"

	"SlowDown/middlewares"
	"SlowDown/services"

	"github.com/gin-gonic/gin"
)

var userService *services.UserService

func SetUserService(service *services.UserService) {
	userService = service
}

// ListUsers returns every account. Admin only.
func ListUsers(c *gin.Context) {
	users, err := userService.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// GetUser returns one user with today's usage and quota state.
// Non-admins can only look at themselves.
func GetUser(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	targetID := c.Param("id")

	if !actor.IsAdmin() && actor.ID != targetID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
		return
	}

	overview, err := userService.GetOverview(targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": overview})
}

// CreateUser provisions an account ahead of first sign-in. Admin only.
func CreateUser(c *gin.Context) {
	var input services.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	user, err := userService.CreateUser(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// UpdateUser applies a partial update. Admins can touch limits, bonus,
// role and the block flag; users can only rename themselves.
func UpdateUser(c *gin.Context) {
	var input services.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	actor := middlewares.CurrentUser(c)
	user, err := userService.UpdateUser(actor, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UserStats returns aggregate usage over the last N days (default 7).
// Non-admins can only look at themselves.
func UserStats(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	targetID := c.Param("id")

	if !actor.IsAdmin() && actor.ID != targetID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	stats, err := usageService.Stats(targetID, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
