package controllers

import (
	"net/http"
	"strconv"

	"SlowDown/middlewares"

	"github.com/gin-gonic/gin"
)

var usageService UsageManager

func SetUsageService(service UsageManager) {
	usageService = service
}

// SyncUsage replaces today's record with a device-reported absolute
// reading. The stored total only ever moves up.
func SyncUsage(c *gin.Context) {
	var input struct {
		Date         string             `json:"date"`
		TotalMinutes float64            `json:"totalMinutes"`
		AppUsage     map[string]float64 `json:"appUsage"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	user := middlewares.CurrentUser(c)
	summary, err := usageService.ResyncTotal(user, input.Date, input.TotalMinutes, input.AppUsage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "usage": summary})
}

// AddUsage credits a few freshly observed minutes to today's record.
func AddUsage(c *gin.Context) {
	var input struct {
		AppName string  `json:"appName"`
		Minutes float64 `json:"minutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Minutes value is required"})
		return
	}

	user := middlewares.CurrentUser(c)
	summary, err := usageService.AddDelta(user, input.AppName, input.Minutes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "usage": summary})
}

// TodayUsage returns today's usage summary, zeroed if nothing was synced yet.
func TodayUsage(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	summary, err := usageService.Today(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "usage": summary})
}

// UsageHistory returns the most recent daily records, default one week.
func UsageHistory(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	user := middlewares.CurrentUser(c)
	records, err := usageService.History(user.ID, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": records})
}
