package controllers

import (
	"net/http"
	"time"

	"SlowDown/config"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness and database connectivity.
func HealthCheck(c *gin.Context) {
	dbStatus := "ok"
	if config.DB != nil {
		if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "unreachable"
		}
	} else {
		dbStatus = "not configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"status":   "up",
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
