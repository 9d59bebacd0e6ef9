package controllers

import (
	"SlowDown/models"
	"SlowDown/services"
)

// UsageManager is what the usage handlers need from the usage service.
type UsageManager interface {
	ResyncTotal(user models.User, dateKey string, totalMinutes float64, appUsage map[string]float64) (services.DaySummary, error)
	AddDelta(user models.User, appLabel string, minutes float64) (services.DaySummary, error)
	Today(user models.User) (services.DaySummary, error)
	History(userID string, days int) ([]models.UsageRecord, error)
	Stats(userID string, days int) (services.UsageStats, error)
}

// TimeRequestManager is what the time-request handlers need.
type TimeRequestManager interface {
	Create(userID string, requestedMinutes int, reason string) (models.TimeRequest, error)
	Approve(requestID, adminID string, approvedMinutes int, note string) (models.TimeRequest, error)
	Reject(requestID, adminID, note string) (models.TimeRequest, error)
	Cancel(requestID, userID string) error
	ListAll(status string) ([]models.TimeRequest, error)
	ListForUser(userID string) ([]models.TimeRequest, error)
	PendingForUser(userID string) (*models.TimeRequest, error)
}
