package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultDailyLimit is the base daily quota in minutes for new users.
const DefaultDailyLimit = 30

// AdminDailyLimit is the effectively-unlimited quota admins get.
const AdminDailyLimit = 999

type User struct {
	ID                   string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email                string    `json:"email" gorm:"uniqueIndex;not null"`
	DisplayName          string    `json:"displayName"`
	PhotoURL             string    `json:"photoURL"`
	Role                 string    `json:"role" gorm:"default:user"`
	DailyLimitMinutes    int       `json:"dailyLimitMinutes" gorm:"default:30"`
	BonusMinutes         int       `json:"bonusMinutes" gorm:"default:0"`
	IsBlocked            bool      `json:"isBlocked" gorm:"default:false"`
	BlockReason          string    `json:"blockReason,omitempty"`
	PendingTimeRequestID *string   `json:"pendingTimeRequestId,omitempty" gorm:"type:uuid"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPendingRequest reports whether a non-terminal time request exists.
func (u User) HasPendingRequest() bool {
	return u.PendingTimeRequestID != nil && *u.PendingTimeRequestID != ""
}
