package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session tracks an issued token per device. The token itself is never
// stored, only a bcrypt hash of its digest.
type Session struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       string    `json:"userId" gorm:"type:uuid;index;not null"`
	DeviceID     string    `json:"deviceId"`
	TokenHash    string    `json:"-"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	LastActivity time.Time `json:"lastActivity"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
