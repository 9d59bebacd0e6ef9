package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// TimeRequest is a user's ask for bonus minutes. pending -> approved or
// pending -> rejected; both are terminal. At most one pending request per
// user, enforced with a partial unique index.
type TimeRequest struct {
	ID               string     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           string     `json:"userId" gorm:"type:uuid;index;not null;uniqueIndex:idx_one_pending_per_user,where:status = 'pending'"`
	RequestedMinutes int        `json:"requestedMinutes" gorm:"not null"`
	ApprovedMinutes  int        `json:"approvedMinutes,omitempty"`
	Reason           string     `json:"reason"`
	Status           string     `json:"status" gorm:"default:pending;index"`
	AdminID          string     `json:"adminId,omitempty" gorm:"type:uuid"`
	AdminNote        string     `json:"adminNote,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	ProcessedAt      *time.Time `json:"processedAt,omitempty"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (r *TimeRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Processed reports whether the request reached a terminal state.
func (r TimeRequest) Processed() bool {
	return r.Status != RequestStatusPending
}
