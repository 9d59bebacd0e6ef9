package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageRecord is one user-day of usage. TotalMinutes only ever grows within
// a day (monotonic merge); a new record is created when the date key rolls
// over instead of mutating the old one.
type UsageRecord struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       string    `json:"userId" gorm:"type:uuid;uniqueIndex:idx_usage_user_date;not null"`
	DateKey      string    `json:"date" gorm:"uniqueIndex:idx_usage_user_date;not null"`
	TotalMinutes float64   `json:"totalMinutes" gorm:"default:0"`
	AppUsage     string    `json:"-" gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r *UsageRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.AppUsage == "" {
		r.AppUsage = "{}"
	}
	return nil
}

// AppUsageMap decodes the per-app minutes column. A malformed or empty
// column decodes to an empty map rather than failing a read path.
func (r *UsageRecord) AppUsageMap() map[string]float64 {
	out := map[string]float64{}
	if r.AppUsage == "" {
		return out
	}
	if err := json.Unmarshal([]byte(r.AppUsage), &out); err != nil {
		return map[string]float64{}
	}
	return out
}

// SetAppUsage encodes the per-app minutes column.
func (r *UsageRecord) SetAppUsage(apps map[string]float64) {
	if apps == nil {
		apps = map[string]float64{}
	}
	raw, err := json.Marshal(apps)
	if err != nil {
		raw = []byte("{}")
	}
	r.AppUsage = string(raw)
}

// MarshalJSON flattens the JSONB column into an object field on the wire.
func (r UsageRecord) MarshalJSON() ([]byte, error) {
	type alias UsageRecord
	return json.Marshal(struct {
		alias
		AppUsage map[string]float64 `json:"appUsage"`
	}{alias(r), r.AppUsageMap()})
}
