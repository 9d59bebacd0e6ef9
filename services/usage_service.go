package services

import (
	"errors"
	"fmt"

	"SlowDown/models"
	"SlowDown/quota"
	"SlowDown/repositories"
	"SlowDown/timeutil"

	"github.com/rs/zerolog"
)

// DaySummary is the wire shape for one user-day of usage, with the quota
// state computed against the user's current allowance.
type DaySummary struct {
	Date                string             `json:"date"`
	TotalMinutes        float64            `json:"totalMinutes"`
	AppUsage            map[string]float64 `json:"appUsage"`
	DailyLimit          int                `json:"dailyLimit"`
	BonusMinutes        int                `json:"bonusMinutes"`
	TotalAllowedMinutes int                `json:"totalAllowedMinutes"`
	RemainingMinutes    float64            `json:"remainingMinutes"`
	IsLimitExceeded     bool               `json:"isLimitExceeded"`
	ShouldBlock         bool               `json:"shouldBlock"`
}

type UsageService struct {
	UsageRepo   repositories.UsageRepository
	OffsetHours int
	Log         zerolog.Logger
}

func NewUsageService(usageRepo repositories.UsageRepository, offsetHours int, log zerolog.Logger) *UsageService {
	return &UsageService{
		UsageRepo:   usageRepo,
		OffsetHours: offsetHours,
		Log:         log.With().Str("component", "usage").Logger(),
	}
}

// ResyncTotal merges a cumulative device reading into the server record:
// monotonic max on the total, wholesale replace of the app map. Negative
// values are clamped at this boundary.
func (s *UsageService) ResyncTotal(user models.User, dateKey string, totalMinutes float64, appUsage map[string]float64) (DaySummary, error) {
	if dateKey == "" {
		dateKey = timeutil.TodayKey(s.OffsetHours)
	}
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	clean := make(map[string]float64, len(appUsage))
	for app, minutes := range appUsage {
		if minutes < 0 {
			minutes = 0
		}
		clean[app] = minutes
	}

	record := models.UsageRecord{
		UserID:       user.ID,
		DateKey:      dateKey,
		TotalMinutes: totalMinutes,
	}
	record.SetAppUsage(clean)

	merged, err := s.UsageRepo.UpsertMax(record)
	if err != nil {
		return DaySummary{}, err
	}

	s.Log.Debug().Str("user", user.ID).Str("date", dateKey).
		Float64("total", merged.TotalMinutes).Msg("usage synced")
	return s.summarize(user, merged), nil
}

// AddDelta applies a measured delta for one app: additive, not a max. The
// two merge modes must never be mixed for the same observation.
func (s *UsageService) AddDelta(user models.User, appLabel string, minutes float64) (DaySummary, error) {
	if minutes <= 0 {
		return DaySummary{}, fmt.Errorf("%w: minutes must be positive", ErrInvalidInput)
	}

	dateKey := timeutil.TodayKey(s.OffsetHours)
	record, err := s.UsageRepo.AddDelta(user.ID, dateKey, appLabel, minutes)
	if err != nil {
		return DaySummary{}, err
	}
	return s.summarize(user, record), nil
}

// Today reads the current day. A missing record is a zero day, not an
// error.
func (s *UsageService) Today(user models.User) (DaySummary, error) {
	dateKey := timeutil.TodayKey(s.OffsetHours)
	record, err := s.UsageRepo.FindByUserAndDate(user.ID, dateKey)
	if errors.Is(err, repositories.ErrNotFound) {
		record = models.UsageRecord{UserID: user.ID, DateKey: dateKey}
	} else if err != nil {
		return DaySummary{}, err
	}
	return s.summarize(user, record), nil
}

// History returns the user's records for the last N days, newest first.
func (s *UsageService) History(userID string, days int) ([]models.UsageRecord, error) {
	if days <= 0 {
		days = 7
	}
	since := timeutil.DateKey(timeutil.Now(s.OffsetHours).AddDate(0, 0, -(days-1)), s.OffsetHours)
	return s.UsageRepo.FindSince(userID, since)
}

// UsageStats aggregates a history window.
type UsageStats struct {
	Records        []models.UsageRecord `json:"records"`
	TotalMinutes   float64              `json:"totalMinutes"`
	AverageMinutes int                  `json:"averageMinutes"`
	DaysTracked    int                  `json:"daysTracked"`
}

// Stats summarizes the last N days of usage.
func (s *UsageService) Stats(userID string, days int) (UsageStats, error) {
	records, err := s.History(userID, days)
	if err != nil {
		return UsageStats{}, err
	}

	stats := UsageStats{Records: records, DaysTracked: len(records)}
	for _, r := range records {
		stats.TotalMinutes += r.TotalMinutes
	}
	if len(records) > 0 {
		stats.AverageMinutes = int(stats.TotalMinutes/float64(len(records)) + 0.5)
	}
	return stats, nil
}

func (s *UsageService) summarize(user models.User, record models.UsageRecord) DaySummary {
	status := quota.Compute(quota.Inputs{
		DailyLimitMinutes: user.DailyLimitMinutes,
		BonusMinutes:      user.BonusMinutes,
		TodayUsedMinutes:  record.TotalMinutes,
		IsBlocked:         user.IsBlocked,
	})
	return DaySummary{
		Date:                record.DateKey,
		TotalMinutes:        record.TotalMinutes,
		AppUsage:            record.AppUsageMap(),
		DailyLimit:          user.DailyLimitMinutes,
		BonusMinutes:        user.BonusMinutes,
		TotalAllowedMinutes: status.TotalAllowedMinutes,
		RemainingMinutes:    status.RemainingMinutes,
		IsLimitExceeded:     status.IsTimeUp,
		ShouldBlock:         status.EffectiveBlock,
	}
}
