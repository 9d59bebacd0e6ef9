package services

import (
	"errors"
	"testing"

	"SlowDown/models"
	"SlowDown/repositories"
	"SlowDown/repositories/mocks"
	"SlowDown/timeutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUsageService(repo repositories.UsageRepository) *UsageService {
	return NewUsageService(repo, timeutil.DefaultOffsetHours, zerolog.Nop())
}

func TestResyncTotalDefaultsToToday(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)
	user := models.User{ID: "u1", DailyLimitMinutes: 30}

	today := timeutil.TodayKey(timeutil.DefaultOffsetHours)
	merged := models.UsageRecord{UserID: "u1", DateKey: today, TotalMinutes: 12}
	mockRepo.On("UpsertMax", mock.MatchedBy(func(r models.UsageRecord) bool {
		return r.UserID == "u1" && r.DateKey == today && r.TotalMinutes == 12
	})).Return(merged, nil)

	summary, err := service.ResyncTotal(user, "", 12, nil)

	assert.NoError(t, err)
	assert.Equal(t, today, summary.Date)
	assert.Equal(t, 12.0, summary.TotalMinutes)
	assert.Equal(t, 18.0, summary.RemainingMinutes)
	mockRepo.AssertExpectations(t)
}

func TestResyncTotalClampsNegativeValues(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)
	user := models.User{ID: "u1", DailyLimitMinutes: 30}

	mockRepo.On("UpsertMax", mock.MatchedBy(func(r models.UsageRecord) bool {
		apps := r.AppUsageMap()
		return r.TotalMinutes == 0 && apps["Instagram"] == 0
	})).Return(models.UsageRecord{UserID: "u1", DateKey: "2025-01-05"}, nil)

	_, err := service.ResyncTotal(user, "2025-01-05", -10, map[string]float64{"Instagram": -3})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestResyncTotalSummaryUsesMergedRecord(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)
	user := models.User{ID: "u1", DailyLimitMinutes: 30, BonusMinutes: 10}

	// The store already held a higher total, so the merge wins over the
	// submitted reading.
	merged := models.UsageRecord{UserID: "u1", DateKey: "2025-01-05", TotalMinutes: 25}
	mockRepo.On("UpsertMax", mock.Anything).Return(merged, nil)

	summary, err := service.ResyncTotal(user, "2025-01-05", 18, nil)

	assert.NoError(t, err)
	assert.Equal(t, 25.0, summary.TotalMinutes)
	assert.Equal(t, 40, summary.TotalAllowedMinutes)
	assert.Equal(t, 15.0, summary.RemainingMinutes)
	assert.False(t, summary.IsLimitExceeded)
}

func TestAddDeltaRejectsNonPositiveMinutes(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)
	user := models.User{ID: "u1"}

	_, err := service.AddDelta(user, "Instagram", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.AddDelta(user, "Instagram", -5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	mockRepo.AssertNotCalled(t, "AddDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddDeltaAppliesToToday(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)
	user := models.User{ID: "u1", DailyLimitMinutes: 30}

	today := timeutil.TodayKey(timeutil.DefaultOffsetHours)
	updated := models.UsageRecord{UserID: "u1", DateKey: today, TotalMinutes: 7.5}
	mockRepo.On("AddDelta", "u1", today, "Instagram", 2.5).Return(updated, nil)

	summary, err := service.AddDelta(user, "Instagram", 2.5)

	assert.NoError(t, err)
	assert.Equal(t, 7.5, summary.TotalMinutes)
	mockRepo.AssertExpectations(t)
}

func TestTodayMissingRecordIsZeroDay(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)
	user := models.User{ID: "u1", DailyLimitMinutes: 30}

	today := timeutil.TodayKey(timeutil.DefaultOffsetHours)
	mockRepo.On("FindByUserAndDate", "u1", today).Return(models.UsageRecord{}, repositories.ErrNotFound)

	summary, err := service.Today(user)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalMinutes)
	assert.Equal(t, 30.0, summary.RemainingMinutes)
	assert.False(t, summary.IsLimitExceeded)
}

func TestTodayPropagatesOtherErrors(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)

	dbErr := errors.New("connection refused")
	mockRepo.On("FindByUserAndDate", mock.Anything, mock.Anything).Return(models.UsageRecord{}, dbErr)

	_, err := service.Today(models.User{ID: "u1"})

	assert.ErrorIs(t, err, dbErr)
}

func TestTodayShouldBlockWhenAdminBlocked(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)
	user := models.User{ID: "u1", DailyLimitMinutes: 30, IsBlocked: true}

	mockRepo.On("FindByUserAndDate", mock.Anything, mock.Anything).
		Return(models.UsageRecord{}, repositories.ErrNotFound)

	summary, err := service.Today(user)

	assert.NoError(t, err)
	assert.True(t, summary.ShouldBlock)
	assert.False(t, summary.IsLimitExceeded)
}

func TestHistoryDefaultsToSevenDays(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)

	since := timeutil.DateKey(timeutil.Now(timeutil.DefaultOffsetHours).AddDate(0, 0, -6), timeutil.DefaultOffsetHours)
	mockRepo.On("FindSince", "u1", since).Return([]models.UsageRecord{}, nil)

	_, err := service.History("u1", 0)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)

	records := []models.UsageRecord{
		{DateKey: "2025-01-03", TotalMinutes: 30},
		{DateKey: "2025-01-02", TotalMinutes: 10},
		{DateKey: "2025-01-01", TotalMinutes: 21},
	}
	mockRepo.On("FindSince", "u1", mock.Anything).Return(records, nil)

	stats, err := service.Stats("u1", 7)

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.DaysTracked)
	assert.Equal(t, 61.0, stats.TotalMinutes)
	assert.Equal(t, 20, stats.AverageMinutes)
}

func TestStatsEmptyWindow(t *testing.T) {
	mockRepo := new(mocks.UsageRepository)
	service := newUsageService(mockRepo)

	mockRepo.On("FindSince", "u1", mock.Anything).Return([]models.UsageRecord{}, nil)

	stats, err := service.Stats("u1", 7)

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.DaysTracked)
	assert.Equal(t, 0, stats.AverageMinutes)
}
