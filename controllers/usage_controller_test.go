package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"SlowDown/middlewares"
	"SlowDown/models"
	"SlowDown/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUsageManager implements UsageManager for handler tests.
type MockUsageManager struct {
	mock.Mock
}

func (m *MockUsageManager) ResyncTotal(user models.User, dateKey string, totalMinutes float64, appUsage map[string]float64) (services.DaySummary, error) {
	args := m.Called(user, dateKey, totalMinutes, appUsage)
	return args.Get(0).(services.DaySummary), args.Error(1)
}

func (m *MockUsageManager) AddDelta(user models.User, appLabel string, minutes float64) (services.DaySummary, error) {
	args := m.Called(user, appLabel, minutes)
	return args.Get(0).(services.DaySummary), args.Error(1)
}

func (m *MockUsageManager) Today(user models.User) (services.DaySummary, error) {
	args := m.Called(user)
	return args.Get(0).(services.DaySummary), args.Error(1)
}

func (m *MockUsageManager) History(userID string, days int) ([]models.UsageRecord, error) {
	args := m.Called(userID, days)
	return args.Get(0).([]models.UsageRecord), args.Error(1)
}

func (m *MockUsageManager) Stats(userID string, days int) (services.UsageStats, error) {
	args := m.Called(userID, days)
	return args.Get(0).(services.UsageStats), args.Error(1)
}

func usageTestRouter(user models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middlewares.ContextUserKey, user)
		c.Next()
	})
	r.POST("/api/usage/sync", SyncUsage)
	r.POST("/api/usage/add", AddUsage)
	r.GET("/api/usage/today", TodayUsage)
	r.GET("/api/usage/history", UsageHistory)
	return r
}

func TestSyncUsageHandler(t *testing.T) {
	mockService := new(MockUsageManager)
	SetUsageService(mockService)
	user := models.User{ID: "u1", DailyLimitMinutes: 30}
	router := usageTestRouter(user)

	summary := services.DaySummary{Date: "2025-01-05", TotalMinutes: 22.5, RemainingMinutes: 7.5}
	mockService.On("ResyncTotal", user, "2025-01-05", 22.5,
		map[string]float64{"Instagram": 22.5}).Return(summary, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"date":         "2025-01-05",
		"totalMinutes": 22.5,
		"appUsage":     map[string]float64{"Instagram": 22.5},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/usage/sync", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool                `json:"success"`
		Usage   services.DaySummary `json:"usage"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, 22.5, response.Usage.TotalMinutes)
	mockService.AssertExpectations(t)
}

func TestSyncUsageHandlerBadBody(t *testing.T) {
	SetUsageService(new(MockUsageManager))
	router := usageTestRouter(models.User{ID: "u1"})

	req := httptest.NewRequest(http.MethodPost, "/api/usage/sync", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddUsageHandler(t *testing.T) {
	mockService := new(MockUsageManager)
	SetUsageService(mockService)
	user := models.User{ID: "u1"}
	router := usageTestRouter(user)

	summary := services.DaySummary{TotalMinutes: 10}
	mockService.On("AddDelta", user, "Instagram", 2.5).Return(summary, nil)

	body, _ := json.Marshal(map[string]interface{}{"appName": "Instagram", "minutes": 2.5})
	req := httptest.NewRequest(http.MethodPost, "/api/usage/add", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestAddUsageHandlerInvalidMinutes(t *testing.T) {
	mockService := new(MockUsageManager)
	SetUsageService(mockService)
	user := models.User{ID: "u1"}
	router := usageTestRouter(user)

	mockService.On("AddDelta", user, "Instagram", -2.0).
		Return(services.DaySummary{}, services.ErrInvalidInput)

	body, _ := json.Marshal(map[string]interface{}{"appName": "Instagram", "minutes": -2})
	req := httptest.NewRequest(http.MethodPost, "/api/usage/add", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTodayUsageHandler(t *testing.T) {
	mockService := new(MockUsageManager)
	SetUsageService(mockService)
	user := models.User{ID: "u1", DailyLimitMinutes: 30}
	router := usageTestRouter(user)

	summary := services.DaySummary{Date: "2025-01-05", RemainingMinutes: 30}
	mockService.On("Today", user).Return(summary, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/usage/today", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUsageHistoryHandlerDefaultDays(t *testing.T) {
	mockService := new(MockUsageManager)
	SetUsageService(mockService)
	user := models.User{ID: "u1"}
	router := usageTestRouter(user)

	mockService.On("History", "u1", 7).Return([]models.UsageRecord{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/usage/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUsageHistoryHandlerCustomDays(t *testing.T) {
	mockService := new(MockUsageManager)
	SetUsageService(mockService)
	user := models.User{ID: "u1"}
	router := usageTestRouter(user)

	mockService.On("History", "u1", 30).Return([]models.UsageRecord{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/usage/history?days=30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
