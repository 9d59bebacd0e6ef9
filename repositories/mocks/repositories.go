// Package mocks holds testify mocks for the repository interfaces.
package mocks

import (
	"SlowDown/models"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(id string) (models.User, error) {
	args := m.Called(id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(email string) (models.User, error) {
	args := m.Called(email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) FindAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *UserRepository) Save(user models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

type UsageRepository struct {
	mock.Mock
}

func (m *UsageRepository) FindByUserAndDate(userID, dateKey string) (models.UsageRecord, error) {
	args := m.Called(userID, dateKey)
	return args.Get(0).(models.UsageRecord), args.Error(1)
}

func (m *UsageRepository) UpsertMax(record models.UsageRecord) (models.UsageRecord, error) {
	args := m.Called(record)
	return args.Get(0).(models.UsageRecord), args.Error(1)
}

func (m *UsageRepository) AddDelta(userID, dateKey, appLabel string, minutes float64) (models.UsageRecord, error) {
	args := m.Called(userID, dateKey, appLabel, minutes)
	return args.Get(0).(models.UsageRecord), args.Error(1)
}

func (m *UsageRepository) FindSince(userID, sinceKey string) ([]models.UsageRecord, error) {
	args := m.Called(userID, sinceKey)
	return args.Get(0).([]models.UsageRecord), args.Error(1)
}

type TimeRequestRepository struct {
	mock.Mock
}

func (m *TimeRequestRepository) CreatePending(request *models.TimeRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *TimeRequestRepository) Approve(requestID, adminID string, approvedMinutes int, note string) (models.TimeRequest, error) {
	args := m.Called(requestID, adminID, approvedMinutes, note)
	return args.Get(0).(models.TimeRequest), args.Error(1)
}

func (m *TimeRequestRepository) Reject(requestID, adminID, note string) (models.TimeRequest, error) {
	args := m.Called(requestID, adminID, note)
	return args.Get(0).(models.TimeRequest), args.Error(1)
}

func (m *TimeRequestRepository) DeletePending(requestID, userID string) error {
	args := m.Called(requestID, userID)
	return args.Error(0)
}

func (m *TimeRequestRepository) FindByID(id string) (models.TimeRequest, error) {
	args := m.Called(id)
	return args.Get(0).(models.TimeRequest), args.Error(1)
}

func (m *TimeRequestRepository) FindAll(status string) ([]models.TimeRequest, error) {
	args := m.Called(status)
	return args.Get(0).([]models.TimeRequest), args.Error(1)
}

func (m *TimeRequestRepository) FindByUser(userID string) ([]models.TimeRequest, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.TimeRequest), args.Error(1)
}

func (m *TimeRequestRepository) FindPendingByUser(userID string) (models.TimeRequest, error) {
	args := m.Called(userID)
	return args.Get(0).(models.TimeRequest), args.Error(1)
}

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(session *models.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *SessionRepository) FindActiveByUser(userID string) ([]models.Session, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *SessionRepository) Deactivate(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}
