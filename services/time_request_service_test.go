package services

import (
	"testing"

	"SlowDown/models"
	"SlowDown/repositories"
	"SlowDown/repositories/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRequestService(repo *mocks.TimeRequestRepository) *TimeRequestService {
	return NewTimeRequestService(repo, zerolog.Nop())
}

func TestCreateRequestRejectsNonPositiveMinutes(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	_, err := service.Create("u1", 0, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Create("u1", -15, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	mockRepo.AssertNotCalled(t, "CreatePending", mock.Anything)
}

func TestCreateRequest(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	mockRepo.On("CreatePending", mock.MatchedBy(func(r *models.TimeRequest) bool {
		return r.UserID == "u1" && r.RequestedMinutes == 15 && r.Reason == "homework done"
	})).Return(nil)

	request, err := service.Create("u1", 15, "homework done")

	assert.NoError(t, err)
	assert.Equal(t, 15, request.RequestedMinutes)
	mockRepo.AssertExpectations(t)
}

func TestCreateRequestDuplicatePending(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	mockRepo.On("CreatePending", mock.Anything).Return(repositories.ErrDuplicatePending)

	_, err := service.Create("u1", 15, "")

	assert.ErrorIs(t, err, repositories.ErrDuplicatePending)
}

func TestApproveDefaultsToRequestedMinutes(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	pending := models.TimeRequest{ID: "r1", UserID: "u1", RequestedMinutes: 20}
	approved := pending
	approved.Status = models.RequestStatusApproved
	approved.ApprovedMinutes = 20

	mockRepo.On("FindByID", "r1").Return(pending, nil)
	mockRepo.On("Approve", "r1", "admin1", 20, "ok").Return(approved, nil)

	request, err := service.Approve("r1", "admin1", 0, "ok")

	assert.NoError(t, err)
	assert.Equal(t, 20, request.ApprovedMinutes)
	mockRepo.AssertExpectations(t)
}

func TestApproveWithOverriddenMinutes(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	approved := models.TimeRequest{ID: "r1", Status: models.RequestStatusApproved, ApprovedMinutes: 10}
	mockRepo.On("Approve", "r1", "admin1", 10, "").Return(approved, nil)

	request, err := service.Approve("r1", "admin1", 10, "")

	assert.NoError(t, err)
	assert.Equal(t, 10, request.ApprovedMinutes)
	// No lookup needed when the admin names an amount.
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestApproveRejectsNegativeMinutes(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	_, err := service.Approve("r1", "admin1", -5, "")

	assert.ErrorIs(t, err, ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveAlreadyProcessed(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	mockRepo.On("Approve", "r1", "admin1", 10, "").
		Return(models.TimeRequest{}, repositories.ErrAlreadyProcessed)

	_, err := service.Approve("r1", "admin1", 10, "")

	assert.ErrorIs(t, err, repositories.ErrAlreadyProcessed)
}

func TestReject(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	rejected := models.TimeRequest{ID: "r1", Status: models.RequestStatusRejected, AdminNote: "not today"}
	mockRepo.On("Reject", "r1", "admin1", "not today").Return(rejected, nil)

	request, err := service.Reject("r1", "admin1", "not today")

	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, request.Status)
}

func TestListAllValidatesStatusFilter(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	_, err := service.ListAll("bogus")
	assert.ErrorIs(t, err, ErrInvalidInput)

	mockRepo.On("FindAll", models.RequestStatusPending).Return([]models.TimeRequest{}, nil)
	_, err = service.ListAll(models.RequestStatusPending)
	assert.NoError(t, err)
}

func TestPendingForUserNoneIsNil(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	mockRepo.On("FindPendingByUser", "u1").Return(models.TimeRequest{}, repositories.ErrNotFound)

	request, err := service.PendingForUser("u1")

	assert.NoError(t, err)
	assert.Nil(t, request)
}

func TestPendingForUser(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	pending := models.TimeRequest{ID: "r1", UserID: "u1", Status: models.RequestStatusPending}
	mockRepo.On("FindPendingByUser", "u1").Return(pending, nil)

	request, err := service.PendingForUser("u1")

	assert.NoError(t, err)
	assert.NotNil(t, request)
	assert.Equal(t, "r1", request.ID)
}

func TestCancelDelegates(t *testing.T) {
	mockRepo := new(mocks.TimeRequestRepository)
	service := newRequestService(mockRepo)

	mockRepo.On("DeletePending", "r1", "u1").Return(repositories.ErrNotFound)

	err := service.Cancel("r1", "u1")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
