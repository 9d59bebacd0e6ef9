package services

import (
	"errors"
	"fmt"

	"SlowDown/models"
	"SlowDown/repositories"

	"github.com/rs/zerolog"
)

type TimeRequestService struct {
	RequestRepo repositories.TimeRequestRepository
	Log         zerolog.Logger
}

func NewTimeRequestService(requestRepo repositories.TimeRequestRepository, log zerolog.Logger) *TimeRequestService {
	return &TimeRequestService{
		RequestRepo: requestRepo,
		Log:         log.With().Str("component", "time_request").Logger(),
	}
}

// Create opens a pending request. One pending request per user; the
// repository enforces that atomically.
func (s *TimeRequestService) Create(userID string, requestedMinutes int, reason string) (models.TimeRequest, error) {
	if requestedMinutes <= 0 {
		return models.TimeRequest{}, fmt.Errorf("%w: requested minutes must be positive", ErrInvalidInput)
	}

	request := models.TimeRequest{
		UserID:           userID,
		RequestedMinutes: requestedMinutes,
		Reason:           reason,
	}
	if err := s.RequestRepo.CreatePending(&request); err != nil {
		return models.TimeRequest{}, err
	}

	s.Log.Info().Str("user", userID).Int("minutes", requestedMinutes).Msg("time request created")
	return request, nil
}

// Approve grants bonus minutes. approvedMinutes may differ from the
// requested amount; zero means "grant what was asked".
func (s *TimeRequestService) Approve(requestID, adminID string, approvedMinutes int, note string) (models.TimeRequest, error) {
	if approvedMinutes < 0 {
		return models.TimeRequest{}, fmt.Errorf("%w: approved minutes cannot be negative", ErrInvalidInput)
	}
	if approvedMinutes == 0 {
		request, err := s.RequestRepo.FindByID(requestID)
		if err != nil {
			return models.TimeRequest{}, err
		}
		approvedMinutes = request.RequestedMinutes
	}

	request, err := s.RequestRepo.Approve(requestID, adminID, approvedMinutes, note)
	if err != nil {
		return models.TimeRequest{}, err
	}

	s.Log.Info().Str("request", requestID).Str("admin", adminID).
		Int("minutes", approvedMinutes).Msg("time request approved")
	return request, nil
}

func (s *TimeRequestService) Reject(requestID, adminID, note string) (models.TimeRequest, error) {
	request, err := s.RequestRepo.Reject(requestID, adminID, note)
	if err != nil {
		return models.TimeRequest{}, err
	}

	s.Log.Info().Str("request", requestID).Str("admin", adminID).Msg("time request rejected")
	return request, nil
}

// Cancel lets a user withdraw their own still-pending request.
func (s *TimeRequestService) Cancel(requestID, userID string) error {
	return s.RequestRepo.DeletePending(requestID, userID)
}

// ListAll is the admin view: every request, pending first then newest,
// optionally filtered by status.
func (s *TimeRequestService) ListAll(status string) ([]models.TimeRequest, error) {
	switch status {
	case "", models.RequestStatusPending, models.RequestStatusApproved, models.RequestStatusRejected:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.RequestRepo.FindAll(status)
}

// ListForUser is the user view: their own requests, newest first.
func (s *TimeRequestService) ListForUser(userID string) ([]models.TimeRequest, error) {
	return s.RequestRepo.FindByUser(userID)
}

// PendingForUser returns the user's open request, or nil when none exists.
func (s *TimeRequestService) PendingForUser(userID string) (*models.TimeRequest, error) {
	request, err := s.RequestRepo.FindPendingByUser(userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}
