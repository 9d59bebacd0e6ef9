package repositories

import "SlowDown/models"

type TimeRequestRepository interface {
	// CreatePending creates a pending request and sets the user's pending
	// pointer, failing with ErrDuplicatePending if one already exists.
	// Runs in a single transaction.
	CreatePending(request *models.TimeRequest) error

	// Approve marks the request approved, credits the user's bonus minutes
	// and clears the pending pointer, all in one transaction.
	Approve(requestID, adminID string, approvedMinutes int, note string) (models.TimeRequest, error)

	// Reject marks the request rejected and clears the pending pointer. No
	// bonus change.
	Reject(requestID, adminID, note string) (models.TimeRequest, error)

	// DeletePending removes the user's own still-pending request and clears
	// the pending pointer.
	DeletePending(requestID, userID string) error

	FindByID(id string) (models.TimeRequest, error)

	// FindAll returns every request (optionally filtered by status) with the
	// requester preloaded, pending first then newest first.
	FindAll(status string) ([]models.TimeRequest, error)

	// FindByUser returns one user's requests, newest first.
	FindByUser(userID string) ([]models.TimeRequest, error)

	// FindPendingByUser returns the user's pending request, or ErrNotFound.
	FindPendingByUser(userID string) (models.TimeRequest, error)
}
