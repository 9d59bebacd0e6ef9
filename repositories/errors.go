package repositories

import "errors"

var (
	// ErrNotFound means the user, record or request id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicatePending means the user already has a pending time request.
	ErrDuplicatePending = errors.New("a pending time request already exists")

	// ErrAlreadyProcessed means the time request reached a terminal state
	// and cannot be processed again.
	ErrAlreadyProcessed = errors.New("time request has already been processed")
)
