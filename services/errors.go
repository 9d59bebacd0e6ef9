package services

import "errors"

var (
	// ErrInvalidInput covers bad shapes and ranges, rejected before any
	// state change.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden is a role or ownership violation.
	ErrForbidden = errors.New("access denied")

	// ErrAccountBlocked means an admin has blocked the account.
	ErrAccountBlocked = errors.New("account has been blocked")

	// ErrInvalidToken covers missing, malformed and expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)
