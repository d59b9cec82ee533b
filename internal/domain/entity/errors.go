package entity

import "errors"

var (
	// ErrInvalidInput signals failed input validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidUser is returned when a referenced user does not exist.
	ErrInvalidUser = errors.New("invalid user")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail signals an email collision at registration.
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrNotAuthorized signals an authenticated caller without rights over the resource.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrTaskNotFound is returned when a task lookup misses.
	ErrTaskNotFound = errors.New("task not found")
	// ErrStoreUnavailable signals an infrastructure-level store failure,
	// distinguishable from every business-rule error above.
	ErrStoreUnavailable = errors.New("store unavailable")
)
