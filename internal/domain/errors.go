package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrExternalService marks a failed call to a third-party API. The
	// operation is safe to retry.
	ErrExternalService = errors.New("external service unavailable")

	// ErrLocationNotFound means the geocoder returned no match.
	ErrLocationNotFound = errors.New("location not found")

	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInUse means a delete was refused because other rows still
	// reference the record.
	ErrInUse = errors.New("record is still referenced")

	// ErrUnavailable means an optional feature is not configured.
	ErrUnavailable = errors.New("feature not configured")
)

// UniqueViolation reports a write that collided with a unique column.
type UniqueViolation struct {
	Field string
	Err   error
}

func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("%s is already taken", e.Field)
}

func (e *UniqueViolation) Unwrap() error { return e.Err }
