package port

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint would be violated.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput is returned when a request references unknown records
	// or carries values outside the allowed domain.
	ErrInvalidInput = errors.New("invalid input")
)
