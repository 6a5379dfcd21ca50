package apperrors

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrIDResolution is returned when an inserted entity's identifier cannot
	// be recovered, neither from the insert itself nor by natural-key lookup.
	ErrIDResolution = errors.New("failed to resolve inserted row identifier")
)
