package handlers

import "errors"

var (
	// ErrValidationFailed is returned when a required check fails.
	ErrValidationFailed = errors.New("configuration failed required checks")

	errInvalidSpeed = errors.New("--speed must be greater than zero")
)
