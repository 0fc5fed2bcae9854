package service

import "errors"

// Logger interface for logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

var (
	// ErrInvalidInput wraps boundary validation failures
	ErrInvalidInput = errors.New("invalid input")

	// ErrListingPublished is returned when changing copy of a published listing
	ErrListingPublished = errors.New("listing is already published")

	// ErrNotValidated is returned when publishing a listing that was never validated
	ErrNotValidated = errors.New("listing has not been validated")

	// ErrPublishBlocked is returned when the latest validation does not allow publishing
	ErrPublishBlocked = errors.New("listing cannot be published until validation passes")

	// ErrCopyChanged is returned when the copy was edited while a validation was running
	ErrCopyChanged = errors.New("listing copy changed during validation")
)
