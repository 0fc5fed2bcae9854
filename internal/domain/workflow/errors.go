package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger has no transition from the current state
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidState is returned for an unknown listing status
	ErrInvalidState = errors.New("invalid state")

	// ErrGuardFailed is returned when every guarded transition refused
	ErrGuardFailed = errors.New("guard condition failed")
)
