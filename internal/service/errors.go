package service

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	// ErrValidation marks malformed input. It is always wrapped with a description
	// the caller can show to the user.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable wraps failures of the persistence backend. The operation
	// that returned it did not durably record anything.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrExerciseExists   = errors.New("exercise already exists")
	ErrExportDisabled   = errors.New("workout export is not configured")
	ErrUnauthenticated  = errors.New("unauthenticated")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
