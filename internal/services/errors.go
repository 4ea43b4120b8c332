package services

import (
	"errors"
)

// ValidationError rejects a request before any write happens. The reason is
// safe to show to the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Invalid builds a ValidationError.
func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	// ErrSlotUnavailable means the requested slot was taken between the
	// availability check and the booking write. The caller must pick
	// another time; no retry happens server-side.
	ErrSlotUnavailable = errors.New("the selected time slot is no longer available")

	// ErrNotFound covers both a missing entity and one the caller does not
	// own. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
)
