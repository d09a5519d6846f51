package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("trade not found")
	ErrValidation = errors.New("validation failed")

	ErrIllegalTransition = errors.New("illegal status transition")
	// The two cancel rejections are distinct so that callers can tell a
	// repeated cancel apart from a conflicting history.
	ErrCannotCancelExecuted = fmt.Errorf("%w: cannot cancel executed trade", ErrIllegalTransition)
	ErrAlreadyCancelled     = fmt.Errorf("%w: trade is already cancelled", ErrIllegalTransition)
)

// ValidationError names the rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
