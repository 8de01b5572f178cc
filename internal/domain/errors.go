package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every input validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError describes a malformed location, time or offset argument.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
