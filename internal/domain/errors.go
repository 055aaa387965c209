package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every ParameterError via errors.Is
var ErrInvalidParameter = errors.New("invalid projection parameter")

// ParameterError reports a single rejected projection parameter
type ParameterError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %s)", e.Field, e.Reason, e.Value)
}

// Is lets errors.Is(err, ErrInvalidParameter) match any ParameterError
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// NewParameterError builds a ParameterError
func NewParameterError(field, value, reason string) *ParameterError {
	return &ParameterError{Field: field, Value: value, Reason: reason}
}
