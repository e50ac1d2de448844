package domain

import (
	"errors"
	"fmt"
)

// ErrValidation signals a missing or malformed request parameter.
var ErrValidation = errors.New("validation failed")

// ValidationError wraps ErrValidation with the offending parameter.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: parameter %q %s", ErrValidation.Error(), e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewMissingParam creates a validation error for a required parameter that was not supplied.
func NewMissingParam(param string) error {
	return &ValidationError{Param: param, Reason: "is required"}
}

// NewInvalidParam creates a validation error for a parameter that could not be parsed.
func NewInvalidParam(param, reason string) error {
	return &ValidationError{Param: param, Reason: reason}
}
