package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a setting has an invalid value.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownStyle indicates a style name missing from the palette.
	ErrUnknownStyle = errors.New("unknown style")
)

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Field is the setting key that failed validation.
	Field string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is implements error matching for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func invalid(field string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Value: value}
}
