package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2   // deadline exceeded
	ExitErrorMismatch = 3   // backends disagree on F(n)
	ExitErrorConfig   = 4   // bad flags, bad host arguments, memory budget
	ExitErrorCanceled = 130 // SIGINT
)

// ConfigError reports unusable command-line or environment settings.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError marks a failure raised by a backend. It unwraps to Cause.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports an operation that ran past Limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure, typically a host
// value that could not be converted at the native boundary.
type ValidationError struct {
	// Field is the name of the field or argument that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// MemoryError reports an estimated footprint above the --memory-limit budget.
// Both fields are in bytes.
type MemoryError struct {
	Requested uint64
	Limit     uint64
}

func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: estimated %d bytes exceeds limit of %d bytes", e.Requested, e.Limit)
}

// WrapError prefixes err with a formatted message, keeping it matchable with
// errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err comes from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
