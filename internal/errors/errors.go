package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Exit codes returned to the OS. Anything other than ExitSuccess means the
// run produced no trustworthy result.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic error.
	ExitErrorTimeout  = 2   // The operation timed out.
	ExitErrorMismatch = 3   // Strategies disagreed on the result.
	ExitErrorConfig   = 4   // Configuration error.
	ExitErrorCanceled = 130 // The operation was canceled (e.g., SIGINT).
)

// ConfigError reports a user configuration problem, such as an invalid flag
// or environment value. The application cannot proceed past it.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError from a format string and arguments.
func NewConfigError(format string, args ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports an input that failed validation, naming the
// offending field. A negative sequence index or an unknown strategy key
// surface as this type before any buffer is allocated.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError reports that the estimated memo table storage for a request
// exceeds what the configured limit leaves available. All sizes are bytes.
type MemoryError struct {
	Requested uint64
	Available uint64
	Limit     uint64
}

func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// TimeoutError reports that a named operation exceeded its duration limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// CalculationError marks a failure as coming from inside a strategy run. The
// cause stays reachable through errors.Is and errors.As, so a wrapped timeout
// still maps to the timeout exit code.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap exposes the original cause to the errors package helpers.
func (e CalculationError) Unwrap() error { return e.Cause }

// WrapError prefixes err with a formatted message, joined by %w so the chain
// stays inspectable. A nil err stays nil, which lets callers wrap
// unconditionally on the return path.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a context cancellation or deadline
// exceeded error, possibly wrapped.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
