package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a fatal error (overflow, capacity, allocation, self-check).
	ExitErrorMismatch = 3   // Indicates at least one benchmark produced an incorrect result.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// OverflowError reports that the next addition in a strategy would have
// exceeded the maximum value of the result type.
type OverflowError struct {
	// Strategy is the display name of the strategy that detected the overflow.
	Strategy string
	// N is the Fibonacci index being computed when the overflow was detected.
	N uint64
}

// Error returns a formatted message describing the overflow.
func (e OverflowError) Error() string {
	return fmt.Sprintf("overflow detected in %s computing F(%d)", e.Strategy, e.N)
}

// CapacityError reports that an index does not fit in a fixed-size lookup
// table. The table is never read past its end.
type CapacityError struct {
	// Index is the requested index.
	Index uint64
	// Capacity is the length of the table.
	Capacity int
}

// Error returns a formatted message describing the capacity violation.
func (e CapacityError) Error() string {
	return fmt.Sprintf("cache size too small: index %d, capacity %d", e.Index, e.Capacity)
}

// ResourceError reports that a working buffer could not be allocated.
type ResourceError struct {
	// Requested is the number of elements the operation needed.
	Requested uint64
	// Limit is the maximum number of elements that may be allocated.
	Limit uint64
}

// Error returns a formatted message describing the allocation failure.
func (e ResourceError) Error() string {
	return fmt.Sprintf("memory allocation failed: requested %d elements (limit: %d)", e.Requested, e.Limit)
}

// MismatchError reports that a strategy returned a value that disagrees with
// the reference value for the same input. It is the only recoverable
// benchmark error: it aborts the current measurement, not the program.
type MismatchError struct {
	Strategy string
	N        uint64
	Got      uint64
	Want     uint64
}

// Error returns a formatted message describing the mismatch.
func (e MismatchError) Error() string {
	return fmt.Sprintf("incorrect result for %s: F(%d) = %d, want %d", e.Strategy, e.N, e.Got, e.Want)
}

// SelfCheckError reports that a strategy failed the startup check against a
// known Fibonacci value.
type SelfCheckError struct {
	Strategy string
	N        uint64
	Got      uint64
	Want     uint64
	// Cause is set when the strategy itself returned an error.
	Cause error
}

// Error returns a formatted message describing the failed self-check.
func (e SelfCheckError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("self-check %s F(%d) failed: %v", e.Strategy, e.N, e.Cause)
	}
	return fmt.Sprintf("self-check failed: %s F(%d) = %d, want %d", e.Strategy, e.N, e.Got, e.Want)
}

// Unwrap returns the underlying cause, if any.
func (e SelfCheckError) Unwrap() error { return e.Cause }

// IsFatal reports whether err must terminate the whole program. Overflow,
// capacity, resource and self-check errors are fatal; mismatches, cancellation
// and nil are not.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var (
		overflow  OverflowError
		capacity  CapacityError
		resource  ResourceError
		selfCheck SelfCheckError
	)
	return errors.As(err, &overflow) ||
		errors.As(err, &capacity) ||
		errors.As(err, &resource) ||
		errors.As(err, &selfCheck)
}

// IsMismatch reports whether err is, or wraps, a MismatchError.
func IsMismatch(err error) bool {
	var mismatch MismatchError
	return errors.As(err, &mismatch)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error returned by the application to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsContextError(err):
		return ExitErrorCanceled
	case IsFatal(err):
		return ExitErrorGeneric
	case IsMismatch(err):
		return ExitErrorMismatch
	}
	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
