package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates generators disagreed on the sequence.
	ExitErrorConfig   = 4   // Indicates a configuration or argument error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as an unknown flag
// value or an unregistered generator name.
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

// ValidationError is the invalid-argument kind: an input value that the
// caller should never have passed, such as a negative sequence length.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field with a formatted message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// GenerationError encapsulates a failure of a sequence generator while
// preserving the original cause.
type GenerationError struct {
	// Generator is the name of the generator that failed.
	Generator string
	// Cause is the underlying error.
	Cause error
}

// Error returns the generator name followed by the cause.
func (e GenerationError) Error() string {
	if e.Generator == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Generator, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e GenerationError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that exceeded its deadline.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
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

// ExitCodeFor maps an error to the process exit code it should produce.
func ExitCodeFor(err error) int {
	var (
		cfgErr     ConfigError
		valErr     ValidationError
		timeoutErr TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// HandleGenerationError prints a user-facing description of err to out and
// returns the matching exit code.
func HandleGenerationError(err error, duration time.Duration, out io.Writer) int {
	code := ExitCodeFor(err)
	switch code {
	case ExitSuccess:
		return code
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached after %s.\n", duration)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Status: Canceled by user.\n")
	default:
		fmt.Fprintf(out, "Status: Failure. Error: %v\n", err)
	}
	return code
}
