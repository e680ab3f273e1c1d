package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the exit statuses of the calculator.
const (
	ExitSuccess       = 0   // Every expression evaluated.
	ExitErrorGeneric  = 1   // An unclassified failure.
	ExitErrorTimeout  = 2   // The --timeout deadline expired.
	ExitErrorConfig   = 4   // Invalid flags or environment.
	ExitErrorEval     = 5   // Syntax error, division by zero or memory limit.
	ExitErrorCanceled = 130 // Interrupted (SIGINT convention).
)

// ErrDivisionByZero is raised for a zero divisor. The arithmetic methods of
// bigint.Int panic with it; the checked forms and the evaluator return it.
var ErrDivisionByZero = errors.New("division by zero")

// ConfigError represents a user configuration error, such as an invalid flag
// value or conflicting options.
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

// SyntaxError reports malformed integer or expression text.
type SyntaxError struct {
	// Input is the text being parsed.
	Input string
	// Offset is the byte offset of the offending character.
	Offset int
	// Message describes what was expected.
	Message string
}

// Error returns a message pointing at the offending offset.
func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d in %q: %s", e.Offset, e.Input, e.Message)
}

// EvalError reports a failure while evaluating an expression. It preserves
// the underlying cause (division by zero, memory limit, kernel failure).
type EvalError struct {
	// Op is the operator or function that failed.
	Op string
	// Cause is the underlying error.
	Cause error
}

// Error returns the operator and the cause.
func (e EvalError) Error() string {
	return fmt.Sprintf("evaluating %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause so errors.Is(err, ErrDivisionByZero)
// holds through an EvalError.
func (e EvalError) Unwrap() error { return e.Cause }

// CalculationError encapsulates a failure of the arithmetic kernel itself,
// such as a recovered internal panic, while preserving the original cause.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation that ran past its deadline.
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

// ValidationError reports a single flag whose value is out of range.
type ValidationError struct {
	// Field is the flag name without dashes, e.g. "brute-threshold".
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError represents an operation whose estimated footprint exceeds the
// configured memory limit.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Available is the number of bytes still available under the limit.
	Available uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// WrapError prefixes err with a formatted context ("line 5: ...") and keeps
// it reachable through errors.Is and errors.As, so the exit code still
// follows the cause. A nil err stays nil.
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

// ExitCodeFromError maps an error to the process exit status.
//
// Parameters:
//   - err: The error returned by the application, possibly nil.
//
// Returns:
//   - int: One of the Exit* constants.
func ExitCodeFromError(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		timeoutErr    TimeoutError
		syntaxErr     SyntaxError
		evalErr       EvalError
		memErr        MemoryError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.As(err, &syntaxErr), errors.As(err, &evalErr), errors.As(err, &memErr),
		errors.Is(err, ErrDivisionByZero):
		return ExitErrorEval
	}
	return ExitErrorGeneric
}
