// Package apperrors defines the calculator's structured error types,
// separating configuration mistakes, malformed input, evaluation failures
// and timeouts, and maps each class to a process exit code.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Types that carry a cause implement Unwrap() to support errors.Is() and errors.As().
package apperrors
