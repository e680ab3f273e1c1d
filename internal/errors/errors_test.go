package apperrors

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--threshold"),
			expected: "invalid value 42 for flag --threshold",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		cause       error
		expectedMsg string
		checkIs     error
		checkUnwrap bool
	}{
		{
			name:        "Error returns cause message",
			cause:       errors.New("division by zero"),
			expectedMsg: "division by zero",
		},
		{
			name:        "Unwrap returns cause",
			cause:       errors.New("original error"),
			expectedMsg: "original error",
			checkUnwrap: true,
		},
		{
			name:        "errors.Is works with wrapped error",
			cause:       context.Canceled,
			expectedMsg: "context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CalculationError{Cause: tt.cause}

			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}

			if tt.checkUnwrap && err.Unwrap() != tt.cause {
				t.Error("Unwrap should return the original cause")
			}

			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         TimeoutError
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns formatted message",
			err:      TimeoutError{Operation: "evaluate", Limit: 30 * time.Second},
			expected: `operation "evaluate" timed out after 30s`,
		},
		{
			name:     "Error with subsecond limit",
			err:      TimeoutError{Operation: "batch", Limit: 500 * time.Millisecond},
			expected: `operation "batch" timed out after 500ms`,
		},
		{
			name:        "errors.As works with TimeoutError",
			err:         TimeoutError{Operation: "repl", Limit: 10 * time.Second},
			expected:    `operation "repl" timed out after 10s`,
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = tt.err
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
			if tt.checkTypeAs {
				var timeoutErr TimeoutError
				if !errors.As(err, &timeoutErr) {
					t.Error("expected error to be TimeoutError type")
				}
				if timeoutErr.Operation != tt.err.Operation {
					t.Errorf("expected Operation %q, got %q", tt.err.Operation, timeoutErr.Operation)
				}
				if timeoutErr.Limit != tt.err.Limit {
					t.Errorf("expected Limit %v, got %v", tt.err.Limit, timeoutErr.Limit)
				}
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := error(ValidationError{Field: "brute-threshold", Message: "must be 0 (auto) or at least 2 limbs, got 1"})
	if want := `validation error for "brute-threshold": must be 0 (auto) or at least 2 limbs, got 1`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	var valErr ValidationError
	if !errors.As(WrapError(err, "parsing flags"), &valErr) || valErr.Field != "brute-threshold" {
		t.Errorf("errors.As lost the field through WrapError: %#v", valErr)
	}
}

func TestMemoryError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         MemoryError
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns formatted message",
			err:      MemoryError{Requested: 1073741824, Available: 536870912, Limit: 1073741824},
			expected: "memory error: requested 1073741824 bytes, available 536870912 bytes (limit: 1073741824)",
		},
		{
			name:     "Error with small values",
			err:      MemoryError{Requested: 1024, Available: 512, Limit: 2048},
			expected: "memory error: requested 1024 bytes, available 512 bytes (limit: 2048)",
		},
		{
			name:        "errors.As works with MemoryError",
			err:         MemoryError{Requested: 4096, Available: 2048, Limit: 8192},
			expected:    "memory error: requested 4096 bytes, available 2048 bytes (limit: 8192)",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = tt.err
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
			if tt.checkTypeAs {
				var memErr MemoryError
				if !errors.As(err, &memErr) {
					t.Error("expected error to be MemoryError type")
				}
				if memErr.Requested != tt.err.Requested {
					t.Errorf("expected Requested %d, got %d", tt.err.Requested, memErr.Requested)
				}
				if memErr.Available != tt.err.Available {
					t.Errorf("expected Available %d, got %d", tt.err.Available, memErr.Available)
				}
				if memErr.Limit != tt.err.Limit {
					t.Errorf("expected Limit %d, got %d", tt.err.Limit, memErr.Limit)
				}
			}
		})
	}
}

func TestNewErrorTypes_ErrorsAsWithWrapping(t *testing.T) {
	t.Parallel()

	t.Run("TimeoutError wrapped in CalculationError", func(t *testing.T) {
		t.Parallel()
		inner := TimeoutError{Operation: "evaluate", Limit: 5 * time.Second}
		err := CalculationError{Cause: inner}

		var timeoutErr TimeoutError
		if !errors.As(err, &timeoutErr) {
			t.Error("errors.As should find TimeoutError through CalculationError")
		}
	})

	t.Run("MemoryError wrapped in CalculationError", func(t *testing.T) {
		t.Parallel()
		inner := MemoryError{Requested: 4096, Available: 1024, Limit: 2048}
		err := CalculationError{Cause: inner}

		var memErr MemoryError
		if !errors.As(err, &memErr) {
			t.Error("errors.As should find MemoryError through CalculationError")
		}
	})
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "line %d", 3) != nil {
		t.Error("WrapError(nil, ...) should return nil")
	}

	tests := []struct {
		cause error
		want  string
		code  int
	}{
		{ErrDivisionByZero, "line 5: division by zero", ExitErrorEval},
		{SyntaxError{Input: "1+", Offset: 2, Message: "expected operand"}, "line 5: ", ExitErrorEval},
		{context.DeadlineExceeded, "line 5: context deadline exceeded", ExitErrorTimeout},
		{ValidationError{Field: "timeout", Message: "must be strictly positive"}, "line 5: validation error", ExitErrorConfig},
		{errors.New("disk full"), "line 5: disk full", ExitErrorGeneric},
	}
	for _, tt := range tests {
		wrapped := WrapError(tt.cause, "line %d", 5)
		if !strings.HasPrefix(wrapped.Error(), tt.want) {
			t.Errorf("WrapError(%v) = %q, want prefix %q", tt.cause, wrapped, tt.want)
		}
		if !errors.Is(wrapped, tt.cause) {
			t.Errorf("WrapError(%v) broke the chain", tt.cause)
		}
		if code := ExitCodeFromError(wrapped); code != tt.code {
			t.Errorf("ExitCodeFromError(WrapError(%v)) = %d, want %d", tt.cause, code, tt.code)
		}
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := IsContextError(tt.err)
			if result != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	// Verify exit codes are distinct and match expected values
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorEval":     ExitErrorEval,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	// Check expected values
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	// Check all codes are unique
	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}

func TestSyntaxError(t *testing.T) {
	t.Parallel()
	err := SyntaxError{Input: "12a4", Offset: 2, Message: "unexpected character 'a'"}
	want := `syntax error at offset 2 in "12a4": unexpected character 'a'`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	var syntaxErr SyntaxError
	if !errors.As(WrapError(err, "parse"), &syntaxErr) || syntaxErr.Offset != 2 {
		t.Error("errors.As should find SyntaxError through WrapError")
	}
}

func TestEvalError(t *testing.T) {
	t.Parallel()
	err := EvalError{Op: "/", Cause: ErrDivisionByZero}
	if got, want := err.Error(), "evaluating /: division by zero"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, ErrDivisionByZero) {
		t.Error("errors.Is should find ErrDivisionByZero through EvalError")
	}
	var memErr MemoryError
	if !errors.As(EvalError{Op: "*", Cause: MemoryError{Requested: 10, Limit: 5}}, &memErr) {
		t.Error("errors.As should find MemoryError through EvalError")
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitErrorGeneric},
		{"timeout", TimeoutError{Operation: "evaluate", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", WrapError(context.DeadlineExceeded, "evaluate"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"validation", ValidationError{Field: "timeout", Message: "must be positive"}, ExitErrorConfig},
		{"syntax", SyntaxError{Input: "+", Message: "expected operand"}, ExitErrorEval},
		{"division by zero", EvalError{Op: "%", Cause: ErrDivisionByZero}, ExitErrorEval},
		{"bare division by zero", ErrDivisionByZero, ExitErrorEval},
		{"memory", MemoryError{Requested: 2, Limit: 1}, ExitErrorEval},
		{"calculation", CalculationError{Cause: errors.New("kernel")}, ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFromError(tt.err); got != tt.want {
				t.Errorf("ExitCodeFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
