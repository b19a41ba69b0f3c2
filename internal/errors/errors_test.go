// Package apperrors provides tests for application error types.
package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
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
			err:      NewConfigError("unknown generator %q", "slow"),
			expected: `unknown generator "slow"`,
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		tt := tt
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

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := NewValidationError("n", "must be >= 0, got %d", -3)
	want := `validation error for "n": must be >= 0, got -3`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	wrapped := fmt.Errorf("parse flags: %w", err)
	var valErr ValidationError
	if !errors.As(wrapped, &valErr) {
		t.Fatal("errors.As should find ValidationError through wrapping")
	}
	if valErr.Field != "n" {
		t.Errorf("Field = %q, want %q", valErr.Field, "n")
	}
}

func TestGenerationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         GenerationError
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "with generator name",
			err:         GenerationError{Generator: "uint64", Cause: errors.New("overflow")},
			expectedMsg: "uint64: overflow",
		},
		{
			name:        "without generator name",
			err:         GenerationError{Cause: errors.New("boom")},
			expectedMsg: "boom",
		},
		{
			name:        "errors.Is reaches the cause",
			err:         GenerationError{Generator: "big", Cause: context.Canceled},
			expectedMsg: "big: context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			if tt.checkIs != nil && !errors.Is(tt.err, tt.checkIs) {
				t.Errorf("errors.Is(%v) should be true", tt.checkIs)
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "generate", Limit: 5 * time.Second}
	want := `operation "generate" timed out after 5s`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := WrapError(base, "writing %s", "out.txt")
	if wrapped.Error() != "writing out.txt: base" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("wrapped: %w", context.Canceled), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"validation", NewValidationError("n", "negative"), ExitErrorConfig},
		{"wrapped validation", WrapError(NewValidationError("n", "negative"), "parse"), ExitErrorConfig},
		{"timeout type", TimeoutError{Operation: "x", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", GenerationError{Generator: "big", Cause: context.DeadlineExceeded}, ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHandleGenerationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		contains string
	}{
		{"success", nil, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, ExitErrorTimeout, "Timeout"},
		{"canceled", context.Canceled, ExitErrorCanceled, "Canceled"},
		{"generic", errors.New("boom"), ExitErrorGeneric, "boom"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleGenerationError(tt.err, time.Second, &buf)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %q should contain %q", buf.String(), tt.contains)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorMismatch, ExitErrorConfig, ExitErrorCanceled}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}
