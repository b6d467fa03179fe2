package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExitCodeForError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"context canceled", context.Canceled, ExitErrorCanceled},
		{"wrapped cancellation", WrapError(context.Canceled, "strategy aborted"), ExitErrorCanceled},
		{"deadline exceeded", context.DeadlineExceeded, ExitErrorTimeout},
		{"timeout error type", TimeoutError{Operation: "comparison", Limit: time.Second}, ExitErrorTimeout},
		{"timeout wrapped in calculation error", CalculationError{Cause: TimeoutError{Operation: "naive recursion", Limit: time.Second}}, ExitErrorTimeout},
		{"config error", NewConfigError("bad flag"), ExitErrorConfig},
		{"validation error", ValidationError{Field: "n", Message: "must be non-negative"}, ExitErrorGeneric},
		{"plain error", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeForError(tt.err); got != tt.expected {
				t.Errorf("ExitCodeForError(%v) = %d, expected %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		err          error
		expectedCode int
		wantContains string
	}{
		{"cancellation message", context.Canceled, ExitErrorCanceled, "canceled"},
		{"timeout message", TimeoutError{Operation: "comparison", Limit: 2 * time.Second}, ExitErrorTimeout, "timed out"},
		{"generic message", errors.New("slot out of range"), ExitErrorGeneric, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, 150*time.Millisecond, &buf, nil)
			if code != tt.expectedCode {
				t.Errorf("expected exit code %d, got %d", tt.expectedCode, code)
			}
			if !strings.Contains(buf.String(), tt.wantContains) {
				t.Errorf("output %q should contain %q", buf.String(), tt.wantContains)
			}
		})
	}
}
