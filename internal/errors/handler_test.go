package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"wrapped deadline", WrapError(context.DeadlineExceeded, "calc"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"validation", NewValidationError("n", "negative"), ExitErrorConfig},
		{"memory", MemoryError{Requested: 10, Limit: 1}, ExitErrorConfig},
		{"timeout type", TimeoutError{Operation: "x", Limit: time.Second}, ExitErrorTimeout},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		contains string
	}{
		{"nil prints nothing", nil, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, ExitErrorTimeout, "timed out"},
		{"canceled", context.Canceled, ExitErrorCanceled, "canceled"},
		{"generic", errors.New("overflow"), ExitErrorGeneric, "overflow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, time.Second, &buf, plainColors{})
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if tt.contains == "" && buf.Len() != 0 {
				t.Errorf("expected no output, got %q", buf.String())
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %q should contain %q", buf.String(), tt.contains)
			}
		})
	}
}
