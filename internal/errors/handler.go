package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when rendering an error.
// It keeps this package free of any dependency on the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit code that reports it.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		return ExitErrorConfig
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		return ExitErrorConfig
	}
	var memErr MemoryError
	if errors.As(err, &memErr) {
		return ExitErrorConfig
	}
	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitErrorTimeout
	}
	return ExitErrorGeneric
}

// HandleCalculationError prints a calculation failure to out and returns the
// matching exit code. A nil error yields ExitSuccess and prints nothing.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sCalculation timed out after %s.%s\n", colors.Yellow(), duration, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sCalculation canceled after %s.%s\n", colors.Yellow(), duration, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError during calculation: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
