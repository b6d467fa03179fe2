package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibbench/internal/logging"
)

// HandleCalculationError classifies a failed run, writes a one-line
// diagnostic to out, and returns the matching process exit code.
//
// Parameters:
//   - err: The error that ended the run.
//   - duration: How long the run lasted before failing.
//   - out: Destination for the human-readable diagnostic.
//   - log: Optional structured logger; may be nil.
//
// Returns:
//   - int: The exit code for the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, log logging.Logger) int {
	code := ExitCodeForError(err)

	switch code {
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Calculation canceled after %s.\n", duration.Round(time.Millisecond))
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Calculation timed out after %s: %v\n", duration.Round(time.Millisecond), err)
	default:
		fmt.Fprintf(out, "Calculation failed after %s: %v\n", duration.Round(time.Millisecond), err)
	}

	if log != nil {
		log.Error("calculation failed", err,
			logging.String("duration", duration.String()),
			logging.Int("exit_code", code),
		)
	}
	return code
}

// ExitCodeForError maps an error to the application exit code table.
// Context cancellation takes precedence over type classification so a
// SIGINT during a slow strategy always exits with the SIGINT convention.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	}

	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitErrorTimeout
	}
	var configErr ConfigError
	if errors.As(err, &configErr) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
