package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a wall-clock duration for log lines and
// result rows. Durations under a millisecond render as whole microseconds,
// durations under a second as whole milliseconds, and anything longer falls
// back to time.Duration's own formatting.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%d\u00b5s", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatSeconds renders a duration as seconds with ten decimal places, the
// fixed-width form used by the timing ranking. Sub-microsecond differences
// stay visible without scientific notation.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.10f", d.Seconds())
}
