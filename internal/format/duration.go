package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders d for the result tables. Sub-millisecond
// values are shown in whole microseconds and sub-second values in whole
// milliseconds; anything longer uses time.Duration's own notation.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}
