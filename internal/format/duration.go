// Package format renders durations and decimal strings for the terminal.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration prints microseconds below a millisecond,
// milliseconds below a second and time.Duration's own form above.
// Sub-microsecond durations print as "< 1µs".
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}
