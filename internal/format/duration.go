package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a generation time for display: microseconds
// below a millisecond, milliseconds below a second, time.Duration's own
// format otherwise.
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
