package bench

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatNanos renders d as thousands-grouped nanoseconds, e.g. "1,234,567ns".
func FormatNanos(d time.Duration) string {
	return humanize.Comma(d.Nanoseconds()) + "ns"
}
