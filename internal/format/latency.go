package format

import (
	"fmt"
	"time"
)

// FormatLatency renders a latency given in nanoseconds with the largest unit
// that keeps the value >= 1. Sub-microsecond latencies stay in ns, where
// the per-call measurements of fast strategies live.
func FormatLatency(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.1f ns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.2f µs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.2f ms", ns/1e6)
	}
	return fmt.Sprintf("%.2f s", ns/1e9)
}

// FormatDuration renders d with FormatLatency.
func FormatDuration(d time.Duration) string {
	return FormatLatency(float64(d.Nanoseconds()))
}
