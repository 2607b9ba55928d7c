// Package timeutil formats elapsed times for release-sync output.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration rounds d to the nearest second and formats it as "Xh Ym Zs",
// "Ym Zs" or "Zs". Durations below half a second are reported as "<1s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	if d < time.Second/2 {
		return "<1s"
	}

	d = d.Round(time.Second)
	hours := d / time.Hour
	minutes := (d % time.Hour) / time.Minute
	seconds := (d % time.Minute) / time.Second

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// Since formats the time elapsed since start.
func Since(start time.Time) string {
	return FormatDuration(time.Since(start))
}
