package textutil

import "fmt"

// FormatDuration renders a runtime in minutes as "2h 05min" or "45min".
// Non-positive values yield "".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	hours := minutes / 60
	if hours == 0 {
		return fmt.Sprintf("%dmin", minutes)
	}
	return fmt.Sprintf("%dh %02dmin", hours, minutes%60)
}
