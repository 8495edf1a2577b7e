package utils

import "fmt"

// FormatDuration renders milliseconds as HH:MM:SS. Hours are padded to two
// digits and grow past that when needed.
func FormatDuration(milliseconds int64) string {
	if milliseconds < 0 {
		milliseconds = 0
	}

	totalSeconds := milliseconds / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
