package ui

import (
	"fmt"
	"time"
)

// FormatPct formats a weight percentage with precision that follows its magnitude:
// two decimals from 1%, four decimals from 0.01%, scientific below that
func FormatPct(v float64) string {
	switch {
	case v >= 1:
		return fmt.Sprintf("%.2f%%", v)
	case v >= 0.01:
		return fmt.Sprintf("%.4f%%", v)
	default:
		return fmt.Sprintf("%.3e%%", v)
	}
}

// FormatPPM formats a parts-per-million content
func FormatPPM(v float64) string {
	return fmt.Sprintf("%.1f ppm", v)
}

// FormatDuration formats a duration as a human-readable string
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	if d < time.Hour {
		return d.Round(time.Second).String()
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hours, minutes)
}

// FormatBytes formats bytes as human-readable size
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	fbytes := float64(bytes)

	if bytes >= GB {
		return fmt.Sprintf("%.2f GB", fbytes/GB)
	} else if bytes >= MB {
		return fmt.Sprintf("%.2f MB", fbytes/MB)
	} else if bytes >= KB {
		return fmt.Sprintf("%.2f KB", fbytes/KB)
	}
	return fmt.Sprintf("%d B", bytes)
}
