// Package timefmt turns elapsed milliseconds into key display strings.
package timefmt

import (
	"fmt"

	"deckwatch/internal/core/model"
)

// Format renders elapsedMs using the selected format. Every unit is
// truncated, never rounded. Unknown formats fall back to mm:ss.
func Format(elapsedMs int64, format model.Format) string {
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	totalSeconds := elapsedMs / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch format {
	case model.FormatHourMinSec:
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	case model.FormatMinSecTenths:
		tenths := (elapsedMs % 1000) / 100
		return fmt.Sprintf("%02d:%02d.%d", totalSeconds/60, seconds, tenths)
	default:
		if hours > 0 {
			return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
		}
		return fmt.Sprintf("%d:%02d", minutes, seconds)
	}
}
