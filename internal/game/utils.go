package game

import (
	"fmt"
	"strings"
	"time"
)

// stripLevels go from idle to a full frame budget; '!' marks an overrun.
const stripLevels = " .:-=+*#"

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS, or H:MM:SS past the hour.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// frameStrip renders one character per frame duration, scaled against budget.
func frameStrip(samples []time.Duration, budget time.Duration) string {
	var b strings.Builder
	b.Grow(len(samples))
	for _, d := range samples {
		if budget <= 0 || d > budget {
			b.WriteByte('!')
			continue
		}
		i := int(clamp01(float64(d)/float64(budget)) * float64(len(stripLevels)-1))
		b.WriteByte(stripLevels[i])
	}
	return b.String()
}

func peak(samples []time.Duration) time.Duration {
	var m time.Duration
	for _, d := range samples {
		if d > m {
			m = d
		}
	}
	return m
}
