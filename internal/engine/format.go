package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

// FormatDuration renders seconds as "1h 2m 3s", dropping zero hours and minutes.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))
	return strings.Join(parts, " ")
}

// Productivity is study time as a rounded percentage of study plus play.
func Productivity(c models.Counters) int {
	total := c.Study + c.Play
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(c.Study) / float64(total) * 100))
}

// XPPercent is progress through the current level, 0 to 100.
func XPPercent(xp float64) float64 {
	if xp <= 0 {
		return 0
	}
	return math.Mod(xp, constants.LevelXPQuantum) / constants.LevelXPQuantum * 100
}

// XPToNextLevel is the XP still needed to reach the next level.
func XPToNextLevel(xp float64) float64 {
	next := float64(LevelFor(xp)) * constants.LevelXPQuantum
	return next - xp
}
