package engine

import (
	"time"

	"github.com/julianstephens/arise/internal/models"
	"github.com/julianstephens/arise/internal/utils"
)

// HeatmapColors maps intensity 0..5 to a display color.
var HeatmapColors = []string{"#001a1a", "#003333", "#006266", "#009199", "#00c4cc", "#00f7ff"}

// Intensity buckets study seconds by whole hours, saturating at five.
func Intensity(studySeconds int64) int {
	hours := studySeconds / 3600
	if hours > 5 {
		return 5
	}
	if hours < 0 {
		return 0
	}
	return int(hours)
}

// RecordStudy adds seconds to the study total of date (YYYY-MM-DD).
func (e *Engine) RecordStudy(date string, seconds int64) {
	if seconds <= 0 || date == "" {
		return
	}
	e.heatmap[date] += seconds
	e.saveHeatmap()
}

// StudyOn returns the recorded study seconds for date.
func (e *Engine) StudyOn(date string) int64 {
	return e.heatmap[date]
}

// HeatmapMonth lays out every day of the month containing month. Days
// without study time are included with zero seconds.
func (e *Engine) HeatmapMonth(month time.Time) []models.Cell {
	days := utils.MonthDays(month)
	cells := make([]models.Cell, len(days))
	for i, d := range days {
		secs := e.heatmap[d]
		cells[i] = models.Cell{Date: d, Day: i + 1, StudyTime: secs, Intensity: Intensity(secs)}
	}
	return cells
}
