package engine

import (
	"testing"
	"time"

	"github.com/julianstephens/arise/internal/constants"
)

func TestIntensity(t *testing.T) {
	tests := []struct {
		secs int64
		want int
	}{
		{0, 0},
		{3599, 0},
		{3600, 1},
		{7199, 1},
		{4 * 3600, 4},
		{5 * 3600, 5},
		{12 * 3600, 5},
		{-10, 0},
	}
	for _, tt := range tests {
		if got := Intensity(tt.secs); got != tt.want {
			t.Errorf("Intensity(%d) = %d, want %d", tt.secs, got, tt.want)
		}
	}
	if len(HeatmapColors) != 6 {
		t.Errorf("len(HeatmapColors) = %d, want 6", len(HeatmapColors))
	}
}

func TestRecordStudy(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	e.RecordStudy("2026-03-01", 1800)
	e.RecordStudy("2026-03-01", 1800)
	e.RecordStudy("2026-02-28", 7200)
	e.RecordStudy("2026-03-02", 0)

	if got := e.StudyOn("2026-03-01"); got != 3600 {
		t.Errorf("StudyOn(03-01) = %d, want 3600", got)
	}
	days := e.HeatmapDays()
	if len(days) != 2 || days[0].Date != "2026-02-28" || days[1].Date != "2026-03-01" {
		t.Errorf("HeatmapDays() = %+v, want two days in date order", days)
	}
	if got := h.get(t, constants.KeyHeatmap); got != `[{"date":"2026-02-28","studyTime":7200},{"date":"2026-03-01","studyTime":3600}]` {
		t.Errorf("persisted heatmap = %s", got)
	}
}

func TestHeatmapMonth(t *testing.T) {
	h := newHarness(t)
	h.set(t, constants.KeyHeatmap, `[{"date":"2024-02-29","studyTime":18000},{"date":"2024-03-01","studyTime":60}]`)
	e := h.engine(t)

	cells := e.HeatmapMonth(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if len(cells) != 29 {
		t.Fatalf("len(cells) = %d, want 29", len(cells))
	}
	last := cells[28]
	if last.Date != "2024-02-29" || last.Day != 29 || last.StudyTime != 18000 || last.Intensity != 5 {
		t.Errorf("last cell = %+v", last)
	}
	if cells[0].StudyTime != 0 || cells[0].Intensity != 0 {
		t.Errorf("empty day = %+v, want zero", cells[0])
	}
}

func TestHeatmapFedByStudyTimer(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	_, _ = e.AddManualTime("study", 90)
	_, _ = e.AddManualTime("play", 90)
	if got := e.StudyOn(e.Today()); got != 5400 {
		t.Errorf("StudyOn(today) = %d, want 5400", got)
	}
}
