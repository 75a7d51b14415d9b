package engine

import (
	"testing"

	"github.com/julianstephens/arise/internal/models"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0s"},
		{59, "59s"},
		{61, "1m 1s"},
		{3723, "1h 2m 3s"},
		{3600, "1h 0s"},
		{-5, "0s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.secs); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestProductivity(t *testing.T) {
	tests := []struct {
		name string
		c    models.Counters
		want int
	}{
		{"no time", models.Counters{}, 0},
		{"idle only", models.Counters{Idle: 500}, 0},
		{"all study", models.Counters{Study: 100}, 100},
		{"two thirds", models.Counters{Study: 200, Play: 100, Idle: 900}, 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Productivity(tt.c); got != tt.want {
				t.Errorf("Productivity() = %d, want %d", got, tt.want)
			}
		})
	}
}
