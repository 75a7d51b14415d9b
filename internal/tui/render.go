package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/models"
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// ProgressBar renders percent (0..100) as a bar of width cells.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := int(percent / 100 * float64(width))
	return xpFilledStyle.Render(strings.Repeat("█", filled)) +
		xpEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// RenderHeatmap lays the month out as a Monday-first calendar, one colored
// cell per day. today is highlighted when it falls inside the month.
func RenderHeatmap(month time.Time, cells []models.Cell, today string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(month.Format("January 2006")))
	b.WriteString("\n")

	header := make([]string, len(weekdayHeader))
	for i, d := range weekdayHeader {
		header[i] = dimStyle.Render(fmt.Sprintf("%3s", d))
	}
	b.WriteString(strings.Join(header, "") + "\n")

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	// time.Weekday starts on Sunday
	offset := (int(first.Weekday()) + 6) % 7
	row := make([]string, 0, 7)
	for i := 0; i < offset; i++ {
		row = append(row, "   ")
	}
	for _, c := range cells {
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(engine.HeatmapColors[c.Intensity])).
			Foreground(lipgloss.Color("#e0ffff"))
		if c.Date == today {
			style = style.Bold(true).Underline(true)
		}
		row = append(row, style.Render(fmt.Sprintf("%3d", c.Day)))
		if len(row) == 7 {
			b.WriteString(strings.Join(row, "") + "\n")
			row = row[:0]
		}
	}
	if len(row) > 0 {
		b.WriteString(strings.Join(row, "") + "\n")
	}

	legend := make([]string, len(engine.HeatmapColors))
	for i, c := range engine.HeatmapColors {
		legend[i] = lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("  ")
	}
	b.WriteString(dimStyle.Render("less ") + strings.Join(legend, "") + dimStyle.Render(" more (hours studied)"))
	return b.String()
}

// RankBadge renders the rank name in its own color.
func RankBadge(r models.Rank) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color)).Bold(true).Render(r.Name)
}
