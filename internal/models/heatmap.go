package models

// HeatmapDay is one day of study history. Entries are unique by Date.
type HeatmapDay struct {
	Date      string `json:"date"` // YYYY-MM-DD format
	StudyTime int64  `json:"studyTime"`
}

// Cell is a rendered heatmap day for a calendar month.
type Cell struct {
	Date      string
	Day       int
	StudyTime int64
	Intensity int // 0 (none) through 5
}
