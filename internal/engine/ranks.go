package engine

import "github.com/julianstephens/arise/internal/models"

// Ranks is ordered highest threshold first; the first match wins.
var Ranks = []models.Rank{
	{MinLevel: 100, Name: "National Level Hunter", Color: "#ff6b35"},
	{MinLevel: 80, Name: "S-Rank Hunter", Color: "#d100d1"},
	{MinLevel: 60, Name: "A-Rank Hunter", Color: "#4169E1"},
	{MinLevel: 40, Name: "B-Rank Hunter", Color: "#FF6347"},
	{MinLevel: 20, Name: "C-Rank Hunter", Color: "#FFD700"},
	{MinLevel: 10, Name: "D-Rank Hunter", Color: "#ADFF2F"},
	{MinLevel: 1, Name: "E-Rank Hunter", Color: "#90EE90"},
	{MinLevel: 0, Name: "Civilian", Color: "#666"},
}

func RankFor(level int) models.Rank {
	for _, r := range Ranks {
		if level >= r.MinLevel {
			return r
		}
	}
	return Ranks[len(Ranks)-1]
}
