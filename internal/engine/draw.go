package engine

import (
	"sort"

	"github.com/julianstephens/arise/internal/models"
)

// Randomizer yields uniform values in [0, 1). *math/rand.Rand satisfies it.
type Randomizer interface {
	Float64() float64
}

// drawTable samples archetypes in proportion to their rarity weight.
type drawTable struct {
	entries    []models.Archetype
	cumulative []float64
}

func newDrawTable(catalog []models.Archetype) drawTable {
	t := drawTable{}
	var total float64
	for _, a := range catalog {
		w := a.Rarity.Weight()
		if w <= 0 {
			continue
		}
		total += w
		t.entries = append(t.entries, a)
		t.cumulative = append(t.cumulative, total)
	}
	return t
}

func (t drawTable) total() float64 {
	if len(t.cumulative) == 0 {
		return 0
	}
	return t.cumulative[len(t.cumulative)-1]
}

// draw maps u in [0, 1) to the first entry whose cumulative weight exceeds u*total.
func (t drawTable) draw(u float64) (models.Archetype, bool) {
	if len(t.entries) == 0 {
		return models.Archetype{}, false
	}
	target := u * t.total()
	i := sort.Search(len(t.cumulative), func(i int) bool { return t.cumulative[i] > target })
	if i >= len(t.entries) {
		i = len(t.entries) - 1
	}
	return t.entries[i], true
}

// probability returns the chance of drawing key on a single draw.
func (t drawTable) probability(key string) float64 {
	prev := 0.0
	for i, a := range t.entries {
		if a.Key == key {
			return (t.cumulative[i] - prev) / t.total()
		}
		prev = t.cumulative[i]
	}
	return 0
}
