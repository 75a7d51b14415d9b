package engine

import (
	"math"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

// LevelFor derives the level from cumulative XP. Level is never stored
// independently of XP.
func LevelFor(xp float64) int {
	if xp < 0 {
		xp = 0
	}
	return int(math.Floor(xp/constants.LevelXPQuantum)) + 1
}

// GrantStudyXP converts study seconds into XP, boosted by the roster's xp buff.
// Fractional XP is kept.
func (e *Engine) GrantStudyXP(seconds int64) []Event {
	if seconds <= 0 {
		return nil
	}
	multiplier := 1 + e.TotalBuffs()[models.BuffXP]
	return e.addXP(float64(seconds) * multiplier)
}

// addXP is the single path that changes XP; it re-derives level and rank.
func (e *Engine) addXP(amount float64) []Event {
	if amount <= 0 {
		return nil
	}
	e.xp += amount
	events := e.observeLevel()
	e.saveProgress()
	return events
}

func (e *Engine) observeLevel() []Event {
	var events []Event
	level := LevelFor(e.xp)
	if level > e.level {
		events = append(events, levelUpEvent(level))
	}
	e.level = level

	rank := RankFor(level)
	if rank.Name != e.rank.Name {
		events = append(events, rankChangeEvent(level, rank))
	}
	e.rank = rank
	return events
}

func (e *Engine) XP() float64       { return e.xp }
func (e *Engine) Level() int        { return e.level }
func (e *Engine) Rank() models.Rank { return e.rank }
