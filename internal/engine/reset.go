package engine

import (
	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

// CheckDay rolls today's counters into lifetime when the calendar date has
// changed since the last reset, then regenerates the daily quests. Repeated
// calls on the same day change nothing.
func (e *Engine) CheckDay() []Event {
	today := e.today()
	if e.lastReset == "" {
		e.lastReset = today
		e.write(constants.KeyLastResetDate, today)
		return nil
	}
	if e.lastReset == today {
		return nil
	}

	// Manually added time is already in lifetime.
	e.lifetime = e.lifetime.Plus(e.daily.Sub(e.credited))
	e.daily = models.Counters{}
	e.credited = models.Counters{}
	e.saveCounters()

	e.lastReset = today
	e.write(constants.KeyLastResetDate, today)

	e.quests = newDailyQuests(today)
	e.saveQuests()

	return []Event{{Kind: EventDailyReset, Date: today, Message: "A new day has begun. Daily gates have been renewed."}}
}

func (e *Engine) LastResetDate() string { return e.lastReset }
