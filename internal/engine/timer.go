package engine

import (
	"time"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

// Timer semantics: starting the running activity stops it (toggle), starting
// a different one switches the session over without flushing, and the whole
// session is credited to whichever activity is active when it ends.

// Start begins or switches the timer. Starting the activity that is already
// running stops it and returns the flush events.
func (e *Engine) Start(a models.ActivityType) ([]Event, error) {
	if !a.Valid() {
		return nil, ErrInvalidActivity
	}
	if e.timer.Active == a {
		return e.Stop()
	}
	if e.timer.Active == "" {
		e.timer.Elapsed = 0
		e.timer.LastTick = e.now()
	}
	e.timer.Active = a
	e.saveTimer()
	return nil, nil
}

// Stop flushes the elapsed session into today's counters and goes idle.
func (e *Engine) Stop() ([]Event, error) {
	if e.timer.Active == "" {
		return nil, ErrTimerIdle
	}
	e.catchUp()
	active, elapsed := e.timer.Active, e.timer.Elapsed
	e.timer = models.TimerSession{}
	e.saveTimer()

	e.daily.Add(active, elapsed)
	e.saveCounters()
	if active != models.ActivityStudy || elapsed == 0 {
		return nil, nil
	}
	return e.creditStudy(elapsed), nil
}

// Pause is Stop: a paused session is flushed, not held.
func (e *Engine) Pause() ([]Event, error) { return e.Stop() }

// Reset discards the running session without crediting it.
func (e *Engine) Reset() {
	if e.timer.Active == "" && e.timer.Elapsed == 0 {
		return
	}
	e.timer = models.TimerSession{}
	e.saveTimer()
}

// Tick advances a running timer by one second.
func (e *Engine) Tick() {
	if e.timer.Active == "" {
		return
	}
	e.timer.Elapsed++
	e.timer.LastTick = e.now()
	e.saveTimer()
}

// Timer returns the active activity ("" when idle) and the session's elapsed seconds.
func (e *Engine) Timer() (models.ActivityType, int64) {
	return e.timer.Active, e.timer.Elapsed
}

// catchUp credits whole seconds that passed since the last recorded tick,
// e.g. between two CLI invocations.
func (e *Engine) catchUp() {
	if e.timer.Active == "" || e.timer.LastTick.IsZero() {
		return
	}
	gap := e.now().Sub(e.timer.LastTick)
	if gap < time.Second {
		return
	}
	whole := int64(gap / time.Second)
	e.timer.Elapsed += whole
	e.timer.LastTick = e.timer.LastTick.Add(time.Duration(whole) * time.Second)
}

// AddManualTime credits minutes of activity as if a timer had been flushed.
// Non-positive input is a no-op.
func (e *Engine) AddManualTime(a models.ActivityType, minutes int) ([]Event, error) {
	if !a.Valid() {
		return nil, ErrInvalidActivity
	}
	if minutes <= 0 {
		return nil, nil
	}
	seconds := int64(minutes) * 60

	e.daily.Add(a, seconds)
	e.lifetime.Add(a, seconds)
	// Already in lifetime, so the next daily reset must not fold it in again.
	e.credited.Add(a, seconds)
	e.saveCounters()

	if a != models.ActivityStudy {
		return nil, nil
	}
	return e.creditStudy(seconds), nil
}

// creditStudy applies the study-only side effects of flushed time.
func (e *Engine) creditStudy(seconds int64) []Event {
	var events []Event
	if evs, err := e.UpdateQuestProgress(constants.StudyQuestID, seconds); err == nil {
		events = append(events, evs...)
	}
	e.RecordStudy(e.today(), seconds)
	events = append(events, e.GrantStudyXP(seconds)...)
	return events
}
