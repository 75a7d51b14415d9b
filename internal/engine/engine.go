// Package engine holds the reward and progression state machine: timers,
// XP and levels, daily quests, the shadow roster and the study heatmap.
//
// An Engine is not safe for concurrent use. Exactly one goroutine owns it
// and applies every mutation, including the tick and day-poll signals.
package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/arise/internal/models"
	"github.com/julianstephens/arise/internal/utils"
)

// KV is the persistence port. storage.Provider satisfies it.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type Options struct {
	// Location decides calendar-day boundaries. Defaults to time.Local.
	Location *time.Location
	Now      func() time.Time
	Rand     Randomizer
	NewID    func() string
}

type Engine struct {
	kv    KV
	loc   *time.Location
	now   func() time.Time
	rand  Randomizer
	newID func() string
	table drawTable

	daily     models.Counters
	lifetime  models.Counters
	credited  models.Counters
	lastReset string

	xp    float64
	level int
	rank  models.Rank

	quests   models.DailyQuests
	tokens   int
	currency int

	slots   int
	shadows []models.Shadow

	heatmap map[string]int64
	todos   []models.Todo
	profile models.Profile
	timer   models.TimerSession
}

// Load builds an engine from the persisted state in kv. Missing or malformed
// values fall back to their defaults. The returned events cover whatever
// happened while the engine was closed: a day rollover and the pending
// player qualification.
func Load(kv KV, opts Options) (*Engine, []Event) {
	e := &Engine{
		kv:      kv,
		loc:     opts.Location,
		now:     opts.Now,
		rand:    opts.Rand,
		newID:   opts.NewID,
		table:   newDrawTable(Catalog),
		heatmap: make(map[string]int64),
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.rand == nil {
		e.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}

	e.loadState()

	var events []Event
	events = append(events, e.CheckDay()...)
	if e.quests.Date != e.today() {
		e.quests = newDailyQuests(e.today())
		e.saveQuests()
	}
	if !e.profile.PlayerAccepted {
		events = append(events, Event{Kind: EventPlayerQualification, Message: QualificationMessage})
	}
	return e, events
}

func (e *Engine) today() string {
	return utils.DateIn(e.now(), e.loc)
}

// Today returns the current calendar date in the engine's timezone.
func (e *Engine) Today() string { return e.today() }

func (e *Engine) Location() *time.Location { return e.loc }

// Snapshot is a read-only copy of the engine state for display.
type Snapshot struct {
	Today     string
	Daily     models.Counters
	Lifetime  models.Counters
	AllTime   models.Counters
	XP        float64
	Level     int
	Rank      models.Rank
	XPPercent float64

	Timer models.TimerSession

	Quests   []models.Quest
	Tokens   int
	Currency int

	Slots    int
	SlotCost int
	Shadows  []models.Shadow
	Buffs    models.Buffs

	Todos   []models.Todo
	Profile models.Profile
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Today:     e.today(),
		Daily:     e.daily,
		Lifetime:  e.lifetime,
		AllTime:   e.AllTime(),
		XP:        e.xp,
		Level:     e.level,
		Rank:      e.rank,
		XPPercent: XPPercent(e.xp),
		Timer:     e.timer,
		Quests:    e.Quests(),
		Tokens:    e.tokens,
		Currency:  e.currency,
		Slots:     e.slots,
		SlotCost:  e.SlotCost(),
		Shadows:   e.Roster(),
		Buffs:     e.TotalBuffs(),
		Todos:     e.Todos(),
		Profile:   e.profile,
	}
}

func (e *Engine) Daily() models.Counters { return e.daily }

// Lifetime returns the counters folded in by past daily resets plus manual entries.
func (e *Engine) Lifetime() models.Counters { return e.lifetime }

// AllTime is Lifetime plus today's timer time not yet folded in.
func (e *Engine) AllTime() models.Counters {
	return e.lifetime.Plus(e.daily.Sub(e.credited))
}

func (e *Engine) Tokens() int   { return e.tokens }
func (e *Engine) Currency() int { return e.currency }
