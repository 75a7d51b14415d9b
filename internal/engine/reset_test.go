package engine

import (
	"testing"
	"time"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

func TestDailyResetOnLoad(t *testing.T) {
	h := newHarness(t)
	h.set(t, constants.KeyLastResetDate, "2026-03-09")
	h.set(t, constants.KeyDailyTimers, `{"study":100,"play":50,"idle":10}`)
	h.set(t, constants.KeyDailyQuests, `{"date":"2026-03-09","quests":[{"id":2,"target":20,"progress":20,"completed":true}]}`)

	e, events := h.load(t)
	if !HasKind(events, EventDailyReset) {
		t.Fatalf("events = %+v, want daily_reset", events)
	}

	want := models.Counters{Study: 100, Play: 50, Idle: 10}
	if e.Lifetime() != want {
		t.Errorf("Lifetime() = %+v, want %+v", e.Lifetime(), want)
	}
	if e.Daily() != (models.Counters{}) {
		t.Errorf("Daily() = %+v, want zero", e.Daily())
	}
	if e.LastResetDate() != "2026-03-10" || h.get(t, constants.KeyLastResetDate) != "2026-03-10" {
		t.Errorf("last reset = %q, want 2026-03-10", e.LastResetDate())
	}
	if len(e.Quests()) != len(QuestCatalog) || e.Quests()[1].Completed {
		t.Errorf("quests were not regenerated: %+v", e.Quests())
	}
}

func TestCheckDaySameDayIsNoop(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)
	if _, err := e.AddManualTime(models.ActivityPlay, 3); err != nil {
		t.Fatal(err)
	}

	h.clock.Advance(6 * time.Hour)
	for i := 0; i < 3; i++ {
		if evs := e.CheckDay(); len(evs) != 0 {
			t.Fatalf("CheckDay() on the same day = %+v", evs)
		}
	}
	if e.Daily().Play != 180 {
		t.Errorf("Daily().Play = %d, want 180", e.Daily().Play)
	}
}

func TestCheckDayDoesNotDoubleCountManualTime(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	if _, err := e.AddManualTime(models.ActivityStudy, 10); err != nil {
		t.Fatal(err)
	}
	_, _ = e.Start(models.ActivityStudy)
	h.clock.Advance(100 * time.Second)
	_, _ = e.Stop()

	if got := e.AllTime().Study; got != 700 {
		t.Errorf("AllTime().Study before reset = %d, want 700", got)
	}

	h.clock.Advance(24 * time.Hour)
	events := e.CheckDay()
	if !HasKind(events, EventDailyReset) {
		t.Fatalf("events = %+v, want daily_reset", events)
	}
	if got := e.Lifetime().Study; got != 700 {
		t.Errorf("Lifetime().Study = %d, want 700", got)
	}
	if got := h.get(t, constants.KeyCreditedTimers); got != `{"study":0,"play":0,"idle":0}` {
		t.Errorf("credited counters = %s, want zeroed", got)
	}
}

func TestResetDateFormats(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		wantReset bool
	}{
		{"plain date today", "2026-03-10", false},
		{"plain date yesterday", "2026-03-09", true},
		{"rfc3339 yesterday", "2026-03-09T23:30:00Z", true},
		{"rfc3339 today", "2026-03-10T00:05:00Z", false},
		{"garbage treated as first run", "soon", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.set(t, constants.KeyLastResetDate, tt.stored)
			_, events := h.load(t)
			if got := HasKind(events, EventDailyReset); got != tt.wantReset {
				t.Errorf("reset = %v, want %v", got, tt.wantReset)
			}
			if got := h.get(t, constants.KeyLastResetDate); got != "2026-03-10" {
				t.Errorf("stored date = %q, want 2026-03-10", got)
			}
		})
	}
}

func TestResetUsesEngineLocation(t *testing.T) {
	h := newHarness(t)
	tokyo := time.FixedZone("JST", 9*60*60)
	h.set(t, constants.KeyLastResetDate, "2026-03-10")
	// 20:00 UTC on the 10th is already the 11th in Tokyo.
	h.clock.t = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)

	_, events := Load(h.store, Options{Location: tokyo, Now: h.clock.Now, Rand: h.rng})
	if !HasKind(events, EventDailyReset) {
		t.Errorf("expected a reset at the Tokyo day boundary, events = %+v", events)
	}
}
