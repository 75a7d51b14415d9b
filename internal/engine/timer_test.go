package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

func TestTimerStartStop(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	if _, err := e.Start(models.ActivityPlay); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	h.clock.Advance(90 * time.Second)
	if _, err := e.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if got := e.Daily().Play; got != 90 {
		t.Errorf("Daily().Play = %d, want 90", got)
	}
	if active, elapsed := e.Timer(); active != "" || elapsed != 0 {
		t.Errorf("Timer() = (%q, %d), want idle", active, elapsed)
	}
	if _, ok, _ := h.store.Get(constants.KeyActiveTimer); ok {
		t.Error("idle timer should not leave a persisted session")
	}
	if e.XP() != 0 {
		t.Errorf("play time must not grant XP, got %v", e.XP())
	}
}

func TestStudySessionClearsStudyGate(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	if _, err := e.Start(models.ActivityStudy); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i := 0; i < 3600; i++ {
		h.clock.Advance(time.Second)
		e.Tick()
	}
	events, err := e.Stop()
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	var gate models.Quest
	for _, q := range e.Quests() {
		if q.ID == 1 {
			gate = q
		}
	}
	if !gate.Completed || gate.Progress != 3600 {
		t.Errorf("study gate = %+v, want completed at 3600", gate)
	}
	if e.Tokens() != 1 {
		t.Errorf("Tokens() = %d, want 1", e.Tokens())
	}
	if got := e.Currency(); got != constants.DefaultCurrency+50 {
		t.Errorf("Currency() = %d, want %d", got, constants.DefaultCurrency+50)
	}
	if !approx(e.XP(), 3700) {
		t.Errorf("XP() = %v, want 3600 study + 100 reward", e.XP())
	}
	if got := e.StudyOn(e.Today()); got != 3600 {
		t.Errorf("heatmap today = %d, want 3600", got)
	}
	if !HasKind(events, EventQuestCompleted) || !HasKind(events, EventLevelUp) {
		t.Errorf("events = %+v, want gate cleared and level up", events)
	}
}

func TestTimerToggleAndSwitch(t *testing.T) {
	t.Run("same activity toggles off", func(t *testing.T) {
		h := newHarness(t)
		e := h.engine(t)
		_, _ = e.Start(models.ActivityIdle)
		h.clock.Advance(10 * time.Second)
		if _, err := e.Start(models.ActivityIdle); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if active, _ := e.Timer(); active != "" {
			t.Errorf("second Start should stop, active = %q", active)
		}
		if got := e.Daily().Idle; got != 10 {
			t.Errorf("Daily().Idle = %d, want 10", got)
		}
	})

	t.Run("different activity switches the session", func(t *testing.T) {
		h := newHarness(t)
		e := h.engine(t)
		_, _ = e.Start(models.ActivityStudy)
		h.clock.Advance(30 * time.Second)
		_, _ = e.Start(models.ActivityPlay)
		h.clock.Advance(30 * time.Second)
		_, _ = e.Stop()

		d := e.Daily()
		if d.Play != 60 || d.Study != 0 {
			t.Errorf("Daily() = %+v, want whole session credited to play", d)
		}
	})
}

func TestTimerErrors(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	if _, err := e.Start("nap"); !errors.Is(err, ErrInvalidActivity) {
		t.Errorf("Start(nap) error = %v, want ErrInvalidActivity", err)
	}
	if _, err := e.Stop(); !errors.Is(err, ErrTimerIdle) {
		t.Errorf("Stop() on idle timer error = %v, want ErrTimerIdle", err)
	}
	if _, err := e.AddManualTime("nap", 5); !errors.Is(err, ErrInvalidActivity) {
		t.Errorf("AddManualTime(nap) error = %v, want ErrInvalidActivity", err)
	}
}

func TestTimerTickAndReset(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	e.Tick() // idle tick is a no-op
	_, _ = e.Start(models.ActivityStudy)
	for i := 0; i < 3; i++ {
		e.Tick()
	}
	if _, elapsed := e.Timer(); elapsed != 3 {
		t.Fatalf("elapsed = %d, want 3", elapsed)
	}

	e.Reset()
	if active, elapsed := e.Timer(); active != "" || elapsed != 0 {
		t.Errorf("Timer() after Reset = (%q, %d)", active, elapsed)
	}
	if e.Daily().Total() != 0 {
		t.Errorf("Reset must not credit time, Daily() = %+v", e.Daily())
	}
}

func TestTimerPauseFlushes(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)
	_, _ = e.Start(models.ActivityStudy)
	h.clock.Advance(45 * time.Second)
	if _, err := e.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if e.Daily().Study != 45 {
		t.Errorf("Daily().Study = %d, want 45", e.Daily().Study)
	}
	if e.XP() != 45 {
		t.Errorf("XP() = %v, want 45", e.XP())
	}
	if e.StudyOn(e.Today()) != 45 {
		t.Errorf("heatmap today = %d, want 45", e.StudyOn(e.Today()))
	}
}

func TestTimerSessionSurvivesReload(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)
	_, _ = e.Start(models.ActivityStudy)

	h.clock.Advance(2 * time.Minute)
	reloaded := h.engine(t)
	active, elapsed := reloaded.Timer()
	if active != models.ActivityStudy || elapsed != 120 {
		t.Fatalf("Timer() after reload = (%q, %d), want (study, 120)", active, elapsed)
	}

	h.clock.Advance(1500 * time.Millisecond)
	_, _ = reloaded.Stop()
	if got := reloaded.Daily().Study; got != 121 {
		t.Errorf("Daily().Study = %d, want 121 (whole seconds only)", got)
	}
}

func TestAddManualTime(t *testing.T) {
	tests := []struct {
		name     string
		activity models.ActivityType
		minutes  int
		want     models.Counters
	}{
		{"study", models.ActivityStudy, 25, models.Counters{Study: 1500}},
		{"play", models.ActivityPlay, 10, models.Counters{Play: 600}},
		{"zero is a no-op", models.ActivityIdle, 0, models.Counters{}},
		{"negative is a no-op", models.ActivityStudy, -5, models.Counters{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			e := h.engine(t)
			if _, err := e.AddManualTime(tt.activity, tt.minutes); err != nil {
				t.Fatalf("AddManualTime() error = %v", err)
			}
			if e.Daily() != tt.want {
				t.Errorf("Daily() = %+v, want %+v", e.Daily(), tt.want)
			}
			if e.Lifetime() != tt.want {
				t.Errorf("Lifetime() = %+v, want %+v", e.Lifetime(), tt.want)
			}
			if e.AllTime() != tt.want {
				t.Errorf("AllTime() = %+v, want %+v", e.AllTime(), tt.want)
			}
		})
	}
}
