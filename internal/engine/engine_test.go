package engine

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/storage"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// scriptedRand replays values in order, then repeats the last one.
type scriptedRand struct {
	values []float64
	calls  int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0
	}
	i := r.calls
	if i >= len(r.values) {
		i = len(r.values) - 1
	}
	r.calls++
	return r.values[i]
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

type harness struct {
	store *storage.MemoryStore
	clock *fakeClock
	rng   *scriptedRand
	ids   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	s := storage.NewMemoryStore()
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return &harness{
		store: s,
		clock: &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
		rng:   &scriptedRand{},
	}
}

func (h *harness) set(t *testing.T, key, value string) {
	t.Helper()
	if err := h.store.Set(key, value); err != nil {
		t.Fatalf("Set(%s) error = %v", key, err)
	}
}

func (h *harness) get(t *testing.T, key string) string {
	t.Helper()
	v, _, err := h.store.Get(key)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", key, err)
	}
	return v
}

func (h *harness) load(t *testing.T) (*Engine, []Event) {
	t.Helper()
	return Load(h.store, Options{
		Location: time.UTC,
		Now:      h.clock.Now,
		Rand:     h.rng,
		NewID: func() string {
			h.ids++
			return fmt.Sprintf("id-%d", h.ids)
		},
	})
}

func (h *harness) engine(t *testing.T) *Engine {
	t.Helper()
	e, _ := h.load(t)
	return e
}

func TestLoadDefaults(t *testing.T) {
	h := newHarness(t)
	e, events := h.load(t)

	snap := e.Snapshot()
	if snap.Currency != constants.DefaultCurrency {
		t.Errorf("Currency = %d, want %d", snap.Currency, constants.DefaultCurrency)
	}
	if snap.Slots != 1 || snap.Tokens != 0 || snap.Level != 1 || snap.XP != 0 {
		t.Errorf("unexpected defaults: slots=%d tokens=%d level=%d xp=%v", snap.Slots, snap.Tokens, snap.Level, snap.XP)
	}
	if snap.Profile.Username != constants.DefaultUsername {
		t.Errorf("Username = %q, want %q", snap.Profile.Username, constants.DefaultUsername)
	}
	if snap.Rank.Name != "E-Rank Hunter" {
		t.Errorf("Rank = %q, want E-Rank Hunter", snap.Rank.Name)
	}
	if len(snap.Quests) != len(QuestCatalog) {
		t.Errorf("len(Quests) = %d, want %d", len(snap.Quests), len(QuestCatalog))
	}
	if !HasKind(events, EventPlayerQualification) {
		t.Error("expected a player qualification event on first load")
	}
	if HasKind(events, EventDailyReset) {
		t.Error("first load must not report a daily reset")
	}
	if got := h.get(t, constants.KeyLastResetDate); got != "2026-03-10" {
		t.Errorf("lastResetDate = %q, want 2026-03-10", got)
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	h := newHarness(t)
	h.set(t, constants.KeyCurrency, "lots")
	h.set(t, constants.KeyShadowSlots, "-3")
	h.set(t, constants.KeyDailyTimers, "{broken")
	h.set(t, constants.KeyShadows, "not an array")
	h.set(t, constants.KeyTodos, "42")
	h.set(t, constants.KeyXP, "NaN?")
	h.set(t, constants.KeyDailyQuests, "[")
	h.set(t, constants.KeyActiveTimer, `{"type":"sleep","elapsed":5}`)

	e := h.engine(t)
	snap := e.Snapshot()
	if snap.Currency != constants.DefaultCurrency || snap.Slots != constants.DefaultShadowSlots {
		t.Errorf("currency=%d slots=%d, want defaults", snap.Currency, snap.Slots)
	}
	if snap.Daily.Total() != 0 || len(snap.Shadows) != 0 || len(snap.Todos) != 0 || snap.XP != 0 {
		t.Errorf("malformed structured values should fall back to empty: %+v", snap)
	}
	if active, _ := e.Timer(); active != "" {
		t.Errorf("timer with unknown activity should load idle, got %q", active)
	}
	if len(snap.Quests) != len(QuestCatalog) {
		t.Errorf("malformed quests should regenerate, got %d", len(snap.Quests))
	}
}

func TestLoadLevelHintWithoutXP(t *testing.T) {
	h := newHarness(t)
	h.set(t, constants.KeyLevel, "4")
	e := h.engine(t)
	if e.XP() != 3*3600 || e.Level() != 4 {
		t.Errorf("xp=%v level=%d, want 10800 and 4", e.XP(), e.Level())
	}

	h2 := newHarness(t)
	h2.set(t, constants.KeyLevel, "9")
	h2.set(t, constants.KeyXP, "100")
	e2 := h2.engine(t)
	if e2.Level() != 1 {
		t.Errorf("stored level must not override xp: level = %d, want 1", e2.Level())
	}
}

func TestStateSurvivesReload(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)
	e.Accept()
	if _, err := e.AddManualTime("study", 30); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddTodo("read chapter 4"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetUsername("  Jinwoo "); err != nil {
		t.Fatal(err)
	}

	reloaded, events := h.load(t)
	if HasKind(events, EventPlayerQualification) {
		t.Error("accepted player should not be asked again")
	}
	snap := reloaded.Snapshot()
	if snap.Daily.Study != 1800 || snap.Lifetime.Study != 1800 {
		t.Errorf("counters after reload = %+v / %+v", snap.Daily, snap.Lifetime)
	}
	if snap.XP != 1800 {
		t.Errorf("XP after reload = %v, want 1800", snap.XP)
	}
	if len(snap.Todos) != 1 || snap.Todos[0].Text != "read chapter 4" {
		t.Errorf("todos after reload = %+v", snap.Todos)
	}
	if snap.Profile.Username != "Jinwoo" {
		t.Errorf("username after reload = %q", snap.Profile.Username)
	}
	if snap.Quests[0].Progress != 1800 {
		t.Errorf("study quest progress after reload = %d, want 1800", snap.Quests[0].Progress)
	}
}
