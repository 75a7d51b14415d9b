package engine

import (
	"strconv"
	"testing"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp   float64
		want int
	}{
		{0, 1},
		{-50, 1},
		{3599.9, 1},
		{3600, 2},
		{7200.5, 3},
		{36000, 11},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.xp); got != tt.want {
			t.Errorf("LevelFor(%v) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "Civilian"},
		{1, "E-Rank Hunter"},
		{9, "E-Rank Hunter"},
		{10, "D-Rank Hunter"},
		{20, "C-Rank Hunter"},
		{59, "B-Rank Hunter"},
		{60, "A-Rank Hunter"},
		{80, "S-Rank Hunter"},
		{250, "National Level Hunter"},
	}
	for _, tt := range tests {
		if got := RankFor(tt.level).Name; got != tt.want {
			t.Errorf("RankFor(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelAlwaysDerivedFromXP(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	for _, minutes := range []int{5, 59, 61, 240, 1} {
		if _, err := e.AddManualTime(models.ActivityStudy, minutes); err != nil {
			t.Fatal(err)
		}
		if e.Level() != LevelFor(e.XP()) {
			t.Fatalf("Level() = %d, LevelFor(XP) = %d", e.Level(), LevelFor(e.XP()))
		}
		if e.Rank().Name != RankFor(e.Level()).Name {
			t.Fatalf("Rank() = %q, want %q", e.Rank().Name, RankFor(e.Level()).Name)
		}
	}

	if got := h.get(t, constants.KeyLevel); got != "" && got != strconv.Itoa(e.Level()) {
		t.Errorf("persisted level = %q, want %d", got, e.Level())
	}
}

func TestGrantStudyXPEvents(t *testing.T) {
	h := newHarness(t)
	h.set(t, constants.KeyXP, "32000")
	e := h.engine(t)

	events := e.GrantStudyXP(500)
	if e.Level() != 10 {
		t.Fatalf("Level() = %d, want 10", e.Level())
	}
	if !HasKind(events, EventLevelUp) || !HasKind(events, EventRankChange) {
		t.Errorf("expected level-up and rank-change events, got %+v", events)
	}
	for _, ev := range events {
		if ev.Kind == EventRankChange && ev.Rank.Name != "D-Rank Hunter" {
			t.Errorf("rank change to %q, want D-Rank Hunter", ev.Rank.Name)
		}
	}

	if evs := e.GrantStudyXP(0); len(evs) != 0 {
		t.Errorf("GrantStudyXP(0) events = %+v", evs)
	}
}

func TestGrantStudyXPUsesBuff(t *testing.T) {
	h := newHarness(t)
	h.set(t, constants.KeyShadows, `[{"id":"s1","key":"igris","name":"Igris","rarity":"epic","baseBuffs":{"xp":0.1},"buffsPerLevel":{"xp":0.02},"level":1}]`)
	e := h.engine(t)

	e.GrantStudyXP(1000)
	if !approx(e.XP(), 1100) {
		t.Errorf("XP() = %v, want 1100", e.XP())
	}
}

func TestXPFormatting(t *testing.T) {
	if got := XPPercent(5400); !approx(got, 50) {
		t.Errorf("XPPercent(5400) = %v, want 50", got)
	}
	if got := XPToNextLevel(5400); !approx(got, 1800) {
		t.Errorf("XPToNextLevel(5400) = %v, want 1800", got)
	}
	if got := XPPercent(0); got != 0 {
		t.Errorf("XPPercent(0) = %v, want 0", got)
	}
}
