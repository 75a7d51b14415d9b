package engine

import (
	"errors"
	"testing"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

func TestStudyHourCompletesQuest(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	events, err := e.AddManualTime(models.ActivityStudy, 60)
	if err != nil {
		t.Fatalf("AddManualTime() error = %v", err)
	}

	q := e.Quests()[0]
	if !q.Completed || q.Progress != 3600 {
		t.Errorf("study quest = %+v, want completed at 3600", q)
	}
	if e.Tokens() != 1 {
		t.Errorf("Tokens() = %d, want 1", e.Tokens())
	}
	if e.Currency() != constants.DefaultCurrency+50 {
		t.Errorf("Currency() = %d, want %d", e.Currency(), constants.DefaultCurrency+50)
	}
	// 3600 from study time plus the flat 100 quest reward.
	if !approx(e.XP(), 3700) || e.Level() != 2 {
		t.Errorf("XP() = %v, Level() = %d, want 3700 and 2", e.XP(), e.Level())
	}
	if !HasKind(events, EventQuestCompleted) || !HasKind(events, EventLevelUp) {
		t.Errorf("events = %+v, want quest completion and level up", events)
	}
}

func TestQuestCompletionIsIdempotent(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	if _, err := e.UpdateQuestProgress(3, 2); err != nil {
		t.Fatal(err)
	}
	tokens, currency, xp := e.Tokens(), e.Currency(), e.XP()

	for i := 0; i < 3; i++ {
		events, err := e.UpdateQuestProgress(3, 5)
		if err != nil {
			t.Fatalf("UpdateQuestProgress() error = %v", err)
		}
		if len(events) != 0 {
			t.Errorf("completed quest produced events: %+v", events)
		}
	}
	if e.Tokens() != tokens || e.Currency() != currency || e.XP() != xp {
		t.Errorf("completed quest paid again: tokens %d->%d currency %d->%d xp %v->%v",
			tokens, e.Tokens(), currency, e.Currency(), xp, e.XP())
	}
}

func TestUpdateQuestProgress(t *testing.T) {
	tests := []struct {
		name         string
		id           int
		amounts      []int64
		wantProgress int64
		wantDone     bool
		wantErr      error
	}{
		{"partial", 2, []int64{5, 5}, 10, false, nil},
		{"clamped at target", 2, []int64{15, 15}, 20, true, nil},
		{"non-positive ignored", 2, []int64{0, -4}, 0, false, nil},
		{"unknown quest", 99, []int64{1}, 0, false, ErrQuestNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			e := h.engine(t)
			var err error
			for _, a := range tt.amounts {
				_, err = e.UpdateQuestProgress(tt.id, a)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			var q models.Quest
			for _, candidate := range e.Quests() {
				if candidate.ID == tt.id {
					q = candidate
				}
			}
			if q.Progress != tt.wantProgress || q.Completed != tt.wantDone {
				t.Errorf("quest = %+v, want progress %d completed %v", q, tt.wantProgress, tt.wantDone)
			}
		})
	}
}

func TestQuestRewardsIgnoreBuffs(t *testing.T) {
	h := newHarness(t)
	// tank carries a coins buff; quest rewards are paid flat regardless.
	h.set(t, constants.KeyShadows, `[{"id":"s1","key":"tank","name":"Tank","rarity":"rare","baseBuffs":{"coins":0.08},"buffsPerLevel":{"coins":0.015},"level":1}]`)
	e := h.engine(t)

	if _, err := e.UpdateQuestProgress(2, 20); err != nil {
		t.Fatal(err)
	}
	if got := e.Currency() - constants.DefaultCurrency; got != 25 {
		t.Errorf("coins granted = %d, want 25", got)
	}
	if _, err := e.UpdateQuestProgress(3, 2); err != nil {
		t.Fatal(err)
	}
	if got := e.Currency() - constants.DefaultCurrency; got != 40 {
		t.Errorf("coins granted after both gates = %d, want 40", got)
	}
	if !approx(e.XP(), 80) {
		t.Errorf("XP() = %v, want 80", e.XP())
	}
}

func TestStoredQuestsAreNormalized(t *testing.T) {
	h := newHarness(t)
	h.set(t, constants.KeyDailyQuests, `{"date":"2026-03-10","quests":[{"id":2,"title":"Physical Training","target":20,"progress":45,"completed":false,"reward":{"xp":50,"coins":25}}]}`)
	e := h.engine(t)

	qs := e.Quests()
	if len(qs) != 1 {
		t.Fatalf("len(Quests()) = %d, want 1", len(qs))
	}
	if qs[0].Progress != 20 || !qs[0].Completed {
		t.Errorf("quest = %+v, want progress clamped to 20 and completed", qs[0])
	}
}

func TestStaleQuestsRegenerate(t *testing.T) {
	h := newHarness(t)
	h.set(t, constants.KeyLastResetDate, "2026-03-10")
	h.set(t, constants.KeyDailyQuests, `{"date":"2026-03-01","quests":[{"id":1,"target":3600,"progress":3600,"completed":true}]}`)
	e := h.engine(t)

	for _, q := range e.Quests() {
		if q.Progress != 0 || q.Completed {
			t.Errorf("quest %d carried over from a previous day: %+v", q.ID, q)
		}
	}
}
