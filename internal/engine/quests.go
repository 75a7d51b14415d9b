package engine

import (
	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

// QuestCatalog is the fixed daily quest list. Quest 1 is fed by study time.
var QuestCatalog = []models.Quest{
	{
		ID:          constants.StudyQuestID,
		Title:       "Dungeon Study Session",
		Description: "Study for 1 hour in the Abyss",
		Target:      3600,
		Reward:      models.Reward{XP: 100, Coins: 50},
		Unit:        "seconds",
	},
	{
		ID:          2,
		Title:       "Physical Training",
		Description: "Complete 20 pushups",
		Target:      20,
		Reward:      models.Reward{XP: 50, Coins: 25},
	},
	{
		ID:          3,
		Title:       "Mana Replenishment",
		Description: "Drink 2 bottles of water",
		Target:      2,
		Reward:      models.Reward{XP: 30, Coins: 15},
	},
}

func newDailyQuests(date string) models.DailyQuests {
	quests := make([]models.Quest, len(QuestCatalog))
	copy(quests, QuestCatalog)
	return models.DailyQuests{Date: date, Quests: quests}
}

// normalizeQuests restores 0 <= progress <= target and completed <=> progress >= target.
func normalizeQuests(dq models.DailyQuests) models.DailyQuests {
	for i := range dq.Quests {
		q := &dq.Quests[i]
		if q.Progress < 0 {
			q.Progress = 0
		}
		if q.Progress > q.Target {
			q.Progress = q.Target
		}
		q.Completed = q.Target > 0 && q.Progress >= q.Target
	}
	return dq
}

func (e *Engine) Quests() []models.Quest {
	out := make([]models.Quest, len(e.quests.Quests))
	copy(out, e.quests.Quests)
	return out
}

// UpdateQuestProgress adds amount to a quest, clamped to its target. Reaching
// the target completes the quest and pays its reward exactly once. Completed
// quests and non-positive amounts are no-ops.
func (e *Engine) UpdateQuestProgress(id int, amount int64) ([]Event, error) {
	idx := -1
	for i, q := range e.quests.Quests {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrQuestNotFound
	}

	q := &e.quests.Quests[idx]
	if q.Completed || amount <= 0 {
		return nil, nil
	}

	q.Progress += amount
	if q.Progress > q.Target {
		q.Progress = q.Target
	}
	if q.Progress < q.Target {
		e.saveQuests()
		return nil, nil
	}

	q.Completed = true
	completed := *q
	e.saveQuests()

	coins := completed.Reward.Coins
	e.tokens++
	e.currency += coins
	e.saveWallet()

	events := []Event{questCompletedEvent(completed, coins)}
	// Reward XP is a flat add, separate from the buffed timer channel.
	events = append(events, e.addXP(float64(completed.Reward.XP))...)
	return events, nil
}
