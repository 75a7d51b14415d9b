package models

type Reward struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

// Quest is a daily goal. Progress never exceeds Target.
type Quest struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Target      int64  `json:"target"`
	Progress    int64  `json:"progress"`
	Completed   bool   `json:"completed"`
	Reward      Reward `json:"reward"`
	Unit        string `json:"unit,omitempty"` // "seconds" for time-based quests
}

func (q Quest) Percent() float64 {
	if q.Target <= 0 {
		return 0
	}
	p := float64(q.Progress) / float64(q.Target) * 100
	if p > 100 {
		return 100
	}
	return p
}

// DailyQuests is the persisted quest set, stamped with the day it was generated for.
type DailyQuests struct {
	Date   string  `json:"date"` // YYYY-MM-DD format
	Quests []Quest `json:"quests"`
}
