package engine

import (
	"fmt"

	"github.com/julianstephens/arise/internal/models"
)

type EventKind string

const (
	EventLevelUp             EventKind = "level_up"
	EventRankChange          EventKind = "rank_change"
	EventQuestCompleted      EventKind = "quest_completed"
	EventShadowArisen        EventKind = "shadow_arisen"
	EventAriseFailed         EventKind = "arise_failed"
	EventPlayerQualification EventKind = "player_qualification"
	EventDailyReset          EventKind = "daily_reset"
)

// QualificationMessage is shown until the player accepts.
const QualificationMessage = "You have acquired the qualifications to be a Player. Will you accept?"

// Event is an informational notice produced by an engine call. Events never
// gate other mechanics; callers decide how to display them.
type Event struct {
	Kind    EventKind
	Message string
	Level   int
	Rank    models.Rank
	Quest   *models.Quest
	Shadow  *models.Shadow
	Date    string
}

func levelUpEvent(level int) Event {
	return Event{Kind: EventLevelUp, Level: level, Message: fmt.Sprintf("Level up! You are now level %d.", level)}
}

func rankChangeEvent(level int, rank models.Rank) Event {
	return Event{Kind: EventRankChange, Level: level, Rank: rank, Message: fmt.Sprintf("Your rank is now %s.", rank.Name)}
}

func questCompletedEvent(q models.Quest, coins int) Event {
	return Event{
		Kind:    EventQuestCompleted,
		Quest:   &q,
		Message: fmt.Sprintf("Daily Gate cleared: %s (+%d XP, +%d coins, +1 Arise)", q.Title, q.Reward.XP, coins),
	}
}

func shadowArisenEvent(s models.Shadow) Event {
	return Event{Kind: EventShadowArisen, Shadow: &s, Message: fmt.Sprintf("✨ %s has answered your call! ✨", s.Name)}
}

func ariseFailedEvent() Event {
	return Event{Kind: EventAriseFailed, Message: "The Gate remains closed... Try again, Hunter!"}
}

// HasKind reports whether any event in evs is of kind k.
func HasKind(evs []Event, k EventKind) bool {
	for _, e := range evs {
		if e.Kind == k {
			return true
		}
	}
	return false
}
