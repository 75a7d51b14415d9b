package engine

import (
	"strings"
	"time"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

func instantiate(a models.Archetype, id string, obtained time.Time) models.Shadow {
	return models.Shadow{
		ID:            id,
		Key:           a.Key,
		Name:          a.Name,
		Rank:          a.Rank,
		Rarity:        a.Rarity,
		BaseBuffs:     a.BaseBuffs,
		BuffsPerLevel: a.BuffsPerLevel,
		Level:         1,
		Obtained:      obtained,
	}
}

func archetypeByName(name string) (models.Archetype, bool) {
	for _, a := range Catalog {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return models.Archetype{}, false
}

func (e *Engine) owns(key string) bool {
	for _, s := range e.shadows {
		if s.Key == key {
			return true
		}
	}
	return false
}

// AttemptArise spends one gate token on up to AriseMaxAttempts weighted
// draws. A draw of an already-owned archetype is discarded and retried.
// With no token or no free slot nothing is consumed and an error returns.
func (e *Engine) AttemptArise() ([]Event, error) {
	if e.tokens <= 0 {
		return nil, ErrGateClosed
	}
	if len(e.shadows) >= e.slots {
		return nil, ErrNoEmptySlots
	}

	e.tokens--
	e.saveWallet()

	for i := 0; i < constants.AriseMaxAttempts; i++ {
		if e.rand.Float64() >= constants.AriseSuccessChance {
			continue
		}
		a, ok := e.table.draw(e.rand.Float64())
		if !ok || e.owns(a.Key) {
			continue
		}
		s := instantiate(a, e.newID(), e.now())
		e.shadows = append(e.shadows, s)
		e.saveRoster()
		return []Event{shadowArisenEvent(s)}, nil
	}
	return []Event{ariseFailedEvent()}, nil
}

// LevelUpCost is the currency needed to raise a shadow from level.
func LevelUpCost(level int) int {
	return constants.ShadowLevelUpFactor * level
}

func (e *Engine) findShadow(id string) int {
	for i, s := range e.shadows {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// LevelUpShadow spends currency to raise a shadow by one level.
func (e *Engine) LevelUpShadow(id string) (models.Shadow, error) {
	i := e.findShadow(id)
	if i < 0 {
		return models.Shadow{}, ErrShadowNotFound
	}
	s := &e.shadows[i]
	if s.Level >= constants.ShadowMaxLevel {
		return *s, ErrMaxLevel
	}
	cost := LevelUpCost(s.Level)
	if e.currency < cost {
		return *s, ErrInsufficientFunds
	}

	e.currency -= cost
	s.Level++
	e.saveWallet()
	e.saveRoster()
	return *s, nil
}

// SlotCost is the price of the next roster slot.
func (e *Engine) SlotCost() int {
	return constants.BaseSlotCost + e.slots*constants.SlotCostStep
}

// PurchaseSlot buys one roster slot and returns the new capacity.
func (e *Engine) PurchaseSlot() (int, error) {
	cost := e.SlotCost()
	if e.currency < cost {
		return e.slots, ErrInsufficientFunds
	}
	e.currency -= cost
	e.slots++
	e.saveWallet()
	e.saveSlots()
	return e.slots, nil
}

// RemoveShadow frees the roster slot at index. There is no refund.
func (e *Engine) RemoveShadow(index int) (models.Shadow, error) {
	if index < 0 || index >= len(e.shadows) {
		return models.Shadow{}, ErrShadowNotFound
	}
	removed := e.shadows[index]
	e.shadows = append(e.shadows[:index:index], e.shadows[index+1:]...)
	e.saveRoster()
	return removed, nil
}

func (e *Engine) Roster() []models.Shadow {
	out := make([]models.Shadow, len(e.shadows))
	copy(out, e.shadows)
	return out
}

func (e *Engine) Slots() int { return e.slots }

// TotalBuffs sums every owned shadow's buffs at its level, then caps each
// kind independently.
func (e *Engine) TotalBuffs() models.Buffs {
	total := models.Buffs{}
	for _, s := range e.shadows {
		for k, v := range s.Buffs() {
			total[k] += v
		}
	}
	for k, v := range total {
		if limit, ok := BuffCaps[k]; ok && v > limit {
			total[k] = limit
		}
	}
	return total
}

// DrawChance returns the probability that one successful draw yields key.
func (e *Engine) DrawChance(key string) float64 {
	return e.table.probability(key)
}
