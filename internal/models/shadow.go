package models

import "time"

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Weight is the relative draw weight of the rarity.
func (r Rarity) Weight() float64 {
	switch r {
	case RarityCommon:
		return 10
	case RarityRare:
		return 5
	case RarityEpic:
		return 3
	case RarityLegendary:
		return 1
	}
	return 0
}

type BuffKind string

const (
	BuffXP    BuffKind = "xp"
	BuffCoins BuffKind = "coins"
)

// BuffKinds lists every buff kind in display order.
var BuffKinds = []BuffKind{BuffXP, BuffCoins}

// Buffs maps a buff kind to a fractional bonus (0.05 = +5%).
type Buffs map[BuffKind]float64

// Archetype is a catalog entry a Shadow is drawn from.
type Archetype struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Rank          string `json:"rank"`
	Rarity        Rarity `json:"rarity"`
	BaseBuffs     Buffs  `json:"baseBuffs"`
	BuffsPerLevel Buffs  `json:"buffsPerLevel,omitempty"`
}

// Shadow is an owned collectible. The roster holds at most one per archetype key.
type Shadow struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	Name          string    `json:"name"`
	Rank          string    `json:"rank"`
	Rarity        Rarity    `json:"rarity"`
	BaseBuffs     Buffs     `json:"baseBuffs"`
	BuffsPerLevel Buffs     `json:"buffsPerLevel,omitempty"`
	Level         int       `json:"level"`
	Obtained      time.Time `json:"obtained"`
}

// Buffs returns the shadow's effective buffs at its current level.
func (s Shadow) Buffs() Buffs {
	out := Buffs{}
	for k, v := range s.BaseBuffs {
		out[k] += v
	}
	if s.Level > 1 {
		for k, v := range s.BuffsPerLevel {
			out[k] += v * float64(s.Level-1)
		}
	}
	return out
}
