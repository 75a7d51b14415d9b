package engine

import "github.com/julianstephens/arise/internal/models"

// BuffCaps bounds each aggregated buff kind independently.
var BuffCaps = models.Buffs{
	models.BuffXP:    1.00,
	models.BuffCoins: 0.50,
}

// Catalog is the fixed set of archetypes a shadow can be drawn from.
var Catalog = []models.Archetype{
	{
		Key: "soldier", Name: "Shadow Soldier", Rank: "Soldier", Rarity: models.RarityCommon,
		BaseBuffs:     models.Buffs{models.BuffXP: 0.02, models.BuffCoins: 0.02},
		BuffsPerLevel: models.Buffs{models.BuffXP: 0.005, models.BuffCoins: 0.005},
	},
	{
		Key: "iron", Name: "Iron", Rank: "Elite Knight", Rarity: models.RarityRare,
		BaseBuffs:     models.Buffs{models.BuffXP: 0.05, models.BuffCoins: 0.03},
		BuffsPerLevel: models.Buffs{models.BuffXP: 0.01},
	},
	{
		Key: "tank", Name: "Tank", Rank: "Elite", Rarity: models.RarityRare,
		BaseBuffs:     models.Buffs{models.BuffCoins: 0.08},
		BuffsPerLevel: models.Buffs{models.BuffCoins: 0.015},
	},
	{
		Key: "kaisel", Name: "Kaisel", Rank: "Elite", Rarity: models.RarityRare,
		BaseBuffs:     models.Buffs{models.BuffXP: 0.03, models.BuffCoins: 0.05},
		BuffsPerLevel: models.Buffs{models.BuffCoins: 0.01},
	},
	{
		Key: "tusk", Name: "Tusk", Rank: "Commander", Rarity: models.RarityEpic,
		BaseBuffs:     models.Buffs{models.BuffXP: 0.08},
		BuffsPerLevel: models.Buffs{models.BuffXP: 0.015},
	},
	{
		Key: "igris", Name: "Igris", Rank: "Knight", Rarity: models.RarityEpic,
		BaseBuffs:     models.Buffs{models.BuffXP: 0.10},
		BuffsPerLevel: models.Buffs{models.BuffXP: 0.02},
	},
	{
		Key: "beru", Name: "Beru", Rank: "Marshal", Rarity: models.RarityLegendary,
		BaseBuffs:     models.Buffs{models.BuffXP: 0.15, models.BuffCoins: 0.05},
		BuffsPerLevel: models.Buffs{models.BuffXP: 0.03, models.BuffCoins: 0.01},
	},
	{
		Key: "bellion", Name: "Bellion", Rank: "Grand Marshal", Rarity: models.RarityLegendary,
		BaseBuffs:     models.Buffs{models.BuffXP: 0.20},
		BuffsPerLevel: models.Buffs{models.BuffXP: 0.04},
	},
}

// Archetype looks up a catalog entry by key.
func Archetype(key string) (models.Archetype, bool) {
	for _, a := range Catalog {
		if a.Key == key {
			return a, true
		}
	}
	return models.Archetype{}, false
}
