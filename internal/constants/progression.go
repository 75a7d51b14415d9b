package constants

const (
	// LevelXPQuantum is the XP span of a single level: level = floor(xp/LevelXPQuantum) + 1
	LevelXPQuantum = 3600

	// StudyQuestID is the quest advanced by flushed study time
	StudyQuestID = 1

	// Arise draw constants
	AriseMaxAttempts    = 10
	AriseSuccessChance  = 0.5
	ShadowMaxLevel      = 10
	ShadowLevelUpFactor = 200 // cost of leveling = factor * current level

	// Shop constants: slot cost = BaseSlotCost + slots*SlotCostStep
	BaseSlotCost = 500
	SlotCostStep = 250
)
