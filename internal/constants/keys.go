package constants

// Persisted state keys. Values are text or JSON.
const (
	KeyShadows        = "shadowArmy"
	KeyAriseCount     = "ariseCount"
	KeyShadowSlots    = "shadowSlots"
	KeyCurrency       = "systemCurrency"
	KeyDailyTimers    = "productivityDailyTimers"
	KeyTotalTimers    = "productivityTotalTimers"
	KeyCreditedTimers = "productivityCreditedTimers"
	KeyLastResetDate  = "lastResetDate"
	KeyLevel          = "productivityLevel"
	KeyXP             = "productivityXp"
	KeyHeatmap        = "productivityHeatmap"
	KeyTodos          = "productivityTodos"
	KeyUsername       = "productivityUsername"
	KeyProfilePicture = "productivityProfilePic"
	KeyPlayerAccepted = "playerAccepted"
	KeyDailyQuests    = "dailyQuests"
	KeyActiveTimer    = "activeTimer"
)

// AllKeys lists every key the engine reads, in load order.
var AllKeys = []string{
	KeyShadows,
	KeyAriseCount,
	KeyShadowSlots,
	KeyCurrency,
	KeyDailyTimers,
	KeyTotalTimers,
	KeyCreditedTimers,
	KeyLastResetDate,
	KeyLevel,
	KeyXP,
	KeyHeatmap,
	KeyTodos,
	KeyUsername,
	KeyProfilePicture,
	KeyPlayerAccepted,
	KeyDailyQuests,
	KeyActiveTimer,
}

const (
	// Defaults applied when a key is missing or does not decode
	DefaultCurrency    = 1000
	DefaultShadowSlots = 1
	DefaultUsername    = "Productivity Pro"
)
