package models

// AchievementDef: static config for one unlockable badge
type AchievementDef struct {
	Code        string // e.g., "FIRST_SIP"
	Name        string // "First Sip"
	Description string
	Rarity      string           // common, rare, epic, legendary
	Threshold   map[string]int64 // e.g., {"total_orders": 10}, {"current_streak": 7}
}

// Predefined achievement triggers, checked after every progression update
var AchievementCatalog = []AchievementDef{
	{
		Code:        "FIRST_SIP",
		Name:        "First Sip",
		Description: "Placed your first order",
		Rarity:      "common",
		Threshold:   map[string]int64{"total_orders": 1},
	},
	{
		Code:        "REGULAR",
		Name:        "The Regular",
		Description: "Placed 10 orders",
		Rarity:      "common",
		Threshold:   map[string]int64{"total_orders": 10},
	},
	{
		Code:        "CAFFEINE_DEVOTEE",
		Name:        "Caffeine Devotee",
		Description: "Placed 50 orders",
		Rarity:      "rare",
		Threshold:   map[string]int64{"total_orders": 50},
	},
	{
		Code:        "WEEK_STREAK",
		Name:        "Daily Ritual",
		Description: "Ordered 7 days in a row",
		Rarity:      "rare",
		Threshold:   map[string]int64{"current_streak": 7},
	},
	{
		Code:        "BIG_SPENDER",
		Name:        "Big Spender",
		Description: "Spent 500 in total",
		Rarity:      "epic",
		Threshold:   map[string]int64{"total_spent": 500},
	},
	{
		Code:        "LEVEL_5",
		Name:        "Rising Star",
		Description: "Reached level 5",
		Rarity:      "rare",
		Threshold:   map[string]int64{"level": 5},
	},
	{
		Code:        "LEVEL_10",
		Name:        "Cafe Legend",
		Description: "Reached level 10",
		Rarity:      "legendary",
		Threshold:   map[string]int64{"level": 10},
	},
}
