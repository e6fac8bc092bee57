package services

import (
	"log"

	"moodbrew-order-system/models"
)

// EvaluateAchievements checks every catalog trigger against the given
// stats and unlocks the ones whose thresholds are now met. Mutates
// stats.Achievements in place so the unlock persists with the same
// stats write; returns the newly unlocked definitions. Idempotent:
// already-unlocked codes are skipped.
func EvaluateAchievements(stats *models.UserStats) []models.AchievementDef {
	var unlocked []models.AchievementDef
	for _, def := range models.AchievementCatalog {
		if stats.HasAchievement(def.Code) {
			continue
		}
		if meetsThreshold(stats, def.Threshold) {
			stats.Achievements = append(stats.Achievements, def.Code)
			unlocked = append(unlocked, def)
			log.Printf("🎖️ Achievement unlocked: %s → %s", def.Name, stats.UserID)
		}
	}
	return unlocked
}

func meetsThreshold(stats *models.UserStats, req map[string]int64) bool {
	for key, required := range req {
		switch key {
		case "total_orders":
			if stats.TotalOrders < required {
				return false
			}
		case "total_spent":
			if int64(stats.TotalSpent) < required {
				return false
			}
		case "current_streak":
			if int64(stats.CurrentStreak) < required {
				return false
			}
		case "longest_streak":
			if int64(stats.LongestStreak) < required {
				return false
			}
		case "level":
			if int64(stats.Level) < required {
				return false
			}
		default:
			// unknown key never matches
			return false
		}
	}
	return true
}
