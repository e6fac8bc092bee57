package models

import (
	"time"

	"gorm.io/gorm"
)

// UserStats tracks gamified progression for each user (denormalized for performance)
type UserStats struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"` // links to profile service

	// Core progression. XP and Points only ever grow; Level is always
	// rederivable from XP and never set independently.
	XP     int64 `json:"xp" gorm:"default:0"`
	Points int64 `json:"points" gorm:"default:0"`
	Level  int   `json:"level" gorm:"default:1"`

	// Activity counters
	TotalOrders int64   `json:"total_orders" gorm:"default:0"`
	TotalSpent  float64 `json:"total_spent" gorm:"default:0"`

	// Consecutive-day ordering counters
	CurrentStreak int        `json:"current_streak" gorm:"default:0"`
	LongestStreak int        `json:"longest_streak" gorm:"default:0"`
	LastOrderAt   *time.Time `json:"last_order_at,omitempty"`

	// Unlocked achievement codes
	Achievements []string `json:"achievements" gorm:"type:jsonb;serializer:json"`

	// Milestones
	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// HasAchievement reports whether the given code is already unlocked.
func (s *UserStats) HasAchievement(code string) bool {
	for _, c := range s.Achievements {
		if c == code {
			return true
		}
	}
	return false
}

// PendingAward is a scoring delta whose stats update failed to persist.
// Queued so the increment is never silently dropped; the retry worker
// replays it against the retained order.
type PendingAward struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID      string `gorm:"index;not null" json:"user_id"`
	OrderID     string `gorm:"uniqueIndex;not null" json:"order_id"`
	XPDelta     int64  `json:"xp_delta"`
	PointsDelta int64  `json:"points_delta"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
