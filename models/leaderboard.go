package models

// LeaderboardEntry represents a user's position on the leaderboard.
// Derived projection over all UserStats; recomputed on every query,
// never persisted.
type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"user_id"`
	DisplayName   string  `json:"display_name"`
	XP            int64   `json:"xp"`
	Points        int64   `json:"points"`
	Level         int     `json:"level"`
	FavoriteDrink *string `json:"favorite_drink,omitempty"`
	IsCurrentUser bool    `json:"is_current_user"`
}

// Leaderboard is the API response for a leaderboard query.
type Leaderboard struct {
	Entries    []LeaderboardEntry `json:"entries"`
	TotalUsers int                `json:"total_users"`
}
