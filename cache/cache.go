package cache

import (
	"context"
	"errors"

	"moodbrew-order-system/models"
)

// LeaderboardCache holds a recent full ranking snapshot. The leaderboard
// is allowed to be slightly stale, so a short-TTL cache in front of the
// store is fine.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]models.LeaderboardEntry, error)
	Set(ctx context.Context, entries []models.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
