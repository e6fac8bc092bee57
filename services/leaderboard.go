package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"moodbrew-order-system/cache"
	"moodbrew-order-system/models"
	"moodbrew-order-system/store"
)

// DefaultLeaderboardSize caps how many top entries a view returns.
const DefaultLeaderboardSize = 10

// LeaderboardService builds the ranked projection over all user stats.
// Pure read: nothing is persisted, every query recomputes (or reuses a
// short-lived cached snapshot, which the contract explicitly allows).
type LeaderboardService struct {
	Store store.Store
	Cache cache.LeaderboardCache // optional
}

func NewLeaderboardService(st store.Store, c cache.LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{Store: st, Cache: c}
}

// View returns the top-N entries plus, when the viewer is ranked below
// the cap, the viewer's own row with its true rank appended at the end.
// The viewer's row carries is_current_user.
func (s *LeaderboardService) View(ctx context.Context, viewerID string, limit int) (*models.Leaderboard, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultLeaderboardSize
	}

	entries, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	board := &models.Leaderboard{TotalUsers: len(entries)}

	viewerIdx := -1
	for i := range entries {
		if entries[i].UserID == viewerID {
			viewerIdx = i
			break
		}
	}

	top := entries
	if len(top) > limit {
		top = top[:limit]
	}
	board.Entries = make([]models.LeaderboardEntry, len(top))
	copy(board.Entries, top)

	for i := range board.Entries {
		board.Entries[i].IsCurrentUser = board.Entries[i].UserID == viewerID
	}
	if viewerIdx >= limit {
		self := entries[viewerIdx]
		self.IsCurrentUser = true
		board.Entries = append(board.Entries, self)
	}

	return board, nil
}

// snapshot builds (or fetches) the full ranking: xp descending, ties
// broken by userID ascending so repeated queries assign identical ranks.
// Ranks are 1-based and contiguous; equal xp does not share a rank.
func (s *LeaderboardService) snapshot(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("⚠️ Leaderboard cache get failed: %v", err)
		}
	}

	all, err := s.Store.ListAllUserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list user stats: %w", err)
	}
	profiles, err := s.Store.ListCafeUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cafe users: %w", err)
	}
	byID := make(map[string]models.CafeUser, len(profiles))
	for _, p := range profiles {
		byID[p.ExternalUserID] = p
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].XP != all[j].XP {
			return all[i].XP > all[j].XP
		}
		return all[i].UserID < all[j].UserID
	})

	entries := make([]models.LeaderboardEntry, len(all))
	for i, st := range all {
		entry := models.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      st.UserID,
			DisplayName: st.UserID,
			XP:          st.XP,
			Points:      st.Points,
			Level:       st.Level,
		}
		if p, ok := byID[st.UserID]; ok {
			entry.DisplayName = p.DisplayName
			if entry.DisplayName == "" {
				entry.DisplayName = p.Username
			}
			entry.FavoriteDrink = p.FavoriteDrink
		}
		entries[i] = entry
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, entries); err != nil {
			log.Printf("⚠️ Leaderboard cache set failed: %v", err)
		}
	}
	return entries, nil
}
