package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"moodbrew-order-system/models"
	"moodbrew-order-system/store"

	"github.com/google/uuid"
)

// ProgressionResult is returned to the caller for user-facing
// notification after an order has been scored.
type ProgressionResult struct {
	XPDelta     int64                   `json:"xp_delta"`
	PointsDelta int64                   `json:"points_delta"`
	LevelUp     bool                    `json:"level_up"`
	NewLevel    int                     `json:"new_level"`
	NewXP       int64                   `json:"new_xp"`
	NewPoints   int64                   `json:"new_points"`
	Unlocked    []models.AchievementDef `json:"unlocked,omitempty"`
	// Deferred is true when the stats write failed and the delta was
	// queued for the retry worker instead.
	Deferred bool `json:"deferred,omitempty"`
}

type ProgressionService struct {
	Store store.Store
}

func NewProgressionService(st store.Store) *ProgressionService {
	return &ProgressionService{Store: st}
}

// ApplyOrder scores the order and applies the deltas to the user's
// cumulative stats as a single update. A missing stats record is the
// zero baseline, never an error. When the write fails the computed
// deltas are queued, logged and reported as deferred — never dropped.
func (s *ProgressionService) ApplyOrder(ctx context.Context, order *models.Order) (*ProgressionResult, error) {
	return s.apply(ctx, order, true)
}

// ReplayAward re-runs a queued scoring delta against its retained order.
// Scoring is deterministic, so the replay computes the exact deltas the
// failed write would have applied.
func (s *ProgressionService) ReplayAward(ctx context.Context, award models.PendingAward) error {
	order, err := s.Store.GetOrder(ctx, award.UserID, award.OrderID)
	if err != nil {
		return fmt.Errorf("load order for award %s: %w", award.ID, err)
	}
	if _, err := s.apply(ctx, order, false); err != nil {
		return err
	}
	return s.Store.ResolvePendingAward(ctx, award.ID)
}

func (s *ProgressionService) apply(ctx context.Context, order *models.Order, queueOnFailure bool) (*ProgressionResult, error) {
	xpDelta := ComputeXP(order)
	pointsDelta := PointsForXP(xpDelta)

	stats, err := s.Store.GetUserStats(ctx, order.UserID)
	if err == store.ErrStatsNotFound {
		// First-ever progression for this user: zero baseline.
		stats = &models.UserStats{
			ID:     uuid.NewString(),
			UserID: order.UserID,
			Level:  1,
		}
	} else if err != nil {
		return nil, fmt.Errorf("read stats for %s: %w", order.UserID, err)
	}

	oldLevel := stats.Level

	stats.TotalOrders++
	stats.TotalSpent += order.Total
	updateStreak(stats, order.CreatedAt)

	stats.XP += xpDelta
	stats.Points += pointsDelta
	stats.Level = LevelForXP(stats.XP)

	levelUp := stats.Level > oldLevel
	if levelUp {
		now := time.Now()
		stats.LastLevelUpAt = &now
	}

	unlocked := EvaluateAchievements(stats)

	result := &ProgressionResult{
		XPDelta:     xpDelta,
		PointsDelta: pointsDelta,
		LevelUp:     levelUp,
		NewLevel:    stats.Level,
		NewXP:       stats.XP,
		NewPoints:   stats.Points,
		Unlocked:    unlocked,
	}

	if err := s.Store.SetUserStats(ctx, stats); err != nil {
		if !queueOnFailure {
			return nil, fmt.Errorf("persist stats for %s: %w", order.UserID, err)
		}
		award := &models.PendingAward{
			ID:          uuid.NewString(),
			UserID:      order.UserID,
			OrderID:     order.ID,
			XPDelta:     xpDelta,
			PointsDelta: pointsDelta,
		}
		if qErr := s.Store.EnqueuePendingAward(ctx, award); qErr != nil && qErr != store.ErrDuplicateAward {
			return nil, fmt.Errorf("persist stats and queue award for %s: %v (after %w)", order.UserID, qErr, err)
		}
		log.Printf("⚠️ Stats update failed for %s, award queued for retry: %v", order.UserID, err)
		result.Deferred = true
		return result, nil
	}

	s.notify(ctx, order.UserID, result)

	log.Printf("🎮 XP Awarded: %s → XP=%d, Lvl=%d (order %s)", order.UserID, stats.XP, stats.Level, order.ID)
	return result, nil
}

// notify records level-up and achievement notifications. Best effort: a
// failed notification never fails the progression update.
func (s *ProgressionService) notify(ctx context.Context, userID string, result *ProgressionResult) {
	if result.LevelUp {
		n := &models.Notification{
			ID:           uuid.NewString(),
			UserID:       userID,
			Type:         models.NotificationTypeLevelUp,
			Title:        fmt.Sprintf("Level %d reached!", result.NewLevel),
			Body:         fmt.Sprintf("You earned %d XP and %d points.", result.XPDelta, result.PointsDelta),
			Level:        result.NewLevel,
			EarnedXP:     result.XPDelta,
			EarnedPoints: result.PointsDelta,
		}
		if err := s.Store.CreateNotification(ctx, n); err != nil {
			log.Printf("⚠️ Failed to record level-up notification for %s: %v", userID, err)
		}
	}
	for _, a := range result.Unlocked {
		n := &models.Notification{
			ID:     uuid.NewString(),
			UserID: userID,
			Type:   models.NotificationTypeAchievement,
			Title:  fmt.Sprintf("Achievement unlocked: %s", a.Name),
			Body:   a.Description,
		}
		if err := s.Store.CreateNotification(ctx, n); err != nil {
			log.Printf("⚠️ Failed to record achievement notification for %s: %v", userID, err)
		}
	}
}

// RecomputeStats re-derives cumulative XP, points, level and counters
// from the retained order history. Scoring is a deterministic function
// of submitted orders, so this is the sanctioned reconciliation path
// after partial failures. Unlocked achievements are kept.
func (s *ProgressionService) RecomputeStats(ctx context.Context, userID string) (*models.UserStats, error) {
	orders, err := s.Store.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders for %s: %w", userID, err)
	}

	stats, err := s.Store.GetUserStats(ctx, userID)
	if err == store.ErrStatsNotFound {
		stats = &models.UserStats{ID: uuid.NewString(), UserID: userID, Level: 1}
	} else if err != nil {
		return nil, fmt.Errorf("read stats for %s: %w", userID, err)
	}

	stats.XP = 0
	stats.Points = 0
	stats.TotalOrders = 0
	stats.TotalSpent = 0
	stats.CurrentStreak = 0
	stats.LongestStreak = 0
	stats.LastOrderAt = nil

	// History is stored newest first; fold oldest to newest so streaks
	// come out right.
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		xpDelta := ComputeXP(&o)
		stats.XP += xpDelta
		stats.Points += PointsForXP(xpDelta)
		stats.TotalOrders++
		stats.TotalSpent += o.Total
		updateStreak(stats, o.CreatedAt)
	}
	stats.Level = LevelForXP(stats.XP)
	EvaluateAchievements(stats)

	if err := s.Store.SetUserStats(ctx, stats); err != nil {
		return nil, fmt.Errorf("persist recomputed stats for %s: %w", userID, err)
	}
	return stats, nil
}

// updateStreak advances the consecutive-day counters for an order placed
// at the given time. Same day keeps the streak, the next day extends it,
// a gap resets it to 1.
func updateStreak(stats *models.UserStats, at time.Time) {
	day := at.UTC().Truncate(24 * time.Hour)
	if stats.LastOrderAt == nil {
		stats.CurrentStreak = 1
	} else {
		last := stats.LastOrderAt.UTC().Truncate(24 * time.Hour)
		switch int(day.Sub(last).Hours() / 24) {
		case 0:
			// same day, streak unchanged
		case 1:
			stats.CurrentStreak++
		default:
			stats.CurrentStreak = 1
		}
	}
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	t := at
	stats.LastOrderAt = &t
}
