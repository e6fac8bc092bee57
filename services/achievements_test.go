package services

import (
	"testing"

	"moodbrew-order-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateAchievementsFirstOrder(t *testing.T) {
	stats := &models.UserStats{UserID: "u1", TotalOrders: 1, Level: 1}

	unlocked := EvaluateAchievements(stats)

	require.Len(t, unlocked, 1)
	assert.Equal(t, "FIRST_SIP", unlocked[0].Code)
	assert.True(t, stats.HasAchievement("FIRST_SIP"))
}

func TestEvaluateAchievementsIdempotent(t *testing.T) {
	stats := &models.UserStats{UserID: "u1", TotalOrders: 1, Level: 1}

	first := EvaluateAchievements(stats)
	require.NotEmpty(t, first)

	second := EvaluateAchievements(stats)
	assert.Empty(t, second, "already unlocked codes never unlock twice")
	assert.Len(t, stats.Achievements, len(first))
}

func TestEvaluateAchievementsMultipleAtOnce(t *testing.T) {
	// A recomputed stats record can cross several thresholds in one pass.
	stats := &models.UserStats{
		UserID:      "u1",
		TotalOrders: 12,
		TotalSpent:  520,
		Level:       5,
	}

	unlocked := EvaluateAchievements(stats)

	codes := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		codes = append(codes, a.Code)
	}
	assert.Contains(t, codes, "FIRST_SIP")
	assert.Contains(t, codes, "REGULAR")
	assert.Contains(t, codes, "BIG_SPENDER")
	assert.Contains(t, codes, "LEVEL_5")
	assert.NotContains(t, codes, "CAFFEINE_DEVOTEE")
}

func TestEvaluateAchievementsStreak(t *testing.T) {
	stats := &models.UserStats{UserID: "u1", TotalOrders: 7, CurrentStreak: 7, Level: 1}

	unlocked := EvaluateAchievements(stats)

	codes := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		codes = append(codes, a.Code)
	}
	assert.Contains(t, codes, "WEEK_STREAK")
}

func TestMeetsThresholdUnknownKey(t *testing.T) {
	stats := &models.UserStats{TotalOrders: 100}
	assert.False(t, meetsThreshold(stats, map[string]int64{"coffee_iq": 1}))
}
