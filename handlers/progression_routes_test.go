package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"moodbrew-order-system/models"
	"moodbrew-order-system/services"
	"moodbrew-order-system/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressionTestApp(st *store.MemoryStore) *fiber.App {
	app := fiber.New()
	SetupProgressionRoutes(app, st, services.NewLeaderboardService(st, nil))
	return app
}

func TestProgressBaselineForNewUser(t *testing.T) {
	app := newProgressionTestApp(store.NewMemoryStore())

	resp := doRequest(t, app, http.MethodGet, "/user/progress", "fresh")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Stats       models.UserStats `json:"stats"`
		NextLevelXP int64            `json:"next_level_xp"`
		XPToNext    int64            `json:"xp_to_next"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(0), body.Stats.XP)
	assert.Equal(t, 1, body.Stats.Level)
	assert.Equal(t, int64(services.LevelXPStep), body.NextLevelXP)
}

func TestAchievementsSplitLockedUnlocked(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.SetUserStats(context.Background(), &models.UserStats{
		ID: "s1", UserID: "u1", Level: 1,
		Achievements: []string{"FIRST_SIP"},
	}))
	app := newProgressionTestApp(st)

	resp := doRequest(t, app, http.MethodGet, "/user/achievements", "u1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Unlocked []models.AchievementDef `json:"unlocked"`
		Locked   []models.AchievementDef `json:"locked"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Unlocked, 1)
	assert.Equal(t, "FIRST_SIP", body.Unlocked[0].Code)
	assert.Len(t, body.Locked, len(models.AchievementCatalog)-1)
}

func TestLeaderboardEndpoint(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.SetUserStats(ctx, &models.UserStats{ID: "s1", UserID: "alice", XP: 900, Level: 2}))
	require.NoError(t, st.SetUserStats(ctx, &models.UserStats{ID: "s2", UserID: "bob", XP: 400, Level: 1}))
	app := newProgressionTestApp(st)

	resp := doRequest(t, app, http.MethodGet, "/leaderboard", "bob")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var board models.Leaderboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&board))
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "alice", board.Entries[0].UserID)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.True(t, board.Entries[1].IsCurrentUser)
}
