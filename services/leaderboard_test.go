package services

import (
	"context"
	"fmt"
	"testing"

	"moodbrew-order-system/models"
	"moodbrew-order-system/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStats(st *store.MemoryStore, userID string, xp int64) {
	_ = st.SetUserStats(context.Background(), &models.UserStats{
		ID:     "stats-" + userID,
		UserID: userID,
		XP:     xp,
		Points: xp / 2,
		Level:  LevelForXP(xp),
	})
}

func TestLeaderboardTieBreakAndContiguousRanks(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st, nil)

	// A and B tie on XP; the lower userID wins the earlier rank. Equal
	// XP never shares a rank.
	seedStats(st, "alice", 900)
	seedStats(st, "bob", 900)
	seedStats(st, "carol", 400)

	board, err := svc.View(context.Background(), "carol", 10)
	require.NoError(t, err)

	require.Len(t, board.Entries, 3)
	assert.Equal(t, 3, board.TotalUsers)

	assert.Equal(t, []int{1, 2, 3}, []int{board.Entries[0].Rank, board.Entries[1].Rank, board.Entries[2].Rank})
	assert.Equal(t, "alice", board.Entries[0].UserID)
	assert.Equal(t, "bob", board.Entries[1].UserID)
	assert.Equal(t, "carol", board.Entries[2].UserID)

	assert.False(t, board.Entries[0].IsCurrentUser)
	assert.True(t, board.Entries[2].IsCurrentUser)
}

func TestLeaderboardIncludesSelfBelowCutoff(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st, nil)

	for i := 0; i < 15; i++ {
		seedStats(st, fmt.Sprintf("user-%02d", i), int64(1000-i*10))
	}

	board, err := svc.View(context.Background(), "user-14", DefaultLeaderboardSize)
	require.NoError(t, err)

	// Top ten plus the viewer's own row with its true rank.
	require.Len(t, board.Entries, DefaultLeaderboardSize+1)
	assert.Equal(t, 15, board.TotalUsers)

	self := board.Entries[DefaultLeaderboardSize]
	assert.Equal(t, "user-14", self.UserID)
	assert.Equal(t, 15, self.Rank)
	assert.True(t, self.IsCurrentUser)

	for _, e := range board.Entries[:DefaultLeaderboardSize] {
		assert.False(t, e.IsCurrentUser)
	}
}

func TestLeaderboardViewerInsideTopNotDuplicated(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st, nil)

	seedStats(st, "alice", 500)
	seedStats(st, "bob", 100)

	board, err := svc.View(context.Background(), "alice", 10)
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	assert.True(t, board.Entries[0].IsCurrentUser)
}

func TestLeaderboardEmpty(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st, nil)

	board, err := svc.View(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, board.Entries)
	assert.Equal(t, 0, board.TotalUsers)
}

func TestLeaderboardUsesProfileNames(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st, nil)

	seedStats(st, "alice", 500)
	drink := "oat latte"
	st.PutCafeUser(models.CafeUser{
		ExternalUserID: "alice",
		Username:       "alice",
		DisplayName:    "Alice A.",
		FavoriteDrink:  &drink,
	})

	board, err := svc.View(context.Background(), "alice", 10)
	require.NoError(t, err)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, "Alice A.", board.Entries[0].DisplayName)
	require.NotNil(t, board.Entries[0].FavoriteDrink)
	assert.Equal(t, "oat latte", *board.Entries[0].FavoriteDrink)
}

func TestLeaderboardDeterministicAcrossQueries(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st, nil)

	for i := 0; i < 8; i++ {
		seedStats(st, fmt.Sprintf("user-%d", i), 300) // all tied
	}

	first, err := svc.View(context.Background(), "user-0", 10)
	require.NoError(t, err)
	second, err := svc.View(context.Background(), "user-0", 10)
	require.NoError(t, err)

	require.Equal(t, len(first.Entries), len(second.Entries))
	for i := range first.Entries {
		assert.Equal(t, first.Entries[i].UserID, second.Entries[i].UserID)
		assert.Equal(t, first.Entries[i].Rank, second.Entries[i].Rank)
	}
}
