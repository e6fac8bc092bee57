package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"moodbrew-order-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreStatsRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.GetUserStats(ctx, "u1")
	assert.ErrorIs(t, err, ErrStatsNotFound)

	in := &models.UserStats{ID: "s1", UserID: "u1", XP: 30, Points: 15, Level: 1}
	require.NoError(t, st.SetUserStats(ctx, in))

	out, err := st.GetUserStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), out.XP)

	// Returned value is a copy, not a live reference.
	out.XP = 9999
	again, err := st.GetUserStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), again.XP)
}

func TestMemoryStoreOrderHistoryCap(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < OrderHistoryCap+10; i++ {
		order := &models.Order{ID: fmt.Sprintf("o-%d", i), UserID: "u1", Status: models.OrderStatusPending}
		order.CreatedAt = time.Now()
		require.NoError(t, st.AppendOrder(ctx, order))
	}

	history, err := st.ListOrders(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, history, OrderHistoryCap)
	assert.Equal(t, fmt.Sprintf("o-%d", OrderHistoryCap+9), history[0].ID, "newest first")

	// The evicted oldest orders are gone.
	_, err = st.GetOrder(ctx, "u1", "o-0")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMemoryStoreUpdateOrderStatus(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	order := &models.Order{ID: "o1", UserID: "u1", Status: models.OrderStatusPending}
	require.NoError(t, st.AppendOrder(ctx, order))

	require.NoError(t, st.UpdateOrderStatus(ctx, "u1", "o1", models.OrderStatusReady))
	got, err := st.GetOrder(ctx, "u1", "o1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, got.Status)

	assert.ErrorIs(t, st.UpdateOrderStatus(ctx, "u1", "missing", models.OrderStatusReady), ErrOrderNotFound)
	assert.ErrorIs(t, st.UpdateOrderStatus(ctx, "other", "o1", models.OrderStatusReady), ErrOrderNotFound)
}

func TestMemoryStorePendingAwardQueue(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	a := &models.PendingAward{ID: "a1", UserID: "u1", OrderID: "o1", XPDelta: 40}
	require.NoError(t, st.EnqueuePendingAward(ctx, a))

	// Same order never queues twice.
	dup := &models.PendingAward{ID: "a2", UserID: "u1", OrderID: "o1", XPDelta: 40}
	assert.ErrorIs(t, st.EnqueuePendingAward(ctx, dup), ErrDuplicateAward)

	list, err := st.ListPendingAwards(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].ID)

	require.NoError(t, st.ResolvePendingAward(ctx, "a1"))
	list, err = st.ListPendingAwards(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStoreListPendingAwardsLimit(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		a := &models.PendingAward{ID: fmt.Sprintf("a%d", i), UserID: "u1", OrderID: fmt.Sprintf("o%d", i)}
		a.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, st.EnqueuePendingAward(ctx, a))
	}

	list, err := st.ListPendingAwards(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a0", list[0].ID, "oldest awards drain first")
}

func TestMemoryStoreNotifications(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	n1 := &models.Notification{ID: "n1", UserID: "u1", Type: models.NotificationTypeLevelUp, Title: "Level 2!"}
	n1.CreatedAt = time.Now().Add(-time.Minute)
	n2 := &models.Notification{ID: "n2", UserID: "u1", Type: models.NotificationTypeAchievement, Title: "First Sip"}
	n2.CreatedAt = time.Now()
	require.NoError(t, st.CreateNotification(ctx, n1))
	require.NoError(t, st.CreateNotification(ctx, n2))

	all, err := st.ListNotifications(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "n2", all[0].ID, "newest first")

	require.NoError(t, st.MarkNotificationViewed(ctx, "u1", "n1"))
	unviewed, err := st.ListNotifications(ctx, "u1", true)
	require.NoError(t, err)
	require.Len(t, unviewed, 1)
	assert.Equal(t, "n2", unviewed[0].ID)

	assert.ErrorIs(t, st.MarkNotificationViewed(ctx, "u1", "missing"), ErrNotificationNotFound)
}
