package store

import (
	"context"
	"errors"

	"moodbrew-order-system/models"
)

// Common errors returned by the store
var (
	ErrStatsNotFound        = errors.New("user stats not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicateAward       = errors.New("pending award for this order already queued")
)

// OrderHistoryCap bounds per-user retained order history; the oldest
// orders beyond it are evicted on append.
const OrderHistoryCap = 200

// Store is the persistence boundary of the order core. Reads reflect the
// most recent successful write for a key; the core does not care what
// sits behind it.
type Store interface {
	// User stats
	GetUserStats(ctx context.Context, userID string) (*models.UserStats, error)
	SetUserStats(ctx context.Context, stats *models.UserStats) error
	ListAllUserStats(ctx context.Context) ([]models.UserStats, error)

	// Orders
	AppendOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) error
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)

	// Pending award queue (stats updates that failed to persist)
	EnqueuePendingAward(ctx context.Context, award *models.PendingAward) error
	ListPendingAwards(ctx context.Context, limit int) ([]models.PendingAward, error)
	ResolvePendingAward(ctx context.Context, id string) error

	// Notifications
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string, unviewedOnly bool) ([]models.Notification, error)
	MarkNotificationViewed(ctx context.Context, userID, id string) error

	// Profile snapshots
	ListCafeUsers(ctx context.Context) ([]models.CafeUser, error)
}
