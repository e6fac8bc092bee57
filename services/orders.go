package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"moodbrew-order-system/cache"
	"moodbrew-order-system/models"
	"moodbrew-order-system/store"

	"github.com/google/uuid"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Estimated preparation windows per fulfillment type
const (
	pickupPrepTime   = 15 * time.Minute
	deliveryPrepTime = 35 * time.Minute
)

// OrderService turns finalized carts into persisted orders and drives
// their lifecycle from external fulfillment events.
type OrderService struct {
	Store       store.Store
	Carts       *CartStore
	Progression *ProgressionService
	Leaderboard cache.LeaderboardCache // optional; invalidated on submit
}

func NewOrderService(st store.Store, carts *CartStore, progression *ProgressionService) *OrderService {
	return &OrderService{Store: st, Carts: carts, Progression: progression}
}

// Submit converts the user's cart into a pending order, appends it to
// order history, clears the cart and applies progression — atomic from
// the caller's point of view. An absent or empty cart is a guarded
// no-op: ErrCartEmpty, no state change. If persisting the order fails
// the cart is restored untouched, so there is never a cleared cart
// without a matching order.
func (s *OrderService) Submit(ctx context.Context, userID string, cafeID *string) (*models.Order, *ProgressionResult, error) {
	cart, ok := s.Carts.take(userID)
	if !ok {
		return nil, nil, ErrCartEmpty
	}

	now := time.Now()
	ready := now.Add(pickupPrepTime)
	if cart.Fulfillment == models.FulfillmentDelivery {
		ready = now.Add(deliveryPrepTime)
	}

	order := &models.Order{
		ID:               uuid.NewString(),
		UserID:           userID,
		CafeID:           cafeID,
		Fulfillment:      cart.Fulfillment,
		Status:           models.OrderStatusPending,
		Total:            cart.Total,
		Items:            copyLines(cart.Lines),
		EstimatedReadyAt: &ready,
	}
	order.CreatedAt = now

	if err := s.Store.AppendOrder(ctx, order); err != nil {
		s.Carts.restore(userID, cart)
		return nil, nil, fmt.Errorf("persist order for %s: %w", userID, err)
	}

	result, err := s.Progression.ApplyOrder(ctx, order)
	if err != nil {
		// The order exists and scoring is deterministic; stats can be
		// reconciled from history later.
		log.Printf("⚠️ Progression failed for order %s: %v", order.ID, err)
		return order, nil, nil
	}

	// Drop any cached ranking so the submitter's next leaderboard read
	// reflects this order.
	if s.Leaderboard != nil {
		if err := s.Leaderboard.Invalidate(ctx); err != nil {
			log.Printf("⚠️ Leaderboard cache invalidate failed: %v", err)
		}
	}

	log.Printf("☕ Order submitted: %s → %s (%d items, total %.2f)",
		userID, order.ID, len(order.Items), order.Total)
	return order, result, nil
}

// UpdateStatus applies an external fulfillment event to an order.
// Skipped forward transitions are accepted; backward moves and
// transitions out of a terminal state are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, userID, orderID string, next models.OrderStatus) (*models.Order, error) {
	if !next.Known() {
		return nil, ErrUnknownStatus
	}

	order, err := s.Store.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	prev := order.Status
	if !prev.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, prev, next)
	}

	if err := s.Store.UpdateOrderStatus(ctx, userID, orderID, next); err != nil {
		return nil, err
	}
	order.Status = next
	log.Printf("📦 Order %s: %s → %s", orderID, prev, next)
	return order, nil
}

// History returns the user's retained orders, newest first.
func (s *OrderService) History(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Store.ListOrders(ctx, userID)
}

// Get returns one order owned by the user.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {
	return s.Store.GetOrder(ctx, userID, orderID)
}

// copyLines snapshots cart lines into order items. Items are copied,
// never referenced: later cart mutations must not affect a submitted
// order.
func copyLines(lines []models.CartLine) []models.OrderItem {
	items := make([]models.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = models.OrderItem{
			ID:        uuid.NewString(),
			ProductID: l.ProductID,
			Name:      l.Name,
			ImageURL:  l.ImageURL,
			Size:      l.Size,
			Milk:      l.Customization.Milk,
			Sweetness: l.Customization.Sweetness,
			AddOns:    append([]string(nil), l.Customization.AddOns...),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return items
}
