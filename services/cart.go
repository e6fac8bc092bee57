package services

import (
	"errors"
	"sync"
	"time"

	"moodbrew-order-system/models"
)

var (
	ErrCartEmpty        = errors.New("cart is empty or absent")
	ErrLineOutOfRange   = errors.New("cart line index out of range")
	ErrUnknownSize      = errors.New("unknown drink size")
	ErrBadCustomization = errors.New("customization out of range")
)

// cartEntry wraps a cart with its last-touch time so stale sessions can
// be swept by the scheduler.
type cartEntry struct {
	cart      *models.Cart
	touchedAt time.Time
}

// CartStore holds the single in-progress cart per user session. All
// mutations for one user come from that user's own session, so a plain
// map guarded by one mutex is enough. Absent and empty are distinct
// states: a cart that loses its last line is removed from the map.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*cartEntry
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*cartEntry)}
}

// Get returns a snapshot of the user's cart, or ok=false when no cart
// exists.
func (s *CartStore) Get(userID string) (models.Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.carts[userID]
	if !ok {
		return models.Cart{}, false
	}
	return snapshotCart(entry.cart), true
}

// AddItem appends a line to the user's cart, creating the cart on first
// add. A line matching an existing (productID, size) pair merges by
// adding quantities. Quantity is coerced to at least 1; the total is
// recomputed unconditionally.
func (s *CartStore) AddItem(userID string, line models.CartLine) (models.Cart, error) {
	if line.Size != models.SizeSmall && line.Size != models.SizeMedium && line.Size != models.SizeLarge {
		return models.Cart{}, ErrUnknownSize
	}
	if !line.Customization.Valid() {
		return models.Cart{}, ErrBadCustomization
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.carts[userID]
	if !ok {
		entry = &cartEntry{cart: &models.Cart{Fulfillment: models.FulfillmentPickup}}
		s.carts[userID] = entry
	}

	merged := false
	for i := range entry.cart.Lines {
		if entry.cart.Lines[i].ProductID == line.ProductID && entry.cart.Lines[i].Size == line.Size {
			entry.cart.Lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		entry.cart.Lines = append(entry.cart.Lines, line)
	}

	entry.cart.RecomputeTotal()
	entry.touchedAt = time.Now()
	return snapshotCart(entry.cart), nil
}

// RemoveItem removes the line at the given position. When the last line
// goes, the whole cart is discarded and ok=false is returned so callers
// can tell "cart gone" from "cart updated".
func (s *CartStore) RemoveItem(userID string, index int) (models.Cart, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.carts[userID]
	if !ok {
		return models.Cart{}, false, ErrCartEmpty
	}
	if index < 0 || index >= len(entry.cart.Lines) {
		return models.Cart{}, false, ErrLineOutOfRange
	}

	entry.cart.Lines = append(entry.cart.Lines[:index], entry.cart.Lines[index+1:]...)
	if len(entry.cart.Lines) == 0 {
		delete(s.carts, userID)
		return models.Cart{}, false, nil
	}

	entry.cart.RecomputeTotal()
	entry.touchedAt = time.Now()
	return snapshotCart(entry.cart), true, nil
}

// SetFulfillment switches the cart between pickup and delivery.
func (s *CartStore) SetFulfillment(userID string, f models.FulfillmentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.carts[userID]
	if !ok {
		return ErrCartEmpty
	}
	entry.cart.Fulfillment = f
	entry.touchedAt = time.Now()
	return nil
}

// Clear discards the user's cart unconditionally.
func (s *CartStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// take removes and returns the cart in one step. Order submission uses
// it so snapshot-and-clear is atomic; restore puts the cart back when
// persisting the order fails.
func (s *CartStore) take(userID string) (*models.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.carts[userID]
	if !ok || len(entry.cart.Lines) == 0 {
		return nil, false
	}
	delete(s.carts, userID)
	return entry.cart, true
}

func (s *CartStore) restore(userID string, cart *models.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = &cartEntry{cart: cart, touchedAt: time.Now()}
}

// SweepIdle discards carts untouched for longer than maxIdle and returns
// how many were removed.
func (s *CartStore) SweepIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	cutoff := time.Now().Add(-maxIdle)
	for userID, entry := range s.carts {
		if entry.touchedAt.Before(cutoff) {
			delete(s.carts, userID)
			removed++
		}
	}
	return removed
}

// snapshotCart deep-copies lines so callers never hold a reference into
// the live cart.
func snapshotCart(c *models.Cart) models.Cart {
	cp := models.Cart{Fulfillment: c.Fulfillment, Total: c.Total}
	cp.Lines = make([]models.CartLine, len(c.Lines))
	copy(cp.Lines, c.Lines)
	for i := range cp.Lines {
		cp.Lines[i].Customization.AddOns = append([]string(nil), c.Lines[i].Customization.AddOns...)
	}
	return cp
}
