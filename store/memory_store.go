package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"moodbrew-order-system/models"
)

// MemoryStore implements Store with in-memory maps. Used in tests and as
// a stand-in when no database is configured.
type MemoryStore struct {
	mu            sync.RWMutex
	stats         map[string]*models.UserStats   // userID -> stats
	orders        map[string][]models.Order      // userID -> newest first
	awards        map[string]models.PendingAward // awardID -> award
	notifications map[string][]models.Notification
	users         map[string]models.CafeUser
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stats:         make(map[string]*models.UserStats),
		orders:        make(map[string][]models.Order),
		awards:        make(map[string]models.PendingAward),
		notifications: make(map[string][]models.Notification),
		users:         make(map[string]models.CafeUser),
	}
}

func (s *MemoryStore) GetUserStats(_ context.Context, userID string) (*models.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[userID]
	if !ok {
		return nil, ErrStatsNotFound
	}
	cp := *stats
	return &cp, nil
}

func (s *MemoryStore) SetUserStats(_ context.Context, stats *models.UserStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *stats
	s.stats[stats.UserID] = &cp
	return nil
}

func (s *MemoryStore) ListAllUserStats(_ context.Context) ([]models.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.UserStats, 0, len(s.stats))
	for _, st := range s.stats {
		all = append(all, *st)
	}
	return all, nil
}

func (s *MemoryStore) AppendOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := append([]models.Order{*order}, s.orders[order.UserID]...)
	if len(history) > OrderHistoryCap {
		history = history[:OrderHistoryCap]
	}
	s.orders[order.UserID] = history
	return nil
}

func (s *MemoryStore) GetOrder(_ context.Context, userID, orderID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders[userID] {
		if o.ID == orderID {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, userID, orderID string, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.orders[userID]
	for i := range history {
		if history[i].ID == orderID {
			history[i].Status = status
			return nil
		}
	}
	return ErrOrderNotFound
}

func (s *MemoryStore) ListOrders(_ context.Context, userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.orders[userID]
	out := make([]models.Order, len(history))
	copy(out, history)
	return out, nil
}

func (s *MemoryStore) EnqueuePendingAward(_ context.Context, award *models.PendingAward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.awards {
		if a.OrderID == award.OrderID {
			return ErrDuplicateAward
		}
	}
	cp := *award
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.awards[award.ID] = cp
	return nil
}

func (s *MemoryStore) ListPendingAwards(_ context.Context, limit int) ([]models.PendingAward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PendingAward, 0, len(s.awards))
	for _, a := range s.awards {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) ResolvePendingAward(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.awards, id)
	return nil
}

func (s *MemoryStore) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.notifications[n.UserID] = append(s.notifications[n.UserID], cp)
	return nil
}

func (s *MemoryStore) ListNotifications(_ context.Context, userID string, unviewedOnly bool) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Notification
	for _, n := range s.notifications[userID] {
		if unviewedOnly && n.Viewed {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) MarkNotificationViewed(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[userID]
	for i := range list {
		if list[i].ID == id {
			list[i].Viewed = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (s *MemoryStore) ListCafeUsers(_ context.Context) ([]models.CafeUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CafeUser, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

// PutCafeUser seeds a profile snapshot; used in tests.
func (s *MemoryStore) PutCafeUser(u models.CafeUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ExternalUserID] = u
}
