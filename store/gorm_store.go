package store

import (
	"context"
	"errors"
	"fmt"

	"moodbrew-order-system/models"

	"gorm.io/gorm"
)

// GormStore implements Store on top of the service's Postgres database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	var stats models.UserStats
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStatsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	return &stats, nil
}

func (s *GormStore) SetUserStats(ctx context.Context, stats *models.UserStats) error {
	if err := s.db.WithContext(ctx).Save(stats).Error; err != nil {
		return fmt.Errorf("set user stats: %w", err)
	}
	return nil
}

func (s *GormStore) ListAllUserStats(ctx context.Context) ([]models.UserStats, error) {
	var all []models.UserStats
	if err := s.db.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, fmt.Errorf("list user stats: %w", err)
	}
	return all, nil
}

// AppendOrder persists the order with its items and evicts history beyond
// OrderHistoryCap in the same transaction.
func (s *GormStore) AppendOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		var stale []models.Order
		if err := tx.Where("user_id = ?", order.UserID).
			Order("created_at DESC").
			Offset(OrderHistoryCap).
			Find(&stale).Error; err != nil {
			return fmt.Errorf("find stale orders: %w", err)
		}
		for _, o := range stale {
			if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return fmt.Errorf("evict order items: %w", err)
			}
			if err := tx.Unscoped().Delete(&models.Order{}, "id = ?", o.ID).Error; err != nil {
				return fmt.Errorf("evict order: %w", err)
			}
		}
		return nil
	})
}

func (s *GormStore) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND user_id = ?", orderID, userID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *GormStore) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *GormStore) EnqueuePendingAward(ctx context.Context, award *models.PendingAward) error {
	var count int64
	s.db.WithContext(ctx).Model(&models.PendingAward{}).
		Where("order_id = ?", award.OrderID).
		Count(&count)
	if count > 0 {
		return ErrDuplicateAward
	}
	if err := s.db.WithContext(ctx).Create(award).Error; err != nil {
		return fmt.Errorf("enqueue pending award: %w", err)
	}
	return nil
}

func (s *GormStore) ListPendingAwards(ctx context.Context, limit int) ([]models.PendingAward, error) {
	var awards []models.PendingAward
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Find(&awards).Error
	if err != nil {
		return nil, fmt.Errorf("list pending awards: %w", err)
	}
	return awards, nil
}

func (s *GormStore) ResolvePendingAward(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Unscoped().Delete(&models.PendingAward{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("resolve pending award: %w", err)
	}
	return nil
}

func (s *GormStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *GormStore) ListNotifications(ctx context.Context, userID string, unviewedOnly bool) ([]models.Notification, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unviewedOnly {
		q = q.Where("viewed = ?", false)
	}
	var out []models.Notification
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

func (s *GormStore) MarkNotificationViewed(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("viewed", true)
	if res.Error != nil {
		return fmt.Errorf("mark notification viewed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *GormStore) ListCafeUsers(ctx context.Context) ([]models.CafeUser, error) {
	var users []models.CafeUser
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list cafe users: %w", err)
	}
	return users, nil
}
