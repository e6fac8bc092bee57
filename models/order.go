package models

import "time"

// OrderStatus is the lifecycle state of a submitted order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusRank fixes the total order of the happy path. Fulfillment events
// may skip steps (pending → ready is fine) but never move backwards.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusPreparing: 1,
	OrderStatusReady:     2,
	OrderStatusDelivered: 3,
}

// Known reports whether s is one of the defined statuses.
func (s OrderStatus) Known() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next is allowed:
// strictly forward along the status order, or to cancelled from any
// non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() || !next.Known() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

func (s OrderStatus) String() string {
	return string(s)
}

// Order is an immutable snapshot of a submitted cart. Only Status changes
// after creation, driven by fulfillment events.
type Order struct {
	ID               string          `gorm:"primaryKey;type:uuid" json:"id"`
	UserID           string          `gorm:"index;not null" json:"user_id"`
	CafeID           *string         `gorm:"index" json:"cafe_id,omitempty"`
	Fulfillment      FulfillmentType `gorm:"type:varchar(16);not null" json:"fulfillment"`
	Status           OrderStatus     `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	Total            float64         `gorm:"not null" json:"total"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	EstimatedReadyAt *time.Time      `json:"estimated_ready_at,omitempty"`

	Timestamps
}

// OrderItem is a copied cart line frozen at submission time. Later cart
// mutations never touch it.
type OrderItem struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	OrderID   string    `gorm:"index;not null" json:"-"`
	ProductID string    `gorm:"index;not null" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	Size      DrinkSize `gorm:"type:varchar(8)" json:"size"`
	Milk      string    `json:"milk"`
	Sweetness int       `json:"sweetness"`
	AddOns    []string  `gorm:"type:jsonb;serializer:json" json:"add_ons,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
}

// Customization reassembles the structured customization choices for
// scoring. ok is false when the stored data is out of range; callers
// degrade rather than fail.
func (i OrderItem) Customization() (Customization, bool) {
	c := Customization{Milk: i.Milk, Sweetness: i.Sweetness, AddOns: i.AddOns}
	if !c.Valid() || i.Quantity < 1 {
		return Customization{}, false
	}
	return c, true
}
