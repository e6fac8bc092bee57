package models

// ProductStatus indicates the publishing status of a catalog item
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"
)

// Product is one drink on the menu. Prices are resolved from here when a
// line is added to a cart; the order pipeline never re-reads them.
type Product struct {
	ID          string        `gorm:"primaryKey;type:uuid" json:"id"`
	Slug        string        `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Mood        string        `gorm:"index" json:"mood"` // e.g., "cozy", "energized", "calm"
	ImageURL    string        `gorm:"type:text" json:"image_url"`
	BasePrice   float64       `gorm:"not null" json:"base_price"`
	Status      ProductStatus `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`

	Timestamps
}

// sizeUpcharge added to the base price per cup size
var sizeUpcharge = map[DrinkSize]float64{
	SizeSmall:  0,
	SizeMedium: 0.5,
	SizeLarge:  1,
}

// PriceFor returns the resolved unit price for the given size.
func (p Product) PriceFor(size DrinkSize) float64 {
	return p.BasePrice + sizeUpcharge[size]
}
