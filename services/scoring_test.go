package services

import (
	"testing"

	"moodbrew-order-system/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeXPBaseOnly(t *testing.T) {
	order := &models.Order{
		Items: []models.OrderItem{
			{ProductID: "espresso", Milk: models.DefaultMilk, Quantity: 1, UnitPrice: 3},
		},
		Total: 0,
	}

	assert.Equal(t, int64(BaseOrderXP), ComputeXP(order))
}

func TestComputeXPLargeOrderLevelsUp(t *testing.T) {
	// Three plain drinks, no customizations, total 400:
	// 20 base + floor(400*2) = 820 XP.
	order := &models.Order{
		Items: []models.OrderItem{
			{ProductID: "a", Milk: models.DefaultMilk, Quantity: 1},
			{ProductID: "b", Milk: models.DefaultMilk, Quantity: 1},
			{ProductID: "c", Milk: models.DefaultMilk, Quantity: 1},
		},
		Total: 400,
	}

	xp := ComputeXP(order)
	assert.Equal(t, int64(820), xp)
	assert.Equal(t, int64(410), PointsForXP(xp))
	assert.Equal(t, 2, LevelForXP(xp))
}

func TestComputeXPCustomizationDimensions(t *testing.T) {
	// Oat milk + sweetness + add-ons = 3 dimensions on one item,
	// one dimension on the other.
	order := &models.Order{
		Items: []models.OrderItem{
			{ProductID: "a", Milk: "oat", Sweetness: 3, AddOns: []string{"cinnamon"}, Quantity: 1},
			{ProductID: "b", Milk: "oat", Quantity: 2},
		},
		Total: 10,
	}

	// 20 + (3+1)*5 + floor(10*2) = 60
	assert.Equal(t, int64(60), ComputeXP(order))
}

func TestComputeXPDeterministic(t *testing.T) {
	order := &models.Order{
		Items: []models.OrderItem{
			{ProductID: "a", Milk: "almond", Sweetness: 5, Quantity: 2},
		},
		Total: 12.75,
	}

	first := ComputeXP(order)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeXP(order))
	}
}

func TestComputeXPSkipsInvalidLines(t *testing.T) {
	order := &models.Order{
		Items: []models.OrderItem{
			{ProductID: "bad", Milk: "oat", Sweetness: 99, Quantity: 1}, // out of range
			{ProductID: "ok", Milk: "oat", Quantity: 1},
		},
		Total: 5,
	}

	// Bad line contributes no customization bonus; spend bonus still applies.
	assert.Equal(t, int64(20+5+10), ComputeXP(order))
}

func TestComputeXPNilOrder(t *testing.T) {
	assert.Equal(t, int64(0), ComputeXP(nil))
}

func TestPointsNeverNegative(t *testing.T) {
	assert.Equal(t, int64(0), PointsForXP(-10))
}

func TestLevelForXPBoundaries(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(499))
	assert.Equal(t, 2, LevelForXP(500))
	assert.Equal(t, 3, LevelForXP(1000))
	assert.Equal(t, 1, LevelForXP(-5))
}
