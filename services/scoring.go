package services

import (
	"math"

	"moodbrew-order-system/models"
)

// Scoring policy constants (tunable via config/env later)
const (
	// BaseOrderXP is awarded once per submitted order.
	BaseOrderXP = 20
	// PerCustomizationXP is awarded per customization dimension per item.
	PerCustomizationXP = 5
	// SpendMultiplier converts order total into XP.
	SpendMultiplier = 2
	// LevelXPStep is the XP width of one level.
	LevelXPStep = 500
	// pointsPerXP: points accrue at half the XP rate.
	pointsPerXP = 2
)

// ComputeXP maps an order to its XP delta. Pure and deterministic: the
// same order always yields the same result, so a failed stats write can
// be retried with identical deltas. Lines with out-of-range data are
// skipped for the customization bonus only; the result is never
// negative and the function never fails.
func ComputeXP(order *models.Order) int64 {
	if order == nil {
		return 0
	}

	xp := int64(BaseOrderXP)

	for _, item := range order.Items {
		custom, ok := item.Customization()
		if !ok {
			continue
		}
		xp += int64(custom.Dimensions()) * PerCustomizationXP
	}

	if order.Total > 0 {
		xp += int64(math.Floor(order.Total * SpendMultiplier))
	}

	return xp
}

// PointsForXP derives the loyalty-point delta from an XP delta.
func PointsForXP(xpDelta int64) int64 {
	if xpDelta < 0 {
		return 0
	}
	return xpDelta / pointsPerXP
}

// LevelForXP derives the level for a cumulative XP total. Level is a
// step function of XP and is never stored independently.
func LevelForXP(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	return int(xp/LevelXPStep) + 1
}
