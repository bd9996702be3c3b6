package config

import (
	"strings"

	"github.com/talgya/potion-shop/internal/shop"
)

// BarrelTier is one wholesale barrel size. Larger tiers are cheaper per ml,
// which is what makes the purchase planner's largest-unit-first greedy pay off.
type BarrelTier struct {
	Name         string
	RawMlPerUnit int
	PricePerUnit int
}

// barrelTiers is ordered smallest to largest. Per-ml prices: small 0.060,
// medium 0.055, large 0.050.
var barrelTiers = []BarrelTier{
	{Name: "SMALL", RawMlPerUnit: 1000, PricePerUnit: 60},
	{Name: "MEDIUM", RawMlPerUnit: 5000, PricePerUnit: 275},
	{Name: "LARGE", RawMlPerUnit: 10000, PricePerUnit: 500},
}

// BarrelTiers returns the static wholesale tier table.
func BarrelTiers() []BarrelTier {
	out := make([]BarrelTier, len(barrelTiers))
	copy(out, barrelTiers)
	return out
}

// OfferSKU builds the wholesale offer identifier for a tier and color,
// e.g. "LARGE_RED".
func OfferSKU(tier BarrelTier, color shop.Color) string {
	return tier.Name + "_" + strings.ToUpper(color.String())
}
