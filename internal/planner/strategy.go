package planner

import "github.com/talgya/potion-shop/internal/shop"

// strategyTier bounds the capacity range a strategy applies to. Tiers are
// ordered lowest capacity to highest and the first match wins. The shop's
// expected build path keeps racks at or ahead of shelves, so the bounds
// trace that path; combinations off the path match nothing.
type strategyTier struct {
	strategy           shop.Strategy
	rawMin, rawMax     int
	goodsMin, goodsMax int
}

var strategyTiers = []strategyTier{
	{shop.StrategyOpening, 1, 1, 1, 1},
	{shop.StrategyStocking, 1, 1, 1, 1},
	{shop.StrategyExpanding, 2, 2, 1, 2},
	{shop.StrategyEstablished, 3, 3, 2, 3},
	{shop.StrategyPeak, 4, 6, 3, 6},
}

// openingCurrencyMax splits the two single-rack tiers: below it the shop
// is still opening, at or above it the shop can afford to stock up.
const openingCurrencyMax = 2000

// ResolveStrategy maps the snapshot's currency and capacity onto a
// strategy tier. A capacity combination outside every tier (for example
// shelves built far ahead of racks) falls back to the lowest tier with a
// logged warning rather than failing the planning cycle.
func (p *Planner) ResolveStrategy(snap shop.InventorySnapshot) shop.Strategy {
	for _, tier := range strategyTiers {
		if snap.RawCapacityUnits < tier.rawMin || snap.RawCapacityUnits > tier.rawMax {
			continue
		}
		if snap.GoodsCapacityUnits < tier.goodsMin || snap.GoodsCapacityUnits > tier.goodsMax {
			continue
		}
		if tier.strategy == shop.StrategyOpening && snap.Currency >= openingCurrencyMax {
			continue
		}
		return tier.strategy
	}

	p.log.Warn("capacity combination off the expected build path, using lowest tier",
		"raw_units", snap.RawCapacityUnits,
		"goods_units", snap.GoodsCapacityUnits,
		"currency", snap.Currency,
	)
	return shop.StrategyOpening
}
