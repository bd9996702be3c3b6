package config

import (
	"fmt"

	"github.com/talgya/potion-shop/internal/shop"
)

func intPtr(v int) *int         { return &v }
func pctPtr(v float64) *float64 { return &v }

// capacityTables holds the ordered upgrade rules per strategy. Rules are
// evaluated top to bottom and the first match wins; a rule lower in the
// table is unreachable whenever one above it matches.
var capacityTables = map[shop.Strategy][]shop.CapacityThresholdRule{
	shop.StrategyOpening: {
		{MinCurrency: 5000, RawUnitsToBuy: 2, GoodsUnitsToBuy: 2},
		{MinCurrency: 3000, RawUnitsToBuy: 1, GoodsUnitsToBuy: 0},
		{MinCurrency: 1500, RawFillAtLeast: pctPtr(0.80), RawUnitsToBuy: 1},
	},
	shop.StrategyStocking: {
		{MinCurrency: 6000, GoodsFillAtLeast: pctPtr(0.70), RawUnitsToBuy: 1, GoodsUnitsToBuy: 1},
		{MinCurrency: 4000, RawFillAtLeast: pctPtr(0.75), RawUnitsToBuy: 1},
		{MinCurrency: 2500, GoodsStockAtLeast: intPtr(80), GoodsUnitsToBuy: 1},
	},
	shop.StrategyExpanding: {
		{MinCurrency: 8000, RawUnitsToBuy: 2, GoodsUnitsToBuy: 1},
		{MinCurrency: 5000, RawFillAtLeast: pctPtr(0.60), RawUnitsToBuy: 1, GoodsUnitsToBuy: 1},
		{MinCurrency: 3500, GoodsFillAtLeast: pctPtr(0.65), GoodsUnitsToBuy: 1},
	},
	shop.StrategyEstablished: {
		{MinCurrency: 12000, RawMlAtLeast: intPtr(30000), RawUnitsToBuy: 2, GoodsUnitsToBuy: 2},
		{MinCurrency: 8000, RawUnitsToBuy: 1, GoodsUnitsToBuy: 1},
		{MinCurrency: 5000, GoodsFillAtLeast: pctPtr(0.70), GoodsUnitsToBuy: 1},
	},
	shop.StrategyPeak: {
		{MinCurrency: 20000, RawUnitsToBuy: 2, GoodsUnitsToBuy: 2},
		{MinCurrency: 12000, RawFillAtLeast: pctPtr(0.50), RawUnitsToBuy: 1, GoodsUnitsToBuy: 1},
	},
}

// CapacityRules returns the ordered upgrade rule table for a strategy.
func CapacityRules(strategy shop.Strategy) ([]shop.CapacityThresholdRule, error) {
	rules, ok := capacityTables[strategy]
	if !ok {
		return nil, fmt.Errorf("capacity rules for strategy %d: %w", strategy, shop.ErrUnknownStrategy)
	}
	out := make([]shop.CapacityThresholdRule, len(rules))
	copy(out, rules)
	return out, nil
}

// Capacity unit prices, paid when a tick's upgrade plan is applied.
const (
	RackUnitPrice  = 1200 // one barrel rack (20000 ml)
	ShelfUnitPrice = 900  // one shelf (50 bottles)
)
