package planner

import (
	"testing"

	"github.com/talgya/potion-shop/internal/shop"
)

func TestResolveStrategy_TierProgression(t *testing.T) {
	p := testPlanner()

	tests := []struct {
		name                 string
		currency             int
		rawUnits, goodsUnits int
		want                 shop.Strategy
	}{
		{"fresh_shop", 500, 1, 1, shop.StrategyOpening},
		{"just_under_currency_split", 1999, 1, 1, shop.StrategyOpening},
		{"currency_split_promotes", 2000, 1, 1, shop.StrategyStocking},
		{"second_rack", 300, 2, 1, shop.StrategyExpanding},
		{"second_rack_second_shelf", 300, 2, 2, shop.StrategyExpanding},
		{"third_rack", 300, 3, 2, shop.StrategyEstablished},
		{"built_out", 300, 4, 3, shop.StrategyPeak},
		{"fully_built_out", 300, 5, 5, shop.StrategyPeak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := shop.InventorySnapshot{
				Currency:           tt.currency,
				FinishedGoods:      map[string]int{},
				RawCapacityUnits:   tt.rawUnits,
				GoodsCapacityUnits: tt.goodsUnits,
			}
			if got := p.ResolveStrategy(snap); got != tt.want {
				t.Errorf("ResolveStrategy(%d coins, %d racks, %d shelves) = %s, want %s",
					tt.currency, tt.rawUnits, tt.goodsUnits, got, tt.want)
			}
		})
	}
}

// Capacity combinations off the expected build path (shelves ahead of
// racks, or nothing built at all) fall back to the lowest tier instead of
// failing; the anomaly surfaces in logs, not as an error.
func TestResolveStrategy_OffPathFallsBack(t *testing.T) {
	p := testPlanner()

	offPath := []shop.InventorySnapshot{
		{Currency: 300, RawCapacityUnits: 1, GoodsCapacityUnits: 3, FinishedGoods: map[string]int{}},
		{Currency: 300, RawCapacityUnits: 0, GoodsCapacityUnits: 0, FinishedGoods: map[string]int{}},
		{Currency: 300, RawCapacityUnits: 7, GoodsCapacityUnits: 7, FinishedGoods: map[string]int{}},
	}
	for _, snap := range offPath {
		if got := p.ResolveStrategy(snap); got != shop.StrategyOpening {
			t.Errorf("ResolveStrategy(%d racks, %d shelves) = %s, want fallback to %s",
				snap.RawCapacityUnits, snap.GoodsCapacityUnits, got, shop.StrategyOpening)
		}
	}
}
