package planner

import (
	"testing"

	"github.com/talgya/potion-shop/internal/shop"
)

func intp(v int) *int         { return &v }
func pctp(v float64) *float64 { return &v }

func TestPlanCapacityUpgrade_FirstMatchWins(t *testing.T) {
	p := testPlanner()
	rules := []shop.CapacityThresholdRule{
		{MinCurrency: 5000, RawUnitsToBuy: 2, GoodsUnitsToBuy: 2},
		{MinCurrency: 3000, RawUnitsToBuy: 1, GoodsUnitsToBuy: 0},
	}

	tests := []struct {
		name     string
		currency int
		want     shop.CapacityPurchase
	}{
		// 3500 fails the 5000 rule and stops at the 3000 rule — the
		// match is the first in list order, not the richest.
		{"mid_currency_takes_second_rule", 3500, shop.CapacityPurchase{RawUnits: 1}},
		{"high_currency_takes_first_rule", 6000, shop.CapacityPurchase{RawUnits: 2, GoodsUnits: 2}},
		{"low_currency_matches_nothing", 2000, shop.CapacityPurchase{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := shop.InventorySnapshot{
				Currency:           tt.currency,
				FinishedGoods:      map[string]int{},
				RawCapacityUnits:   1,
				GoodsCapacityUnits: 1,
			}
			got := p.PlanCapacityUpgrade(snap, rules)
			if got != tt.want {
				t.Errorf("upgrade = %v, want %v", got, tt.want)
			}
		})
	}
}

// Optional thresholds only gate when set; a rule with a fill threshold
// matches only once the stock crosses it.
func TestPlanCapacityUpgrade_OptionalThresholds(t *testing.T) {
	p := testPlanner()
	rules := []shop.CapacityThresholdRule{
		{MinCurrency: 1000, GoodsFillAtLeast: pctp(0.8), GoodsUnitsToBuy: 1},
		{MinCurrency: 1000, RawMlAtLeast: intp(15000), RawUnitsToBuy: 1},
	}

	// 30/50 bottles = 60% fill — first rule fails; 16000 ml raw passes
	// the second.
	snap := shop.InventorySnapshot{
		Currency:           2000,
		RawMl:              [shop.NumColors]int{16000, 0, 0, 0},
		FinishedGoods:      map[string]int{"A": 30},
		RawCapacityUnits:   1,
		GoodsCapacityUnits: 1,
	}
	got := p.PlanCapacityUpgrade(snap, rules)
	want := shop.CapacityPurchase{RawUnits: 1}
	if got != want {
		t.Errorf("upgrade = %v, want %v", got, want)
	}

	// Fill the shelf to 90% and the first rule matches instead, shadowing
	// the second even though it would also match.
	snap.FinishedGoods["A"] = 45
	got = p.PlanCapacityUpgrade(snap, rules)
	want = shop.CapacityPurchase{GoodsUnits: 1}
	if got != want {
		t.Errorf("upgrade = %v, want %v", got, want)
	}
}

func TestPlanCapacityUpgrade_EmptyRules(t *testing.T) {
	p := testPlanner()
	snap := shop.InventorySnapshot{Currency: 100000, FinishedGoods: map[string]int{}}
	if got := p.PlanCapacityUpgrade(snap, nil); got != (shop.CapacityPurchase{}) {
		t.Errorf("upgrade = %v, want zero", got)
	}
}
