package planner

import (
	"strings"
	"testing"

	"github.com/talgya/potion-shop/internal/shop"
)

func TestCheckPlans(t *testing.T) {
	p := testPlanner()
	priority := []shop.PriorityEntry{
		entry("A", shop.Composition{100, 0, 0, 0}, 0.6),
	}
	snap := shop.InventorySnapshot{
		Currency:           1000,
		RawMl:              [shop.NumColors]int{2000, 0, 0, 0},
		FinishedGoods:      map[string]int{},
		RawCapacityUnits:   1,
		GoodsCapacityUnits: 1,
	}

	tests := []struct {
		name     string
		bottling []shop.BottlingPlanEntry
		orders   []shop.PurchaseOrder
		wantErr  string
	}{
		{
			name:     "valid_plans_pass",
			bottling: []shop.BottlingPlanEntry{{SKU: "A", Quantity: 20}},
			orders: []shop.PurchaseOrder{
				{OfferSKU: "SMALL_RED", Color: shop.ColorRed, Quantity: 2, PricePerUnit: 60, RawMlPerUnit: 1000},
			},
		},
		{
			name:     "shelf_overdraw_caught",
			bottling: []shop.BottlingPlanEntry{{SKU: "A", Quantity: 55}},
			wantErr:  "vacant shelf slots",
		},
		{
			name:     "cellar_overdraw_caught",
			bottling: []shop.BottlingPlanEntry{{SKU: "A", Quantity: 25}},
			wantErr:  "in the cellar",
		},
		{
			name: "overspend_caught",
			orders: []shop.PurchaseOrder{
				{OfferSKU: "LARGE_RED", Color: shop.ColorRed, Quantity: 3, PricePerUnit: 500, RawMlPerUnit: 1000},
			},
			wantErr: "coins on hand",
		},
		{
			name: "rack_overflow_caught",
			orders: []shop.PurchaseOrder{
				{OfferSKU: "LARGE_RED", Color: shop.ColorRed, Quantity: 2, PricePerUnit: 500, RawMlPerUnit: 10000},
			},
			wantErr: "rack vacancy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckPlans(snap, priority, tt.bottling, tt.orders)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("CheckPlans() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("CheckPlans() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
