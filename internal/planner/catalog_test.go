package planner

import (
	"reflect"
	"testing"

	"github.com/talgya/potion-shop/internal/shop"
)

func TestBuildCatalog_PriorityThenFiller(t *testing.T) {
	p := testPlanner()
	priority := []shop.PriorityEntry{
		entry("A", shop.Composition{100, 0, 0, 0}, 0.5),
		entry("B", shop.Composition{0, 100, 0, 0}, 0.3), // out of stock
		entry("C", shop.Composition{50, 0, 0, 50}, 0.2),
	}
	snap := shop.InventorySnapshot{
		FinishedGoods: map[string]int{
			"A": 12,
			"C": 4,
			"D": 30, // not on the priority list, deepest stock
		},
	}

	catalog := p.BuildCatalog(priority, snap, 6)

	skus := make([]string, len(catalog))
	for i, e := range catalog {
		skus[i] = e.SKU
	}
	// Priority order first (stock-filtered), then filler by quantity.
	want := []string{"A", "C", "D"}
	if !reflect.DeepEqual(skus, want) {
		t.Errorf("catalog order = %v, want %v", skus, want)
	}

	// Priority entries sell at the list price; filler sells at the
	// item's default price.
	if catalog[0].Price != 30 || catalog[2].Price != 45 {
		t.Errorf("prices = %d, %d; want 30 (priority) and 45 (filler default)",
			catalog[0].Price, catalog[2].Price)
	}
}

func TestBuildCatalog_SlotLimit(t *testing.T) {
	p := testPlanner()
	priority := []shop.PriorityEntry{
		entry("A", shop.Composition{100, 0, 0, 0}, 0.5),
		entry("B", shop.Composition{0, 100, 0, 0}, 0.3),
	}
	snap := shop.InventorySnapshot{
		FinishedGoods: map[string]int{"A": 5, "B": 5, "C": 9, "D": 7},
	}

	catalog := p.BuildCatalog(priority, snap, 3)
	if len(catalog) != 3 {
		t.Fatalf("catalog has %d slots, want 3", len(catalog))
	}
	// The single filler slot goes to the deepest remaining stock.
	if catalog[2].SKU != "C" {
		t.Errorf("filler slot = %s, want C", catalog[2].SKU)
	}
}

// Filler candidates without a catalog definition stay off the display.
func TestBuildCatalog_UnknownStockSkipped(t *testing.T) {
	p := testPlanner()
	snap := shop.InventorySnapshot{
		FinishedGoods: map[string]int{"GHOST": 50, "D": 2},
	}

	catalog := p.BuildCatalog(nil, snap, 6)
	if len(catalog) != 1 || catalog[0].SKU != "D" {
		t.Errorf("catalog = %v, want just D", catalog)
	}
}

func TestBuildCatalog_FillerTieBreaksBySKU(t *testing.T) {
	p := testPlanner()
	snap := shop.InventorySnapshot{
		FinishedGoods: map[string]int{"D": 10, "C": 10, "B": 10},
	}

	catalog := p.BuildCatalog(nil, snap, 6)
	skus := make([]string, len(catalog))
	for i, e := range catalog {
		skus[i] = e.SKU
	}
	want := []string{"B", "C", "D"}
	if !reflect.DeepEqual(skus, want) {
		t.Errorf("catalog order = %v, want %v", skus, want)
	}
}
