package config

import (
	"errors"
	"math"
	"testing"

	"github.com/talgya/potion-shop/internal/shop"
)

func TestItemDefinitions_CompositionsValid(t *testing.T) {
	for sku, def := range ItemDefinitions() {
		if !def.Composition.Valid() {
			t.Errorf("%s: composition %v does not sum to 100", sku, def.Composition)
		}
		if def.Price <= 0 {
			t.Errorf("%s: price %d must be positive", sku, def.Price)
		}
	}
}

func TestPriorityList_AllDaysAndStrategies(t *testing.T) {
	strategies := []shop.Strategy{
		shop.StrategyOpening, shop.StrategyStocking, shop.StrategyExpanding,
		shop.StrategyEstablished, shop.StrategyPeak,
	}
	defs := ItemDefinitions()

	for day := shop.Day(0); day < shop.DaysPerWeek; day++ {
		for _, strategy := range strategies {
			list, err := PriorityList(day, strategy)
			if err != nil {
				t.Fatalf("PriorityList(%s, %s): %v", day, strategy, err)
			}
			if len(list) == 0 {
				t.Fatalf("PriorityList(%s, %s) is empty", day, strategy)
			}

			mixSum := 0.0
			seen := make(map[string]bool)
			for _, e := range list {
				if _, ok := defs[e.SKU]; !ok {
					t.Errorf("%s/%s: SKU %s not in item catalog", day, strategy, e.SKU)
				}
				if seen[e.SKU] {
					t.Errorf("%s/%s: SKU %s appears twice", day, strategy, e.SKU)
				}
				seen[e.SKU] = true
				if !e.Composition.Valid() {
					t.Errorf("%s/%s: %s composition invalid", day, strategy, e.SKU)
				}
				if e.SalesMix < 0 || e.SalesMix > 1 {
					t.Errorf("%s/%s: %s sales mix %f out of range", day, strategy, e.SKU, e.SalesMix)
				}
				mixSum += e.SalesMix
			}
			if mixSum > 1.0001 {
				t.Errorf("%s/%s: sales mixes sum to %f", day, strategy, mixSum)
			}
		}
	}
}

func TestPriorityList_WeekendMarkup(t *testing.T) {
	weekday, err := PriorityList(shop.Tuesday, shop.StrategyOpening)
	if err != nil {
		t.Fatal(err)
	}
	weekend, err := PriorityList(shop.Saturday, shop.StrategyOpening)
	if err != nil {
		t.Fatal(err)
	}

	prices := make(map[string]int)
	for _, e := range weekday {
		prices[e.SKU] = e.Price
	}
	for _, e := range weekend {
		if e.Price <= prices[e.SKU] {
			t.Errorf("%s: weekend price %d not above weekday %d", e.SKU, e.Price, prices[e.SKU])
		}
	}
}

func TestPriorityList_UnknownKeys(t *testing.T) {
	if _, err := PriorityList(shop.Day(99), shop.StrategyOpening); !errors.Is(err, shop.ErrUnknownDay) {
		t.Errorf("unknown day: err = %v, want ErrUnknownDay", err)
	}
	if _, err := PriorityList(shop.Monday, shop.Strategy(99)); !errors.Is(err, shop.ErrUnknownStrategy) {
		t.Errorf("unknown strategy: err = %v, want ErrUnknownStrategy", err)
	}
	if _, err := CapacityRules(shop.Strategy(99)); !errors.Is(err, shop.ErrUnknownStrategy) {
		t.Errorf("unknown strategy rules: err = %v, want ErrUnknownStrategy", err)
	}
}

// Every rule's currency floor covers what the rule buys, so an upgrade
// matched against a fresh snapshot is always affordable.
func TestCapacityRules_ThresholdsCoverCosts(t *testing.T) {
	strategies := []shop.Strategy{
		shop.StrategyOpening, shop.StrategyStocking, shop.StrategyExpanding,
		shop.StrategyEstablished, shop.StrategyPeak,
	}
	for _, strategy := range strategies {
		rules, err := CapacityRules(strategy)
		if err != nil {
			t.Fatal(err)
		}
		for i, rule := range rules {
			cost := rule.RawUnitsToBuy*RackUnitPrice + rule.GoodsUnitsToBuy*ShelfUnitPrice
			if rule.MinCurrency < cost {
				t.Errorf("%s rule %d: floor %d below cost %d", strategy, i, rule.MinCurrency, cost)
			}
			if rule.RawUnitsToBuy == 0 && rule.GoodsUnitsToBuy == 0 {
				t.Errorf("%s rule %d buys nothing", strategy, i)
			}
		}
	}
}

// Larger barrels must be cheaper per ml or the purchase planner's
// largest-first greedy stops making sense.
func TestBarrelTiers_LargerIsCheaperPerMl(t *testing.T) {
	tiers := BarrelTiers()
	prev := math.Inf(1)
	for _, tier := range tiers {
		perMl := float64(tier.PricePerUnit) / float64(tier.RawMlPerUnit)
		if perMl >= prev {
			t.Errorf("%s: %f per ml not below smaller tier's %f", tier.Name, perMl, prev)
		}
		prev = perMl
	}
}

func TestOfferSKU(t *testing.T) {
	tiers := BarrelTiers()
	if got := OfferSKU(tiers[2], shop.ColorRed); got != "LARGE_RED" {
		t.Errorf("OfferSKU = %s, want LARGE_RED", got)
	}
}
