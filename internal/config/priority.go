package config

import (
	"fmt"

	"github.com/talgya/potion-shop/internal/shop"
)

// mixSlot pairs a SKU with its target share of vacant shelf slots.
type mixSlot struct {
	sku string
	mix float64
}

// strategyMixes is the base priority list per strategy tier. Order is the
// demand ranking: earlier entries are restocked and trimmed last. Each
// list's mixes sum to 1.0.
var strategyMixes = map[shop.Strategy][]mixSlot{
	shop.StrategyOpening: {
		{"POTION_RED", 0.45},
		{"POTION_GREEN", 0.35},
		{"POTION_BLUE", 0.20},
	},
	shop.StrategyStocking: {
		{"POTION_RED", 0.35},
		{"POTION_GREEN", 0.25},
		{"POTION_BLUE", 0.20},
		{"POTION_YELLOW", 0.20},
	},
	shop.StrategyExpanding: {
		{"POTION_RED", 0.30},
		{"TONIC_AMBER", 0.20},
		{"POTION_GREEN", 0.20},
		{"POTION_BLUE", 0.15},
		{"POTION_YELLOW", 0.15},
	},
	shop.StrategyEstablished: {
		{"TONIC_AMBER", 0.25},
		{"ELIXIR_SUNSET", 0.20},
		{"POTION_RED", 0.20},
		{"TONIC_VERDANT", 0.15},
		{"POTION_GREEN", 0.10},
		{"POTION_BLUE", 0.10},
	},
	shop.StrategyPeak: {
		{"GRAND_CORDIAL", 0.20},
		{"ELIXIR_SUNSET", 0.20},
		{"ELIXIR_TWILIGHT", 0.15},
		{"TONIC_AMBER", 0.15},
		{"DRAUGHT_MEADOW", 0.15},
		{"POTION_RED", 0.15},
	},
}

// weekendMarkupPct is the price bump applied on Saturday and Sunday.
const weekendMarkupPct = 10

// PriorityList returns the ordered priority list for a day and strategy.
// The ranking rotates through the week so every potion gets top billing on
// some day, and weekend prices carry a markup. Unknown keys are a typed
// error, never a substituted default.
func PriorityList(day shop.Day, strategy shop.Strategy) ([]shop.PriorityEntry, error) {
	if int(day) >= shop.DaysPerWeek {
		return nil, fmt.Errorf("priority list for day %d: %w", day, shop.ErrUnknownDay)
	}
	mixes, ok := strategyMixes[strategy]
	if !ok {
		return nil, fmt.Errorf("priority list for strategy %d: %w", strategy, shop.ErrUnknownStrategy)
	}

	entries := make([]shop.PriorityEntry, 0, len(mixes))
	shift := int(day) % len(mixes)
	for i := range mixes {
		slot := mixes[(i+shift)%len(mixes)]
		def, ok := itemBySKU(slot.sku)
		if !ok {
			// Table inconsistency — every priority SKU must exist in the
			// item catalog. Caught by config tests.
			return nil, fmt.Errorf("priority SKU %q missing from item catalog", slot.sku)
		}
		price := def.Price
		if day == shop.Saturday || day == shop.Sunday {
			price += price * weekendMarkupPct / 100
		}
		entries = append(entries, shop.PriorityEntry{
			SKU:         def.SKU,
			Composition: def.Composition,
			Price:       price,
			SalesMix:    slot.mix,
		})
	}
	return entries, nil
}
