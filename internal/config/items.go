// Package config holds the shop's static tables: the producible potion
// catalog, the per-day priority lists, the capacity upgrade rules, and the
// wholesale barrel tiers. Lookups on closed key sets fail with typed
// errors rather than returning a default.
package config

import "github.com/talgya/potion-shop/internal/shop"

// itemTable is the full producible catalog. Compositions are percent of a
// 100 ml bottle per color (red, green, blue, yellow) and sum to 100.
var itemTable = []shop.ItemDefinition{
	{SKU: "POTION_RED", Name: "Red Potion", Composition: shop.Composition{100, 0, 0, 0}, Price: 30},
	{SKU: "POTION_GREEN", Name: "Green Potion", Composition: shop.Composition{0, 100, 0, 0}, Price: 30},
	{SKU: "POTION_BLUE", Name: "Blue Potion", Composition: shop.Composition{0, 0, 100, 0}, Price: 35},
	{SKU: "POTION_YELLOW", Name: "Yellow Potion", Composition: shop.Composition{0, 0, 0, 100}, Price: 35},
	{SKU: "TONIC_AMBER", Name: "Amber Tonic", Composition: shop.Composition{50, 0, 0, 50}, Price: 45},
	{SKU: "TONIC_VERDANT", Name: "Verdant Tonic", Composition: shop.Composition{0, 60, 40, 0}, Price: 45},
	{SKU: "ELIXIR_SUNSET", Name: "Sunset Elixir", Composition: shop.Composition{60, 0, 0, 40}, Price: 60},
	{SKU: "ELIXIR_TWILIGHT", Name: "Twilight Elixir", Composition: shop.Composition{30, 0, 70, 0}, Price: 60},
	{SKU: "DRAUGHT_MEADOW", Name: "Meadow Draught", Composition: shop.Composition{0, 70, 0, 30}, Price: 55},
	{SKU: "GRAND_CORDIAL", Name: "Grand Cordial", Composition: shop.Composition{25, 25, 25, 25}, Price: 90},
}

// ItemDefinitions returns the static potion catalog keyed by SKU.
// The returned map is freshly built per call; callers may index it freely.
func ItemDefinitions() map[string]shop.ItemDefinition {
	defs := make(map[string]shop.ItemDefinition, len(itemTable))
	for _, def := range itemTable {
		defs[def.SKU] = def
	}
	return defs
}

func itemBySKU(sku string) (shop.ItemDefinition, bool) {
	for _, def := range itemTable {
		if def.SKU == sku {
			return def, true
		}
	}
	return shop.ItemDefinition{}, false
}
