package planner

import (
	"sort"

	"github.com/talgya/potion-shop/internal/shop"
)

// BuildCatalog assembles the day's sale catalog: priority-list potions
// with stock on the shelf keep their ranking, and any display slots left
// over are filled with the deepest remaining stock at its default price.
func (p *Planner) BuildCatalog(priority []shop.PriorityEntry, snap shop.InventorySnapshot, maxSlots int) []shop.CatalogEntry {
	catalog := make([]shop.CatalogEntry, 0, maxSlots)
	included := make(map[string]bool, maxSlots)

	for _, entry := range priority {
		if len(catalog) >= maxSlots {
			return catalog
		}
		stock := snap.FinishedGoods[entry.SKU]
		if stock <= 0 {
			continue
		}
		catalog = append(catalog, shop.CatalogEntry{
			SKU:         entry.SKU,
			Composition: entry.Composition,
			Price:       entry.Price,
			Stock:       stock,
		})
		included[entry.SKU] = true
	}

	// Filler: remaining in-stock potions, deepest stock first.
	fillers := make([]string, 0, len(snap.FinishedGoods))
	for sku, stock := range snap.FinishedGoods {
		if stock > 0 && !included[sku] {
			fillers = append(fillers, sku)
		}
	}
	sort.Slice(fillers, func(i, j int) bool {
		si, sj := snap.FinishedGoods[fillers[i]], snap.FinishedGoods[fillers[j]]
		if si != sj {
			return si > sj
		}
		return fillers[i] < fillers[j]
	})

	for _, sku := range fillers {
		if len(catalog) >= maxSlots {
			break
		}
		def, ok := p.items[sku]
		if !ok {
			p.log.Warn("stocked SKU missing from item catalog, leaving off display",
				"sku", sku, "stock", snap.FinishedGoods[sku])
			continue
		}
		catalog = append(catalog, shop.CatalogEntry{
			SKU:         sku,
			Composition: def.Composition,
			Price:       def.Price,
			Stock:       snap.FinishedGoods[sku],
		})
	}
	return catalog
}
