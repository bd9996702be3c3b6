package planner

import (
	"math"
	"sort"

	"github.com/talgya/potion-shop/internal/shop"
)

// bottlingItem is one priority entry's working state while the plan is built.
type bottlingItem struct {
	rank  int
	entry shop.PriorityEntry
	qty   int // always a multiple of the batch unit
}

// vacantShelfSlots returns the shelf slots open for this tick's production:
// total shelf capacity minus bottles already on the shelf for SKUs outside
// the priority list. Non-priority leftovers keep their room; priority stock
// is accounted per item against its own target instead.
func vacantShelfSlots(priority []shop.PriorityEntry, snap shop.InventorySnapshot) int {
	inList := make(map[string]bool, len(priority))
	for _, e := range priority {
		inList[e.SKU] = true
	}

	vacant := snap.GoodsCapacityUnits * shop.BottlesPerShelfUnit
	for sku, qty := range snap.FinishedGoods {
		if !inList[sku] {
			vacant -= qty
		}
	}
	if vacant < 0 {
		vacant = 0
	}
	return vacant
}

// PlanBottling computes this tick's production plan for the active priority
// list. Each entry's target is its sales-mix share of the vacant shelf
// slots, net of stock already held, rounded down to the batch unit and
// capped at perItemCeiling. Two correction passes then shrink the plan to
// what the cellar and the shelves can actually take; skipMlAdjustment
// omits both passes for forward-looking "what could we make" queries.
//
// Returned entries keep priority order and carry only positive quantities.
func (p *Planner) PlanBottling(
	priority []shop.PriorityEntry,
	snap shop.InventorySnapshot,
	batchUnit, perItemCeiling int,
	skipMlAdjustment bool,
) []shop.BottlingPlanEntry {
	if batchUnit < 1 {
		batchUnit = 1
	}

	vacant := vacantShelfSlots(priority, snap)

	items := make([]*bottlingItem, 0, len(priority))
	for rank, entry := range priority {
		if _, ok := p.items[entry.SKU]; !ok {
			p.log.Warn("priority SKU missing from item catalog, skipping",
				"sku", entry.SKU, "rank", rank)
			continue
		}

		desired := int(math.Floor(entry.SalesMix * float64(vacant)))
		needed := desired - snap.FinishedGoods[entry.SKU]
		if needed < 0 {
			needed = 0
		}

		qty := floorBatch(needed, batchUnit)
		if qty > perItemCeiling {
			qty = floorBatch(perItemCeiling, batchUnit)
		}

		items = append(items, &bottlingItem{rank: rank, entry: entry, qty: qty})
	}

	if !skipMlAdjustment {
		p.adjustForRawShortfall(items, snap, batchUnit)
		trimToVacancy(items, vacant, batchUnit)
	}

	plan := make([]shop.BottlingPlanEntry, 0, len(items))
	for _, it := range items {
		if it.qty > 0 {
			plan = append(plan, shop.BottlingPlanEntry{SKU: it.entry.SKU, Quantity: it.qty})
		}
	}
	return plan
}

// adjustForRawShortfall shrinks plan quantities until every color's total
// ml draw fits the cellar stock. Colors are handled in their fixed order;
// for each short color the least-important consumers give up units first,
// so cutting one item for one color also relieves its other colors.
func (p *Planner) adjustForRawShortfall(items []*bottlingItem, snap shop.InventorySnapshot, batchUnit int) {
	var required [shop.NumColors]int
	for _, it := range items {
		for _, c := range shop.Colors() {
			required[c] += it.qty * it.entry.Composition[c]
		}
	}

	for _, c := range shop.Colors() {
		shortfall := required[c] - snap.RawMl[c]
		if shortfall <= 0 {
			continue
		}

		consumers := make([]*bottlingItem, 0, len(items))
		for _, it := range items {
			if it.qty > 0 && it.entry.Composition[c] > 0 {
				consumers = append(consumers, it)
			}
		}
		sortLowestPriorityFirst(consumers)

		for _, it := range consumers {
			if shortfall <= 0 {
				break
			}
			mlPerBottle := it.entry.Composition[c]
			cut := ceilDiv(shortfall, mlPerBottle)
			if cut > it.qty {
				cut = it.qty
			}
			newQty := floorBatch(it.qty-cut, batchUnit)
			removed := it.qty - newQty
			it.qty = newQty

			for _, d := range shop.Colors() {
				required[d] -= removed * it.entry.Composition[d]
			}
			shortfall -= removed * mlPerBottle
		}
	}
}

// trimToVacancy shrinks the plan until its total fits the vacant shelf
// slots, cutting the least-important items first in batch-unit steps.
func trimToVacancy(items []*bottlingItem, vacant, batchUnit int) {
	total := 0
	for _, it := range items {
		total += it.qty
	}
	if total <= vacant {
		return
	}

	order := make([]*bottlingItem, len(items))
	copy(order, items)
	sortLowestPriorityFirst(order)

	for _, it := range order {
		if total <= vacant {
			break
		}
		over := total - vacant
		cut := ceilDiv(over, batchUnit) * batchUnit
		if cut > it.qty {
			cut = it.qty
		}
		it.qty -= cut
		total -= cut
	}
}

// sortLowestPriorityFirst orders items so shortfall cuts land on the least
// important entries: highest rank index first, then largest sales mix.
func sortLowestPriorityFirst(items []*bottlingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].rank != items[j].rank {
			return items[i].rank > items[j].rank
		}
		return items[i].entry.SalesMix > items[j].entry.SalesMix
	})
}
