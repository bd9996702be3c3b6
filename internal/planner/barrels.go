package planner

import (
	"sort"

	"github.com/talgya/potion-shop/internal/shop"
)

// purchaseBufferFactor scales projected raw fluid needs to build headroom
// against estimation error in the production lookahead.
const purchaseBufferFactor = 2.5

// PlanBarrelPurchases allocates currency and rack space across the cycle's
// wholesale offers to cover projected production needs. Needs are buffered,
// netted against cellar stock, and filled color by color, biggest barrel
// first — larger tiers are cheaper per ml, so the greedy order approximates
// minimum spend. Rounding runs up for barrels needed and down for barrels
// affordable or fitting.
func (p *Planner) PlanBarrelPurchases(
	futureNeeds []shop.BottlingPlanEntry,
	snap shop.InventorySnapshot,
	offers []shop.WholesaleOffer,
) []shop.PurchaseOrder {
	var mlNeeded [shop.NumColors]int
	for _, need := range futureNeeds {
		def, ok := p.items[need.SKU]
		if !ok {
			p.log.Warn("future need SKU missing from item catalog, skipping",
				"sku", need.SKU, "quantity", need.Quantity)
			continue
		}
		for _, c := range shop.Colors() {
			mlNeeded[c] += need.Quantity * def.Composition[c]
		}
	}
	for _, c := range shop.Colors() {
		buffered := int(float64(mlNeeded[c]) * purchaseBufferFactor)
		mlNeeded[c] = buffered - snap.RawMl[c]
		if mlNeeded[c] < 0 {
			mlNeeded[c] = 0
		}
	}

	// Work on copies so the caller's offer list keeps its stock counts.
	byColor := make(map[shop.Color][]shop.WholesaleOffer)
	for _, offer := range offers {
		byColor[offer.Color] = append(byColor[offer.Color], offer)
	}

	currency := snap.Currency
	remainingCapacity := snap.RawVacancyMl()

	var orders []shop.PurchaseOrder
	for _, c := range shop.Colors() {
		colorOffers := byColor[c]
		sort.Slice(colorOffers, func(i, j int) bool {
			if colorOffers[i].RawMlPerUnit != colorOffers[j].RawMlPerUnit {
				return colorOffers[i].RawMlPerUnit > colorOffers[j].RawMlPerUnit
			}
			return colorOffers[i].SKU < colorOffers[j].SKU
		})

		for i := range colorOffers {
			if mlNeeded[c] <= 0 || currency <= 0 || remainingCapacity <= 0 {
				break
			}
			offer := &colorOffers[i]
			if offer.Available <= 0 || offer.PricePerUnit <= 0 || offer.RawMlPerUnit <= 0 {
				continue
			}

			maxAffordable := currency / offer.PricePerUnit
			maxByCapacity := remainingCapacity / offer.RawMlPerUnit
			maxByNeed := ceilDiv(mlNeeded[c], offer.RawMlPerUnit)
			qty := minInt(maxAffordable, maxByCapacity, maxByNeed, offer.Available)
			if qty <= 0 {
				continue
			}

			orders = append(orders, shop.PurchaseOrder{
				OfferSKU:     offer.SKU,
				Color:        offer.Color,
				Quantity:     qty,
				PricePerUnit: offer.PricePerUnit,
				RawMlPerUnit: offer.RawMlPerUnit,
			})
			currency -= qty * offer.PricePerUnit
			remainingCapacity -= qty * offer.RawMlPerUnit
			mlNeeded[c] -= qty * offer.RawMlPerUnit
			offer.Available -= qty
		}
	}
	return orders
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
