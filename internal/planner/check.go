package planner

import (
	"fmt"

	"github.com/talgya/potion-shop/internal/shop"
)

// CheckPlans verifies a tick's plans against the snapshot they were
// computed from. A violation here is a planner bug, not a resource
// condition: callers must treat a non-nil error as fatal and never hand
// the offending plans to the transaction layer.
func (p *Planner) CheckPlans(
	snap shop.InventorySnapshot,
	priority []shop.PriorityEntry,
	bottling []shop.BottlingPlanEntry,
	orders []shop.PurchaseOrder,
) error {
	compositions := make(map[string]shop.Composition, len(priority))
	for _, e := range priority {
		compositions[e.SKU] = e.Composition
	}

	vacant := vacantShelfSlots(priority, snap)
	totalBottles := 0
	var mlDraw [shop.NumColors]int
	for _, entry := range bottling {
		if entry.Quantity < 0 {
			return fmt.Errorf("bottling plan: negative quantity %d for %s", entry.Quantity, entry.SKU)
		}
		totalBottles += entry.Quantity
		comp, ok := compositions[entry.SKU]
		if !ok {
			return fmt.Errorf("bottling plan: %s is not on the priority list", entry.SKU)
		}
		for _, c := range shop.Colors() {
			mlDraw[c] += entry.Quantity * comp[c]
		}
	}
	if totalBottles > vacant {
		return fmt.Errorf("bottling plan: %d bottles exceed %d vacant shelf slots", totalBottles, vacant)
	}
	for _, c := range shop.Colors() {
		if mlDraw[c] > snap.RawMl[c] {
			return fmt.Errorf("bottling plan: %d ml %s exceeds %d ml in the cellar",
				mlDraw[c], c, snap.RawMl[c])
		}
	}

	totalCost := 0
	totalMl := 0
	for _, order := range orders {
		if order.Quantity < 0 {
			return fmt.Errorf("purchase plan: negative quantity %d for %s", order.Quantity, order.OfferSKU)
		}
		totalCost += order.Cost()
		totalMl += order.TotalMl()
	}
	if totalCost > snap.Currency {
		return fmt.Errorf("purchase plan: cost %d exceeds %d coins on hand", totalCost, snap.Currency)
	}
	if totalMl > snap.RawVacancyMl() {
		return fmt.Errorf("purchase plan: %d ml exceeds %d ml of rack vacancy", totalMl, snap.RawVacancyMl())
	}
	return nil
}
