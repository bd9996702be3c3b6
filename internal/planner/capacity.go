package planner

import "github.com/talgya/potion-shop/internal/shop"

// PlanCapacityUpgrade walks the strategy's upgrade rules in order and
// returns the first matching rule's purchase amounts. A rule matches when
// currency meets its minimum and every threshold it actually sets is
// satisfied. Evaluation stops at the first match; later rules are never
// consulted, and amounts never accumulate across rules.
func (p *Planner) PlanCapacityUpgrade(snap shop.InventorySnapshot, rules []shop.CapacityThresholdRule) shop.CapacityPurchase {
	goodsStock := snap.FinishedTotal()
	rawStock := snap.RawStockMl()
	goodsCapacity := snap.GoodsCapacityUnits * shop.BottlesPerShelfUnit
	rawCapacity := snap.RawCapacityMl()

	for _, rule := range rules {
		if snap.Currency < rule.MinCurrency {
			continue
		}
		if rule.GoodsStockAtLeast != nil && goodsStock < *rule.GoodsStockAtLeast {
			continue
		}
		if rule.RawMlAtLeast != nil && rawStock < *rule.RawMlAtLeast {
			continue
		}
		if rule.GoodsFillAtLeast != nil && float64(goodsStock) < *rule.GoodsFillAtLeast*float64(goodsCapacity) {
			continue
		}
		if rule.RawFillAtLeast != nil && float64(rawStock) < *rule.RawFillAtLeast*float64(rawCapacity) {
			continue
		}
		return shop.CapacityPurchase{RawUnits: rule.RawUnitsToBuy, GoodsUnits: rule.GoodsUnitsToBuy}
	}
	return shop.CapacityPurchase{}
}
