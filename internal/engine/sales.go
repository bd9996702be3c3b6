// Daily sales resolution — customers buy off the displayed catalog.
package engine

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/potion-shop/internal/shop"
)

// demandCurve turns a tick into a smooth daily demand fraction per catalog
// slot: what share of displayed stock walks out the door.
type demandCurve struct {
	noise opensimplex.Noise
}

func newDemandCurve(seed int64) *demandCurve {
	return &demandCurve{noise: opensimplex.NewNormalized(seed)}
}

// fraction returns the sold share for a display slot on a tick, in
// [0.15, 0.65]. Weekends sell harder.
func (d *demandCurve) fraction(tick uint64, slot int, day shop.Day) float64 {
	n := d.noise.Eval2(float64(tick)*0.2, float64(slot)*5.7)
	f := 0.15 + 0.5*n
	if day == shop.Saturday || day == shop.Sunday {
		f *= 1.2
	}
	if f > 0.65 {
		f = 0.65
	}
	return f
}

// resolveSales sells from the day's catalog at catalog prices, crediting
// revenue and drawing down shelf stock. Earlier catalog slots see more
// foot traffic only through their larger stock exposure; the demand
// fraction itself is per-slot noise.
func (s *Shop) resolveSales(tick uint64, result *TickResult) {
	day := shop.DayOfTick(tick)
	revenue := 0
	sold := 0

	for slot, entry := range result.Catalog {
		frac := s.demand.fraction(tick, slot, day)
		qty := int(frac * float64(entry.Stock))
		if entry.Stock > 0 && qty < 1 {
			qty = 1 // somebody always buys the display bottle
		}
		if qty > s.FinishedGoods[entry.SKU] {
			qty = s.FinishedGoods[entry.SKU]
		}
		if qty <= 0 {
			continue
		}
		s.FinishedGoods[entry.SKU] -= qty
		revenue += qty * entry.Price
		sold += qty
	}

	s.Currency += revenue
	s.Stats.LifetimeRevenue += revenue
	s.Stats.LifetimeSold += sold
	result.Revenue = revenue
	result.Sold = sold

	if sold > 0 {
		result.Events = append(result.Events, Event{
			Tick:        tick,
			Description: fmt.Sprintf("sold %d bottles for %d coins", sold, revenue),
			Category:    "sales",
		})
	}
}

func describeBottling(bottled, lines int) string {
	return fmt.Sprintf("bottled %d potions across %d lines", bottled, lines)
}

func describePurchase(barrels, spent int) string {
	return fmt.Sprintf("bought %d barrels for %d coins", barrels, spent)
}

func describeUpgrade(up shop.CapacityPurchase, cost int) string {
	return fmt.Sprintf("bought %d racks and %d shelves for %d coins", up.RawUnits, up.GoodsUnits, cost)
}
