// Shop state and the daily plan-and-apply cycle.
package engine

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/talgya/potion-shop/internal/config"
	"github.com/talgya/potion-shop/internal/planner"
	"github.com/talgya/potion-shop/internal/shop"
)

// Default planning knobs.
const (
	DefaultBatchUnit      = 5  // bottling granularity
	DefaultPerItemCeiling = 60 // hard per-SKU production cap per tick
	DefaultCatalogSlots   = 6  // display slots in the sale catalog
	DefaultLookaheadDays  = 3  // production days projected for barrel buying
)

// Shop owns the mutable shop state and applies one planning cycle per day.
// All state access goes through the mutex: a tick's snapshot read, plan
// computation, and plan application form one critical section, so two
// cycles can never commit against the same inventory state.
type Shop struct {
	mu sync.Mutex

	Planner *planner.Planner
	Offers  *OfferBook
	demand  *demandCurve

	// Planning knobs, set once before the engine starts.
	BatchUnit      int
	PerItemCeiling int
	CatalogSlots   int
	LookaheadDays  int

	// Mutable shop state.
	Currency           int
	RawMl              [shop.NumColors]int
	FinishedGoods      map[string]int
	RawCapacityUnits   int
	GoodsCapacityUnits int

	Events     []Event
	LastTick   uint64
	LastResult *TickResult
	Stats      ShopStats
}

// Event is a notable occurrence in the shop's day.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "production", "purchase", "capacity", "sales"
}

// ShopStats tracks aggregate figures across the shop's lifetime.
type ShopStats struct {
	LifetimeRevenue int `json:"lifetime_revenue"`
	LifetimeSold    int `json:"lifetime_sold"`
	LifetimeBarrels int `json:"lifetime_barrels"`
	LifetimeBottled int `json:"lifetime_bottled"`
}

// TickResult is everything one planning cycle decided and did, handed to
// the persistence layer to commit and to the API for display.
type TickResult struct {
	Tick      uint64                   `json:"tick"`
	Day       string                   `json:"day"`
	Strategy  string                   `json:"strategy"`
	Bottling  []shop.BottlingPlanEntry `json:"bottling"`
	Purchases []shop.PurchaseOrder     `json:"purchases"`
	Upgrade   shop.CapacityPurchase    `json:"upgrade"`
	Catalog   []shop.CatalogEntry      `json:"catalog"`
	Revenue   int                      `json:"revenue"`
	Sold      int                      `json:"sold"`
	Events    []Event                  `json:"events"`
}

// NewShop creates a Shop around a planner with default knobs and a seeded
// offer/demand generator.
func NewShop(p *planner.Planner, seed int64) *Shop {
	return &Shop{
		Planner:        p,
		Offers:         NewOfferBook(seed),
		demand:         newDemandCurve(seed + 1),
		BatchUnit:      DefaultBatchUnit,
		PerItemCeiling: DefaultPerItemCeiling,
		CatalogSlots:   DefaultCatalogSlots,
		LookaheadDays:  DefaultLookaheadDays,
		FinishedGoods:  make(map[string]int),
	}
}

// Latest returns the most recent tick number and its result. The result
// is nil before the first tick completes.
func (s *Shop) Latest() (uint64, *TickResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastTick, s.LastResult
}

// Snapshot returns a point-in-time copy of the shop state for planning or
// display. The copy shares nothing with the live state.
func (s *Shop) Snapshot() shop.InventorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Shop) snapshotLocked() shop.InventorySnapshot {
	goods := make(map[string]int, len(s.FinishedGoods))
	for sku, qty := range s.FinishedGoods {
		goods[sku] = qty
	}
	return shop.InventorySnapshot{
		Currency:           s.Currency,
		RawMl:              s.RawMl,
		FinishedGoods:      goods,
		RawCapacityUnits:   s.RawCapacityUnits,
		GoodsCapacityUnits: s.GoodsCapacityUnits,
	}
}

// TickDay runs one full planning cycle: snapshot, plan, verify, apply,
// then resolve the day's sales. Errors are config lookup failures or
// invariant violations and stop the engine; running out of coins, fluid,
// or shelf space just makes smaller plans.
func (s *Shop) TickDay(tick uint64) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshotLocked()
	day := shop.DayOfTick(tick)
	strategy := s.Planner.ResolveStrategy(snap)

	priority, err := config.PriorityList(day, strategy)
	if err != nil {
		return nil, err
	}

	bottling := s.Planner.PlanBottling(priority, snap, s.BatchUnit, s.PerItemCeiling, false)

	futureNeeds, err := s.lookaheadNeeds(tick, strategy, snap)
	if err != nil {
		return nil, err
	}
	offers := s.Offers.DailyOffers(tick)
	purchases := s.Planner.PlanBarrelPurchases(futureNeeds, snap, offers)

	rules, err := config.CapacityRules(strategy)
	if err != nil {
		return nil, err
	}
	upgrade := s.Planner.PlanCapacityUpgrade(snap, rules)

	if err := s.Planner.CheckPlans(snap, priority, bottling, purchases); err != nil {
		return nil, err
	}

	result := &TickResult{
		Tick:      tick,
		Day:       day.String(),
		Strategy:  strategy.String(),
		Bottling:  bottling,
		Purchases: purchases,
		Upgrade:   upgrade,
	}

	s.applyBottling(priority, bottling, result)
	s.applyPurchases(purchases, result)
	s.applyUpgrade(upgrade, result)

	// Sales resolve against the post-production shelf.
	result.Catalog = s.Planner.BuildCatalog(priority, s.snapshotLocked(), s.CatalogSlots)
	s.resolveSales(tick, result)

	s.Events = append(s.Events, result.Events...)
	// Keep the in-memory event log bounded.
	if len(s.Events) > 1000 {
		s.Events = s.Events[len(s.Events)-1000:]
	}

	s.LastTick = tick
	s.LastResult = result

	slog.Info("daily report",
		"tick", tick,
		"time", ShopTime(tick),
		"strategy", strategy.String(),
		"bottled_lines", len(bottling),
		"barrel_orders", len(purchases),
		"sold", result.Sold,
		"revenue", result.Revenue,
		"coins", s.Currency,
		"shelf_stock", s.finishedTotalLocked(),
		"cellar_ml", s.rawTotalLocked(),
	)
	return result, nil
}

// lookaheadNeeds projects production over the next few days with the ml
// adjustment skipped — a "what could we make" query per day, aggregated
// per SKU so the barrel planner can buy against the total.
func (s *Shop) lookaheadNeeds(tick uint64, strategy shop.Strategy, snap shop.InventorySnapshot) ([]shop.BottlingPlanEntry, error) {
	totals := make(map[string]int)
	for i := 1; i <= s.LookaheadDays; i++ {
		day := shop.DayOfTick(tick + uint64(i))
		priority, err := config.PriorityList(day, strategy)
		if err != nil {
			return nil, err
		}
		for _, entry := range s.Planner.PlanBottling(priority, snap, s.BatchUnit, s.PerItemCeiling, true) {
			totals[entry.SKU] += entry.Quantity
		}
	}

	skus := make([]string, 0, len(totals))
	for sku := range totals {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	needs := make([]shop.BottlingPlanEntry, 0, len(skus))
	for _, sku := range skus {
		needs = append(needs, shop.BottlingPlanEntry{SKU: sku, Quantity: totals[sku]})
	}
	return needs, nil
}

func (s *Shop) applyBottling(priority []shop.PriorityEntry, plan []shop.BottlingPlanEntry, result *TickResult) {
	compositions := make(map[string]shop.Composition, len(priority))
	for _, e := range priority {
		compositions[e.SKU] = e.Composition
	}
	bottled := 0
	for _, entry := range plan {
		comp := compositions[entry.SKU]
		for _, c := range shop.Colors() {
			s.RawMl[c] -= entry.Quantity * comp[c]
		}
		s.FinishedGoods[entry.SKU] += entry.Quantity
		bottled += entry.Quantity
	}
	if bottled > 0 {
		s.Stats.LifetimeBottled += bottled
		result.Events = append(result.Events, Event{
			Tick:        result.Tick,
			Description: describeBottling(bottled, len(plan)),
			Category:    "production",
		})
	}
}

func (s *Shop) applyPurchases(orders []shop.PurchaseOrder, result *TickResult) {
	barrels := 0
	spent := 0
	for _, order := range orders {
		s.Currency -= order.Cost()
		s.RawMl[order.Color] += order.TotalMl()
		barrels += order.Quantity
		spent += order.Cost()
	}
	if barrels > 0 {
		s.Stats.LifetimeBarrels += barrels
		result.Events = append(result.Events, Event{
			Tick:        result.Tick,
			Description: describePurchase(barrels, spent),
			Category:    "purchase",
		})
	}
}

// applyUpgrade pays for the tick's capacity purchases. The rule tables
// price their minimum currency above the unit costs, but barrel purchases
// spend from the same pocket first — if the coins are gone the upgrade is
// deferred, which is a shop condition rather than an error.
func (s *Shop) applyUpgrade(upgrade shop.CapacityPurchase, result *TickResult) {
	cost := upgrade.RawUnits*config.RackUnitPrice + upgrade.GoodsUnits*config.ShelfUnitPrice
	if cost == 0 {
		return
	}
	if cost > s.Currency {
		slog.Info("capacity upgrade deferred, coins spent on barrels",
			"tick", result.Tick, "cost", cost, "coins", s.Currency)
		result.Upgrade = shop.CapacityPurchase{}
		return
	}
	s.Currency -= cost
	s.RawCapacityUnits += upgrade.RawUnits
	s.GoodsCapacityUnits += upgrade.GoodsUnits
	result.Events = append(result.Events, Event{
		Tick:        result.Tick,
		Description: describeUpgrade(upgrade, cost),
		Category:    "capacity",
	})
}

func (s *Shop) finishedTotalLocked() int {
	total := 0
	for _, qty := range s.FinishedGoods {
		total += qty
	}
	return total
}

func (s *Shop) rawTotalLocked() int {
	total := 0
	for _, ml := range s.RawMl {
		total += ml
	}
	return total
}
