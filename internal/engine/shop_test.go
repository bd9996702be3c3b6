package engine

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/talgya/potion-shop/internal/config"
	"github.com/talgya/potion-shop/internal/planner"
	"github.com/talgya/potion-shop/internal/shop"
)

func newTestShop(t *testing.T) *Shop {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := planner.New(config.ItemDefinitions(), log)
	sh := NewShop(p, 7)
	sh.Currency = 800
	sh.RawCapacityUnits = 1
	sh.GoodsCapacityUnits = 1
	for _, c := range shop.Colors() {
		sh.RawMl[c] = 2000
	}
	return sh
}

// Run the shop for a simulated month and make sure no tick ever drives
// the state negative or past capacity.
func TestShop_TickDayKeepsStateSane(t *testing.T) {
	sh := newTestShop(t)

	for tick := uint64(1); tick <= 30; tick++ {
		result, err := sh.TickDay(tick)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		if result.Tick != tick {
			t.Fatalf("result tick = %d, want %d", result.Tick, tick)
		}

		if sh.Currency < 0 {
			t.Fatalf("tick %d: currency went negative: %d", tick, sh.Currency)
		}
		for _, c := range shop.Colors() {
			if sh.RawMl[c] < 0 {
				t.Fatalf("tick %d: %s stock went negative: %d", tick, c, sh.RawMl[c])
			}
		}
		snap := sh.Snapshot()
		if snap.RawStockMl() > snap.RawCapacityMl() {
			t.Fatalf("tick %d: cellar %d ml over capacity %d ml",
				tick, snap.RawStockMl(), snap.RawCapacityMl())
		}
		for sku, qty := range snap.FinishedGoods {
			if qty < 0 {
				t.Fatalf("tick %d: %s stock negative: %d", tick, sku, qty)
			}
		}
	}

	if sh.Stats.LifetimeBottled == 0 {
		t.Error("a month of ticks bottled nothing")
	}
	if sh.Stats.LifetimeRevenue == 0 {
		t.Error("a month of ticks earned nothing")
	}
}

// Snapshot must be a copy: mutating it cannot leak into the live shop.
func TestShop_SnapshotIsolation(t *testing.T) {
	sh := newTestShop(t)
	sh.FinishedGoods["POTION_RED"] = 10

	snap := sh.Snapshot()
	snap.FinishedGoods["POTION_RED"] = 999

	if sh.FinishedGoods["POTION_RED"] != 10 {
		t.Errorf("snapshot mutation leaked into shop state")
	}
}

// The same seed and tick always produce the same offers.
func TestOfferBook_Deterministic(t *testing.T) {
	a := NewOfferBook(7)
	b := NewOfferBook(7)

	for tick := uint64(1); tick <= 10; tick++ {
		if !reflect.DeepEqual(a.DailyOffers(tick), b.DailyOffers(tick)) {
			t.Fatalf("tick %d: offers differ between identical seeds", tick)
		}
	}

	offers := a.DailyOffers(3)
	if len(offers) != 3*shop.NumColors {
		t.Fatalf("got %d offers, want %d", len(offers), 3*shop.NumColors)
	}
	for _, o := range offers {
		if o.Available < 0 || o.PricePerUnit <= 0 || o.RawMlPerUnit <= 0 {
			t.Errorf("bad offer %+v", o)
		}
	}
}

func TestShopTime(t *testing.T) {
	tests := []struct {
		tick uint64
		want string
	}{
		{0, "Week 1, Monday"},
		{1, "Week 1, Tuesday"},
		{7, "Week 2, Monday"},
		{13, "Week 2, Sunday"},
	}
	for _, tt := range tests {
		if got := ShopTime(tt.tick); got != tt.want {
			t.Errorf("ShopTime(%d) = %q, want %q", tt.tick, got, tt.want)
		}
	}
}
