// Package shop defines the data model for the potion shop economy:
// raw fluid colors, potion definitions, inventory snapshots, and the
// plan records the planners produce.
package shop

// Color is one of the fixed raw fluid categories every potion is mixed from.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow

	NumColors = 4
)

var colorNames = [NumColors]string{"red", "green", "blue", "yellow"}

// String returns the lowercase color name.
func (c Color) String() string {
	if int(c) >= NumColors {
		return "unknown"
	}
	return colorNames[c]
}

// Colors returns all colors in their fixed iteration order.
// Planners iterate this instead of ranging over maps so plan output
// is deterministic.
func Colors() [NumColors]Color {
	return [NumColors]Color{ColorRed, ColorGreen, ColorBlue, ColorYellow}
}

// Composition is a potion's per-color mix in percent. Every bottle holds
// 100 ml, so composition entries double as ml-per-bottle for each color.
type Composition [NumColors]int

// Valid reports whether the composition sums to exactly 100 with no
// negative entries.
func (c Composition) Valid() bool {
	sum := 0
	for _, v := range c {
		if v < 0 {
			return false
		}
		sum += v
	}
	return sum == 100
}

// MlPerBottle returns how many ml of the given color one bottle consumes.
func (c Composition) MlPerBottle(col Color) int {
	return c[col]
}

// Day is a day of the shop week. The priority catalog rotates daily.
type Day uint8

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	DaysPerWeek = 7
)

var dayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// String returns the day name.
func (d Day) String() string {
	if int(d) >= DaysPerWeek {
		return "unknown"
	}
	return dayNames[d]
}

// DayOfTick maps a daily tick counter onto the shop week.
func DayOfTick(tick uint64) Day {
	return Day(tick % DaysPerWeek)
}

// Strategy is the shop's pricing/production posture, totally ordered from
// the smallest capacity tier to the largest.
type Strategy uint8

const (
	StrategyOpening    Strategy = iota // first rack and shelf, little currency
	StrategyStocking                   // same capacity, enough currency to stock up
	StrategyExpanding                  // second rack
	StrategyEstablished                // third rack, second/third shelf
	StrategyPeak                       // everything built out
)

var strategyNames = [...]string{"opening", "stocking", "expanding", "established", "peak"}

// String returns the lowercase strategy name.
func (s Strategy) String() string {
	if int(s) >= len(strategyNames) {
		return "unknown"
	}
	return strategyNames[s]
}

// Capacity conversion constants.
const (
	// BottlesPerShelfUnit is how many finished bottles one goods capacity
	// unit (a shelf) holds.
	BottlesPerShelfUnit = 50

	// MlPerRackUnit is how many ml of raw fluid one raw capacity unit
	// (a barrel rack) holds.
	MlPerRackUnit = 20000
)

// ItemDefinition is a static catalog entry for one producible potion.
type ItemDefinition struct {
	SKU         string
	Name        string
	Composition Composition
	Price       int // default sale price in coins
}

// PriorityEntry is one slot in a day's priority list. Rank is the entry's
// position in the list; lower index means higher priority.
type PriorityEntry struct {
	SKU         string
	Composition Composition
	Price       int     // sale price for this day/strategy
	SalesMix    float64 // target share of vacant shelf slots, in [0, 1]
}

// InventorySnapshot is the shop state at the instant planning begins.
// It is read once per planning cycle and never mutated by the planners.
type InventorySnapshot struct {
	Currency           int            // coins on hand
	RawMl              [NumColors]int // raw fluid stock per color, in ml
	FinishedGoods      map[string]int // bottled potions on the shelf, by SKU
	RawCapacityUnits   int            // barrel racks owned
	GoodsCapacityUnits int            // shelves owned
}

// RawStockMl returns the total raw fluid held across all colors.
func (s InventorySnapshot) RawStockMl() int {
	total := 0
	for _, ml := range s.RawMl {
		total += ml
	}
	return total
}

// RawCapacityMl returns the total raw fluid the racks can hold.
func (s InventorySnapshot) RawCapacityMl() int {
	return s.RawCapacityUnits * MlPerRackUnit
}

// RawVacancyMl returns how many ml of raw fluid the racks can still take,
// floored at zero.
func (s InventorySnapshot) RawVacancyMl() int {
	v := s.RawCapacityMl() - s.RawStockMl()
	if v < 0 {
		v = 0
	}
	return v
}

// FinishedTotal returns the total bottled stock across all SKUs.
func (s InventorySnapshot) FinishedTotal() int {
	total := 0
	for _, qty := range s.FinishedGoods {
		total += qty
	}
	return total
}

// BottlingPlanEntry is one line of a production plan: bottle Quantity units
// of SKU this tick. Quantities are positive multiples of the batch unit.
type BottlingPlanEntry struct {
	SKU      string
	Quantity int
}

// WholesaleOffer is a barrel lot available for purchase this cycle.
type WholesaleOffer struct {
	SKU          string // offer identifier, e.g. "LARGE_RED"
	Color        Color
	RawMlPerUnit int // ml of fluid per barrel
	PricePerUnit int // coins per barrel
	Available    int // barrels in stock at the wholesaler
}

// PurchaseOrder is one line of a barrel purchase plan.
type PurchaseOrder struct {
	OfferSKU     string
	Color        Color
	Quantity     int // barrels to buy, never above the offer's Available
	PricePerUnit int
	RawMlPerUnit int
}

// Cost returns the order's total price in coins.
func (o PurchaseOrder) Cost() int {
	return o.Quantity * o.PricePerUnit
}

// TotalMl returns the raw fluid the order adds to the cellar.
func (o PurchaseOrder) TotalMl() int {
	return o.Quantity * o.RawMlPerUnit
}

// CapacityThresholdRule is one row of a strategy's capacity upgrade table.
// MinCurrency always applies; the optional thresholds apply only when
// non-nil. A nil threshold never blocks a match.
type CapacityThresholdRule struct {
	MinCurrency       int
	GoodsStockAtLeast *int     // total bottled stock
	RawMlAtLeast      *int     // total raw fluid ml
	GoodsFillAtLeast  *float64 // bottled stock / shelf capacity
	RawFillAtLeast    *float64 // raw fluid / rack capacity
	RawUnitsToBuy     int
	GoodsUnitsToBuy   int
}

// CapacityPurchase is the capacity upgrade decision for one tick.
type CapacityPurchase struct {
	RawUnits   int // barrel racks to buy
	GoodsUnits int // shelves to buy
}

// CatalogEntry is one display slot in the shop's sale catalog.
type CatalogEntry struct {
	SKU         string
	Composition Composition
	Price       int
	Stock       int
}
