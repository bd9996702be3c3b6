// Wholesale offer generation — what the barrel market has on a given day.
package engine

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/potion-shop/internal/config"
	"github.com/talgya/potion-shop/internal/shop"
)

// baseAvailability is how many barrels of each tier the wholesaler carries
// on an average day, before the noise swing.
var baseAvailability = map[string]int{
	"SMALL":  8,
	"MEDIUM": 5,
	"LARGE":  3,
}

// OfferBook generates the day's wholesale offers. Prices come from the
// static tier table; available stock drifts smoothly from day to day via
// noise, so supply feels like a market rather than a dice roll.
type OfferBook struct {
	noise opensimplex.Noise
}

// NewOfferBook creates a deterministic offer generator for a seed.
func NewOfferBook(seed int64) *OfferBook {
	return &OfferBook{noise: opensimplex.NewNormalized(seed)}
}

// DailyOffers returns every tier/color offer available on the given tick.
// The same tick always yields the same offers.
func (b *OfferBook) DailyOffers(tick uint64) []shop.WholesaleOffer {
	tiers := config.BarrelTiers()
	offers := make([]shop.WholesaleOffer, 0, len(tiers)*shop.NumColors)

	for ti, tier := range tiers {
		for _, c := range shop.Colors() {
			// Swing availability between 50% and 150% of the base.
			n := b.noise.Eval2(float64(tick)*0.15, float64(ti)*13.1+float64(c)*7.3)
			available := int(float64(baseAvailability[tier.Name]) * (0.5 + n))
			if available < 0 {
				available = 0
			}
			offers = append(offers, shop.WholesaleOffer{
				SKU:          config.OfferSKU(tier, c),
				Color:        c,
				RawMlPerUnit: tier.RawMlPerUnit,
				PricePerUnit: tier.PricePerUnit,
				Available:    available,
			})
		}
	}
	return offers
}
