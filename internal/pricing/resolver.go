// Package pricing resolves unit prices from an offer's quantity tiers.
//
// Every function here is total: malformed or empty tier data falls back to the
// offer's flat price, and a zero result means "no price available".
package pricing

import (
	"cmp"
	"slices"

	"bulkmart/internal/model"

	"github.com/shopspring/decimal"
)

// ResolvePrice returns the unit price that applies to quantity.
//
// Tiers are ranked by minQty descending (ties: larger maxQty first) and the first
// tier whose minQty the quantity reaches wins. MaxQty never caps a tier. When no
// tier qualifies the flat PricePerUnit is returned.
func ResolvePrice(offer model.WholesalerOffer, quantity int) decimal.Decimal {
	tier, ok := MatchTier(offer.PriceTiers, quantity)
	if !ok {
		return offer.PricePerUnit
	}
	return tier.PricePerUnit
}

// MatchTier returns the tier that applies to quantity, if any.
func MatchTier(tiers []model.PriceTier, quantity int) (model.PriceTier, bool) {
	if len(tiers) == 0 {
		return model.PriceTier{}, false
	}

	ranked := slices.Clone(tiers)
	slices.SortStableFunc(ranked, func(a, b model.PriceTier) int {
		if c := cmp.Compare(b.MinQty, a.MinQty); c != 0 {
			return c
		}
		return cmp.Compare(b.MaxQty, a.MaxQty)
	})

	for _, t := range ranked {
		if quantity >= t.MinQty {
			return t, true
		}
	}
	return model.PriceTier{}, false
}

// ResolveBestOffer returns the available offer with the lowest unit price for
// quantity, or nil when there is none. Ties keep the first offer encountered.
// Offers that resolve to zero are unpriced and never selected; this is stricter than
// filtering on availability alone and keeps unpriced offers out of the cart.
func ResolveBestOffer(offers []model.WholesalerOffer, quantity int) *model.WholesalerOffer {
	var (
		best      *model.WholesalerOffer
		bestPrice decimal.Decimal
	)
	for i := range offers {
		if !offers[i].Available {
			continue
		}
		price := ResolvePrice(offers[i], quantity)
		if !price.IsPositive() {
			continue
		}
		if best == nil || price.LessThan(bestPrice) {
			best = &offers[i]
			bestPrice = price
		}
	}
	if best == nil {
		return nil
	}
	chosen := *best
	return &chosen
}

// Quote resolves the offer at quantity and reports the unit price and line total.
func Quote(offer model.WholesalerOffer, quantity int) model.OfferQuote {
	unit := ResolvePrice(offer, quantity)
	return model.OfferQuote{
		Offer:     offer,
		Quantity:  quantity,
		UnitPrice: unit,
		Total:     unit.Mul(decimal.NewFromInt(int64(quantity))),
		Priced:    unit.IsPositive(),
	}
}
