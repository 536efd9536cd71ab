package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceTier is one bulk-pricing band of an offer. MaxQty is informational only.
type PriceTier struct {
	MinQty       int             `json:"minQty"`
	MaxQty       int             `json:"maxQty"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
}

// WholesalerOffer is a wholesaler's listing of a catalogue product.
type WholesalerOffer struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	WholesalerID   string          `json:"wholesalerId" db:"wholesaler_id"`
	WholesalerName string          `json:"wholesalerName" db:"wholesaler_name"`
	ProductID      string          `json:"productId" db:"product_id"`
	PriceTiers     []PriceTier     `json:"priceTiers" db:"price_tiers"`
	PricePerUnit   decimal.Decimal `json:"pricePerUnit" db:"price_per_unit"`
	Available      bool            `json:"available" db:"available"`
	Unit           string          `json:"unit" db:"unit"`
	DeliveryArea   []string        `json:"deliveryArea" db:"delivery_area"`
}

// DeliversTo reports whether the offer lists the given area code.
func (o *WholesalerOffer) DeliversTo(area string) bool {
	for _, a := range o.DeliveryArea {
		if a == area {
			return true
		}
	}
	return false
}

// OfferRequest represents the request payload for creating an offer.
type OfferRequest struct {
	ProductID    string          `json:"productId"`
	PriceTiers   []PriceTier     `json:"priceTiers"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Available    *bool           `json:"available,omitempty"`
	Unit         string          `json:"unit"`
	DeliveryArea []string        `json:"deliveryArea"`
}

// AvailabilityRequest toggles an offer's availability.
type AvailabilityRequest struct {
	Available bool `json:"available"`
}

// PriceTiersRequest replaces an offer's price tiers.
type PriceTiersRequest struct {
	PriceTiers []PriceTier `json:"priceTiers"`
}

// PriceScale is the number of decimal places stored for a unit price.
const PriceScale = 2

// ValidPriceScale reports whether price fits the stored scale without rounding.
func ValidPriceScale(price decimal.Decimal) bool {
	return price.Equal(price.Round(PriceScale))
}

// ValidatePriceTiers checks every tier for minQty >= 1, maxQty >= minQty and a positive price
// with at most PriceScale decimal places.
func ValidatePriceTiers(tiers []PriceTier) error {
	for _, t := range tiers {
		if t.MinQty < 1 || t.MaxQty < t.MinQty || !t.PricePerUnit.IsPositive() || !ValidPriceScale(t.PricePerUnit) {
			return ErrInvalidPriceTiers
		}
	}
	return nil
}

// OfferQuote is an offer with the unit price resolved for a requested quantity.
type OfferQuote struct {
	Offer     WholesalerOffer `json:"offer"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
	Priced    bool            `json:"priced"`
}
