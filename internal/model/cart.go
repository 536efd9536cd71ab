package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineStatusPending is the only status a cart line ever has.
const CartLineStatusPending = "pending"

// CartLine is a retailer's pending selection with a price locked in at add time.
type CartLine struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	RetailerID     string          `json:"retailerId" db:"retailer_id"`
	WholesalerID   string          `json:"wholesalerId" db:"wholesaler_id"`
	ProductID      string          `json:"productId" db:"product_id"`
	ProductName    string          `json:"productName" db:"product_name"`
	WholesalerName string          `json:"wholesalerName" db:"wholesaler_name"`
	PricePerUnit   decimal.Decimal `json:"pricePerUnit" db:"price_per_unit"`
	Quantity       int             `json:"quantity" db:"quantity"`
	Unit           string          `json:"unit" db:"unit"`
	Status         string          `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	TotalPrice     decimal.Decimal `json:"totalPrice" db:"total_price"`
}

// LineTotal returns pricePerUnit * quantity.
func (c *CartLine) LineTotal() decimal.Decimal {
	return c.PricePerUnit.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// AddToCartRequest represents the request payload for adding a cart line.
type AddToCartRequest struct {
	OfferID  uuid.UUID `json:"offerId"`
	Quantity int       `json:"quantity"`
}

// UpdateCartLineRequest represents a quantity edit on a cart line.
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}
