package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is a step of the order lifecycle.
type OrderStatus string

const (
	OrderStatusRequested OrderStatus = "requested"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// allowedTransitions lists, per status, the statuses it may move to.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusRequested: {OrderStatusConfirmed: true, OrderStatusCancelled: true},
	OrderStatusConfirmed: {OrderStatusShipped: true, OrderStatusCancelled: true},
	OrderStatusShipped:   {OrderStatusDelivered: true},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(allowedTransitions[s]) == 0
}

// CanTransition reports whether an order may move from one status to another.
// Moving to the current status is never allowed.
func CanTransition(from, to OrderStatus) bool {
	return allowedTransitions[from][to]
}

// Order represents a confirmed purchase request from a retailer to a wholesaler.
type Order struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	ProductID      string          `json:"productId" db:"product_id"`
	ProductName    string          `json:"productName" db:"product_name"`
	WholesalerID   string          `json:"wholesalerId" db:"wholesaler_id"`
	WholesalerName string          `json:"wholesalerName" db:"wholesaler_name"`
	RetailerID     string          `json:"retailerId" db:"retailer_id"`
	Qty            int             `json:"qty" db:"qty"`
	Unit           string          `json:"unit" db:"unit"`
	PricePerUnit   decimal.Decimal `json:"pricePerUnit" db:"price_per_unit"`
	Status         OrderStatus     `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// NewOrderFromCartLine builds a requested order from a cart line, copying its price snapshot.
func NewOrderFromCartLine(line CartLine, now time.Time) Order {
	return Order{
		ID:             uuid.New(),
		ProductID:      line.ProductID,
		ProductName:    line.ProductName,
		WholesalerID:   line.WholesalerID,
		WholesalerName: line.WholesalerName,
		RetailerID:     line.RetailerID,
		Qty:            line.Quantity,
		Unit:           line.Unit,
		PricePerUnit:   line.PricePerUnit,
		Status:         OrderStatusRequested,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Total returns pricePerUnit * qty.
func (o *Order) Total() decimal.Decimal {
	return o.PricePerUnit.Mul(decimal.NewFromInt(int64(o.Qty)))
}

// StatusMessage is the retailer-facing text announcing the order's current status.
func (o *Order) StatusMessage() string {
	switch o.Status {
	case OrderStatusConfirmed:
		return fmt.Sprintf("%s confirmed your order for %d %s of %s", o.WholesalerName, o.Qty, o.Unit, o.ProductName)
	case OrderStatusShipped:
		return fmt.Sprintf("Your order for %s has been shipped by %s", o.ProductName, o.WholesalerName)
	case OrderStatusDelivered:
		return fmt.Sprintf("Your order for %s has been delivered", o.ProductName)
	case OrderStatusCancelled:
		return fmt.Sprintf("Your order for %s was cancelled", o.ProductName)
	default:
		return fmt.Sprintf("Your order for %s is now %s", o.ProductName, o.Status)
	}
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	RetailerID   string
	WholesalerID string
	Status       OrderStatus
	Limit        int
	Offset       int
}

// TransitionRequest represents the request payload for changing an order's status.
type TransitionRequest struct {
	Status OrderStatus `json:"status"`
}
