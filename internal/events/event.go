package events

import (
	"context"
	"encoding/json"
	"time"

	"bulkmart/internal/model"

	"github.com/google/uuid"
)

// Event types, also used as routing keys.
const (
	TypeOrderPlaced = "order.placed"
	TypeOrderStatus = "order.status"
)

// Event is the envelope published for every order change.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Type       string            `json:"type"`
	OrderID    uuid.UUID         `json:"orderId"`
	UserID     string            `json:"userId"`
	Status     model.OrderStatus `json:"status"`
	OccurredAt time.Time         `json:"occurredAt"`
	Order      model.Order       `json:"order"`
}

// NewOrderPlaced builds the event announcing a new order to its wholesaler.
func NewOrderPlaced(order model.Order, now time.Time) Event {
	return newEvent(TypeOrderPlaced, order.WholesalerID, order, now)
}

// NewOrderStatus builds the event announcing an order's new status to its retailer.
func NewOrderStatus(order model.Order, now time.Time) Event {
	return newEvent(TypeOrderStatus, order.RetailerID, order, now)
}

func newEvent(eventType, userID string, order model.Order, now time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     userID,
		Status:     order.Status,
		OccurredAt: now,
		Order:      order,
	}
}

// Publisher delivers events to subscribers outside the process. Delivery is
// at-least-once and best effort: callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

func encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}

type nopPublisher struct{}

// Nop returns a publisher that drops every event.
func Nop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

func (nopPublisher) Close() error { return nil }
