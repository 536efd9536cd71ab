package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationStatusUnread = "unread"
	NotificationStatusRead   = "read"

	NotificationTypeOrderStatus = "order_status"
)

// Notification is recorded for the retailer every time one of their orders changes status.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Message   string    `json:"message" db:"message"`
	OrderID   uuid.UUID `json:"orderId" db:"order_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NewOrderStatusNotification builds the unread notification for an order's new status.
func NewOrderStatusNotification(order Order, now time.Time) Notification {
	return Notification{
		ID:        uuid.New(),
		UserID:    order.RetailerID,
		Type:      NotificationTypeOrderStatus,
		Message:   order.StatusMessage(),
		OrderID:   order.ID,
		Status:    NotificationStatusUnread,
		CreatedAt: now,
	}
}
