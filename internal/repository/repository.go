package repository

import (
	"context"

	"bulkmart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access operations.
type ProductRepository interface {
	// Upsert inserts the product or, when its ID already exists, refreshes the mutable fields.
	// The stored row is returned.
	Upsert(ctx context.Context, product *model.Product) (*model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// List retrieves products matching the filter, ordered by name.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
}

// OfferRepository defines the interface for wholesaler offer data access operations.
type OfferRepository interface {
	// Create inserts a new offer. A second offer for the same wholesaler and product
	// fails with model.ErrDuplicateOffer.
	Create(ctx context.Context, offer *model.WholesalerOffer) error

	// GetByID retrieves a single offer by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.WholesalerOffer, error)

	// GetByWholesalerAndProduct retrieves the wholesaler's offer for a product, if any.
	GetByWholesalerAndProduct(ctx context.Context, wholesalerID, productID string) (*model.WholesalerOffer, error)

	// ListByProduct retrieves every offer for a product, oldest first.
	ListByProduct(ctx context.Context, productID string) ([]model.WholesalerOffer, error)

	// SetAvailability toggles an offer's availability.
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error

	// ReplaceTiers replaces an offer's price tiers.
	ReplaceTiers(ctx context.Context, id uuid.UUID, tiers []model.PriceTier) error
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// Add inserts a new cart line.
	Add(ctx context.Context, line *model.CartLine) error

	// ListByRetailer retrieves the retailer's cart lines, oldest first.
	ListByRetailer(ctx context.Context, retailerID string) ([]model.CartLine, error)

	// LockByRetailer retrieves the retailer's cart lines within the transaction,
	// locking them until it ends.
	LockByRetailer(ctx context.Context, tx pgx.Tx, retailerID string) ([]model.CartLine, error)

	// UpdateQuantity changes a line's quantity, keeping its price snapshot.
	UpdateQuantity(ctx context.Context, id uuid.UUID, retailerID string, quantity int) (*model.CartLine, error)

	// Delete removes one of the retailer's cart lines.
	Delete(ctx context.Context, id uuid.UUID, retailerID string) error

	// DeleteLines removes the given lines of the retailer within the transaction
	// and reports how many rows were removed.
	DeleteLines(ctx context.Context, tx pgx.Tx, retailerID string, ids []uuid.UUID) (int64, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrders inserts the orders within the provided transaction.
	CreateOrders(ctx context.Context, tx pgx.Tx, orders []model.Order) error

	// UpdateStatus moves an order from one status to another within the provided transaction.
	// It returns nil when the order is no longer in the expected status.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to model.OrderStatus) (*model.Order, error)

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
}

// NotificationRepository defines the interface for notification data access operations.
type NotificationRepository interface {
	// Create inserts a notification within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, notification *model.Notification) error

	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error)

	// MarkRead marks one of the user's notifications as read.
	MarkRead(ctx context.Context, id uuid.UUID, userID string) error
}

// UserRepository defines the interface for account data access operations.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error

	// GetByPhone retrieves a user by phone number.
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
}
