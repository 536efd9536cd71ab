package service

import (
	"context"

	"bulkmart/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Upsert creates or refreshes the product whose normalized name matches the request.
	Upsert(ctx context.Context, actor model.Actor, req *model.ProductRequest) (*model.Product, error)
}

// OfferService defines operations for wholesaler offers and price resolution.
type OfferService interface {
	// Create lists a product for the acting wholesaler.
	Create(ctx context.Context, actor model.Actor, req *model.OfferRequest) (*model.WholesalerOffer, error)

	// GetByID retrieves a single offer.
	GetByID(ctx context.Context, id uuid.UUID) (*model.WholesalerOffer, error)

	// ListForProduct quotes every offer of a product at the given quantity.
	ListForProduct(ctx context.Context, productID string, qty int) ([]model.OfferQuote, error)

	// BestOffer returns the cheapest available offer for the quantity, optionally
	// restricted to offers delivering to area.
	BestOffer(ctx context.Context, productID string, qty int, area string) (*model.OfferQuote, error)

	// SetAvailability toggles an offer's availability.
	SetAvailability(ctx context.Context, actor model.Actor, id uuid.UUID, available bool) (*model.WholesalerOffer, error)

	// ReplaceTiers replaces an offer's price tiers.
	ReplaceTiers(ctx context.Context, actor model.Actor, id uuid.UUID, tiers []model.PriceTier) (*model.WholesalerOffer, error)
}

// CartService defines operations on a retailer's cart.
type CartService interface {
	// List retrieves the retailer's cart lines.
	List(ctx context.Context, actor model.Actor) ([]model.CartLine, error)

	// Add adds an offer to the cart at its resolved price.
	Add(ctx context.Context, actor model.Actor, req *model.AddToCartRequest) (*model.CartLine, error)

	// UpdateQuantity changes a line's quantity, keeping its price snapshot.
	UpdateQuantity(ctx context.Context, actor model.Actor, id uuid.UUID, quantity int) (*model.CartLine, error)

	// Remove deletes a cart line.
	Remove(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

// OrderService defines the order lifecycle.
type OrderService interface {
	// ConfirmCart converts every cart line of the retailer into a requested order, atomically.
	ConfirmCart(ctx context.Context, actor model.Actor) ([]model.Order, error)

	// Transition moves an order to the target status and records a notification for its retailer.
	Transition(ctx context.Context, actor model.Actor, id uuid.UUID, target model.OrderStatus) (*model.Order, error)

	// GetByID retrieves an order visible to the actor.
	GetByID(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Order, error)

	// List retrieves the orders visible to the actor.
	List(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error)
}

// NotificationService defines operations on a user's notification inbox.
type NotificationService interface {
	// List retrieves the actor's notifications, newest first.
	List(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Notification, error)

	// MarkRead marks one of the actor's notifications as read.
	MarkRead(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

// AuthService defines password login.
type AuthService interface {
	// Login verifies the credentials and issues an access token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}
