package handler

import (
	"context"
	"net/http"

	"bulkmart/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Upsert(ctx context.Context, actor model.Actor, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockOfferService is a mock implementation of OfferService.
type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) Create(ctx context.Context, actor model.Actor, req *model.OfferRequest) (*model.WholesalerOffer, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WholesalerOffer), args.Error(1)
}

func (m *MockOfferService) GetByID(ctx context.Context, id uuid.UUID) (*model.WholesalerOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WholesalerOffer), args.Error(1)
}

func (m *MockOfferService) ListForProduct(ctx context.Context, productID string, qty int) ([]model.OfferQuote, error) {
	args := m.Called(ctx, productID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OfferQuote), args.Error(1)
}

func (m *MockOfferService) BestOffer(ctx context.Context, productID string, qty int, area string) (*model.OfferQuote, error) {
	args := m.Called(ctx, productID, qty, area)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OfferQuote), args.Error(1)
}

func (m *MockOfferService) SetAvailability(ctx context.Context, actor model.Actor, id uuid.UUID, available bool) (*model.WholesalerOffer, error) {
	args := m.Called(ctx, actor, id, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WholesalerOffer), args.Error(1)
}

func (m *MockOfferService) ReplaceTiers(ctx context.Context, actor model.Actor, id uuid.UUID, tiers []model.PriceTier) (*model.WholesalerOffer, error) {
	args := m.Called(ctx, actor, id, tiers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WholesalerOffer), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) List(ctx context.Context, actor model.Actor) ([]model.CartLine, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLine), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, actor model.Actor, req *model.AddToCartRequest) (*model.CartLine, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartLine), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, actor model.Actor, id uuid.UUID, quantity int) (*model.CartLine, error) {
	args := m.Called(ctx, actor, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartLine), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) ConfirmCart(ctx context.Context, actor model.Actor) ([]model.Order, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) Transition(ctx context.Context, actor model.Actor, id uuid.UUID, target model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, actor, id, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockNotificationService is a mock implementation of NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Notification, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResponse), args.Error(1)
}

var (
	retailer   = model.Actor{UserID: "r-1", Name: "Corner Store", Role: model.RoleRetailer}
	wholesaler = model.Actor{UserID: "w-1", Name: "Acme Wholesale", Role: model.RoleWholesaler}
)

// withRoute attaches chi URL params and, when actor is non-nil, the authenticated actor.
func withRoute(r *http.Request, actor *model.Actor, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if actor != nil {
		ctx = model.WithActor(ctx, *actor)
	}
	return r.WithContext(ctx)
}
