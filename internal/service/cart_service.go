package service

import (
	"context"
	"fmt"
	"time"

	"bulkmart/internal/model"
	"bulkmart/internal/pricing"
	"bulkmart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	offerRepo   repository.OfferRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	offerRepo repository.OfferRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		offerRepo:   offerRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// List retrieves the retailer's cart lines.
func (s *cartService) List(ctx context.Context, actor model.Actor) ([]model.CartLine, error) {
	if !actor.Is(model.RoleRetailer) {
		return nil, model.ErrForbidden
	}

	lines, err := s.cartRepo.ListByRetailer(ctx, actor.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("retailer_id", actor.UserID).Msg("failed to list cart")
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return lines, nil
}

// Add resolves the offer's price at the requested quantity and stores it on a new line.
// Adding the same offer twice yields two lines.
func (s *cartService) Add(ctx context.Context, actor model.Actor, req *model.AddToCartRequest) (*model.CartLine, error) {
	if !actor.Is(model.RoleRetailer) {
		return nil, model.ErrForbidden
	}
	if req == nil || req.Quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	offer, err := s.offerRepo.GetByID(ctx, req.OfferID)
	if err != nil {
		s.logger.Error().Err(err).Str("offer_id", req.OfferID.String()).Msg("failed to get offer")
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if offer == nil {
		return nil, model.ErrOfferNotFound
	}
	if !offer.Available {
		return nil, model.ErrOfferUnavailable
	}

	price := pricing.ResolvePrice(*offer, req.Quantity)
	if !price.IsPositive() {
		s.logger.Warn().
			Str("offer_id", offer.ID.String()).
			Int("quantity", req.Quantity).
			Msg("offer has no price for quantity")
		return nil, model.ErrUnpricedOffer
	}

	product, err := s.productRepo.GetByID(ctx, offer.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", offer.ProductID).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	line := &model.CartLine{
		ID:             uuid.New(),
		RetailerID:     actor.UserID,
		WholesalerID:   offer.WholesalerID,
		ProductID:      offer.ProductID,
		ProductName:    product.Name,
		WholesalerName: offer.WholesalerName,
		PricePerUnit:   price,
		Quantity:       req.Quantity,
		Unit:           offer.Unit,
		Status:         model.CartLineStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	line.TotalPrice = line.LineTotal()

	if err := s.cartRepo.Add(ctx, line); err != nil {
		s.logger.Error().Err(err).Str("retailer_id", actor.UserID).Msg("failed to add cart line")
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Str("cart_line_id", line.ID.String()).
		Str("retailer_id", line.RetailerID).
		Str("offer_id", offer.ID.String()).
		Str("price_per_unit", line.PricePerUnit.String()).
		Int("quantity", line.Quantity).
		Msg("cart line added")

	return line, nil
}

// UpdateQuantity changes a line's quantity. The price snapshot is not re-resolved.
func (s *cartService) UpdateQuantity(ctx context.Context, actor model.Actor, id uuid.UUID, quantity int) (*model.CartLine, error) {
	if !actor.Is(model.RoleRetailer) {
		return nil, model.ErrForbidden
	}
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	line, err := s.cartRepo.UpdateQuantity(ctx, id, actor.UserID, quantity)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("cart_line_id", id.String()).Msg("failed to update cart line")
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}
	return line, nil
}

// Remove deletes a cart line.
func (s *cartService) Remove(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if !actor.Is(model.RoleRetailer) {
		return model.ErrForbidden
	}

	if err := s.cartRepo.Delete(ctx, id, actor.UserID); err != nil {
		if isDomainError(err) {
			return err
		}
		s.logger.Error().Err(err).Str("cart_line_id", id.String()).Msg("failed to remove cart line")
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	return nil
}
