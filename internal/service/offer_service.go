package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bulkmart/internal/area"
	"bulkmart/internal/model"
	"bulkmart/internal/pricing"
	"bulkmart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// offerService implements OfferService.
type offerService struct {
	offerRepo   repository.OfferRepository
	productRepo repository.ProductRepository
	areas       area.Registry
	logger      zerolog.Logger
}

// NewOfferService creates a new offer service. Delivery areas are checked against areas.
func NewOfferService(
	offerRepo repository.OfferRepository,
	productRepo repository.ProductRepository,
	areas area.Registry,
	logger zerolog.Logger,
) OfferService {
	if areas == nil {
		areas = area.AllowAll()
	}
	return &offerService{
		offerRepo:   offerRepo,
		productRepo: productRepo,
		areas:       areas,
		logger:      logger.With().Str("service", "offer").Logger(),
	}
}

// Create lists a product for the acting wholesaler. A wholesaler lists a product at most once.
func (s *offerService) Create(ctx context.Context, actor model.Actor, req *model.OfferRequest) (*model.WholesalerOffer, error) {
	if !actor.Is(model.RoleWholesaler) {
		return nil, model.ErrForbidden
	}
	if req == nil || req.ProductID == "" {
		return nil, model.ErrProductNotFound
	}

	if err := model.ValidatePriceTiers(req.PriceTiers); err != nil {
		s.logger.Warn().Str("product_id", req.ProductID).Msg("invalid price tiers")
		return nil, err
	}
	if req.PricePerUnit.IsNegative() || !model.ValidPriceScale(req.PricePerUnit) {
		return nil, model.ErrInvalidPriceTiers
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	areas := make([]string, 0, len(req.DeliveryArea))
	for _, a := range req.DeliveryArea {
		if a = area.Normalize(a); a != "" {
			areas = append(areas, a)
		}
	}
	if unknown := s.areas.Unknown(areas); len(unknown) > 0 {
		s.logger.Warn().
			Str("wholesaler_id", actor.UserID).
			Strs("areas", unknown).
			Msg("offer rejected for unknown delivery areas")
		return nil, model.ErrUnknownArea
	}

	existing, err := s.offerRepo.GetByWholesalerAndProduct(ctx, actor.UserID, product.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to check existing offer")
		return nil, fmt.Errorf("failed to check existing offer: %w", err)
	}
	if existing != nil {
		s.logger.Debug().
			Str("wholesaler_id", actor.UserID).
			Str("product_id", product.ID).
			Msg("duplicate offer")
		return nil, model.ErrDuplicateOffer
	}

	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = product.Unit
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	tiers := req.PriceTiers
	if tiers == nil {
		tiers = []model.PriceTier{}
	}

	offer := &model.WholesalerOffer{
		ID:             uuid.New(),
		WholesalerID:   actor.UserID,
		WholesalerName: actor.Name,
		ProductID:      product.ID,
		PriceTiers:     tiers,
		PricePerUnit:   req.PricePerUnit,
		Available:      available,
		Unit:           unit,
		DeliveryArea:   areas,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		if errors.Is(err, model.ErrDuplicateOffer) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create offer")
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.logger.Info().
		Str("offer_id", offer.ID.String()).
		Str("wholesaler_id", offer.WholesalerID).
		Str("product_id", offer.ProductID).
		Int("tiers", len(offer.PriceTiers)).
		Msg("offer created")

	return offer, nil
}

// GetByID retrieves a single offer.
func (s *offerService) GetByID(ctx context.Context, id uuid.UUID) (*model.WholesalerOffer, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("offer_id", id.String()).Msg("failed to get offer")
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if offer == nil {
		return nil, model.ErrOfferNotFound
	}
	return offer, nil
}

func (s *offerService) productOffers(ctx context.Context, productID string) ([]model.WholesalerOffer, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	offers, err := s.offerRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to list offers")
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

// ListForProduct quotes every offer of a product at qty.
func (s *offerService) ListForProduct(ctx context.Context, productID string, qty int) ([]model.OfferQuote, error) {
	if qty < 1 {
		return nil, model.ErrInvalidQuantity
	}

	offers, err := s.productOffers(ctx, productID)
	if err != nil {
		return nil, err
	}

	quotes := make([]model.OfferQuote, 0, len(offers))
	for _, offer := range offers {
		quotes = append(quotes, pricing.Quote(offer, qty))
	}
	return quotes, nil
}

// BestOffer returns the cheapest available, priced offer at qty.
func (s *offerService) BestOffer(ctx context.Context, productID string, qty int, deliveryArea string) (*model.OfferQuote, error) {
	if qty < 1 {
		return nil, model.ErrInvalidQuantity
	}

	offers, err := s.productOffers(ctx, productID)
	if err != nil {
		return nil, err
	}

	if deliveryArea = area.Normalize(deliveryArea); deliveryArea != "" {
		candidates := offers[:0:0]
		for _, offer := range offers {
			if offer.DeliversTo(deliveryArea) {
				candidates = append(candidates, offer)
			}
		}
		offers = candidates
	}

	best := pricing.ResolveBestOffer(offers, qty)
	if best == nil {
		s.logger.Debug().
			Str("product_id", productID).
			Int("qty", qty).
			Str("area", deliveryArea).
			Msg("no offer available")
		return nil, model.ErrOfferNotFound
	}

	quote := pricing.Quote(*best, qty)
	return &quote, nil
}

// ownedOffer loads an offer the actor may modify: its wholesaler or an admin.
func (s *offerService) ownedOffer(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.WholesalerOffer, error) {
	offer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Is(model.RoleAdmin) || (actor.Is(model.RoleWholesaler) && offer.WholesalerID == actor.UserID) {
		return offer, nil
	}
	return nil, model.ErrForbidden
}

// SetAvailability toggles an offer's availability.
func (s *offerService) SetAvailability(ctx context.Context, actor model.Actor, id uuid.UUID, available bool) (*model.WholesalerOffer, error) {
	offer, err := s.ownedOffer(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.offerRepo.SetAvailability(ctx, id, available); err != nil {
		s.logger.Error().Err(err).Str("offer_id", id.String()).Msg("failed to set availability")
		return nil, fmt.Errorf("failed to set availability: %w", err)
	}

	offer.Available = available

	s.logger.Info().
		Str("offer_id", id.String()).
		Bool("available", available).
		Msg("offer availability changed")

	return offer, nil
}

// ReplaceTiers replaces an offer's price tiers. Cart lines and orders keep their snapshots.
func (s *offerService) ReplaceTiers(ctx context.Context, actor model.Actor, id uuid.UUID, tiers []model.PriceTier) (*model.WholesalerOffer, error) {
	if err := model.ValidatePriceTiers(tiers); err != nil {
		return nil, err
	}

	offer, err := s.ownedOffer(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if tiers == nil {
		tiers = []model.PriceTier{}
	}
	if err := s.offerRepo.ReplaceTiers(ctx, id, tiers); err != nil {
		s.logger.Error().Err(err).Str("offer_id", id.String()).Msg("failed to replace tiers")
		return nil, fmt.Errorf("failed to replace tiers: %w", err)
	}

	offer.PriceTiers = tiers

	s.logger.Info().
		Str("offer_id", id.String()).
		Int("tiers", len(tiers)).
		Msg("offer tiers replaced")

	return offer, nil
}
