package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bulkmart/internal/model"
	"bulkmart/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Str("query", filter.Query).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("query", filter.Query).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Upsert creates the product keyed by its normalized name, or refreshes an existing one.
// Upserting the same name twice leaves a single product.
func (s *productService) Upsert(ctx context.Context, actor model.Actor, req *model.ProductRequest) (*model.Product, error) {
	if !actor.Is(model.RoleWholesaler) && !actor.Is(model.RoleAdmin) {
		return nil, model.ErrForbidden
	}

	if req == nil {
		return nil, model.ErrInvalidProduct
	}

	name := strings.TrimSpace(req.Name)
	unit := strings.TrimSpace(req.Unit)
	id := model.NormalizeProductID(name)
	if id == "" || unit == "" {
		s.logger.Warn().Str("name", req.Name).Str("unit", req.Unit).Msg("invalid product request")
		return nil, model.ErrInvalidProduct
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          id,
		Name:        name,
		Category:    strings.TrimSpace(req.Category),
		Unit:        unit,
		Description: strings.TrimSpace(req.Description),
		SearchName:  model.SearchName(name),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := s.productRepo.Upsert(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to upsert product")
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}

	s.logger.Info().
		Str("product_id", stored.ID).
		Str("actor", actor.UserID).
		Msg("product upserted")

	return stored, nil
}
