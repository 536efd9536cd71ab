package repository

import (
	"context"
	"errors"

	"bulkmart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const offerColumns = `id, wholesaler_id, wholesaler_name, product_id, price_tiers, price_per_unit, available, unit, delivery_area`

// offerRepository implements the OfferRepository interface using PostgreSQL.
type offerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOfferRepository creates a new PostgreSQL-backed offer repository.
func NewOfferRepository(pool *pgxpool.Pool, logger zerolog.Logger) OfferRepository {
	return &offerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "offer").Logger(),
	}
}

func scanOffer(row pgx.Row, o *model.WholesalerOffer) error {
	err := row.Scan(
		&o.ID,
		&o.WholesalerID,
		&o.WholesalerName,
		&o.ProductID,
		&o.PriceTiers,
		&o.PricePerUnit,
		&o.Available,
		&o.Unit,
		&o.DeliveryArea,
	)
	if err != nil {
		return err
	}
	if o.PriceTiers == nil {
		o.PriceTiers = []model.PriceTier{}
	}
	if o.DeliveryArea == nil {
		o.DeliveryArea = []string{}
	}
	return nil
}

// Create inserts a new offer. price_tiers is stored as JSONB.
func (r *offerRepository) Create(ctx context.Context, offer *model.WholesalerOffer) error {
	query := `
		INSERT INTO wholesaler_products (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	tiers := offer.PriceTiers
	if tiers == nil {
		tiers = []model.PriceTier{}
	}
	areas := offer.DeliveryArea
	if areas == nil {
		areas = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		offer.ID,
		offer.WholesalerID,
		offer.WholesalerName,
		offer.ProductID,
		tiers,
		offer.PricePerUnit,
		offer.Available,
		offer.Unit,
		areas,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().
				Str("wholesaler_id", offer.WholesalerID).
				Str("product_id", offer.ProductID).
				Msg("duplicate offer rejected by constraint")
			return model.ErrDuplicateOffer
		}
		r.logger.Error().Err(err).Str("offer_id", offer.ID.String()).Msg("failed to create offer")
		return storeError("create offer", err)
	}

	r.logger.Debug().Str("offer_id", offer.ID.String()).Msg("offer created successfully")

	return nil
}

// GetByID retrieves a single offer by its ID.
func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.WholesalerOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM wholesaler_products WHERE id = $1`

	var o model.WholesalerOffer
	if err := scanOffer(r.pool.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("offer_id", id.String()).Msg("offer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("offer_id", id.String()).Msg("failed to query offer")
		return nil, storeError("query offer", err)
	}

	return &o, nil
}

// GetByWholesalerAndProduct retrieves the wholesaler's offer for a product, if any.
func (r *offerRepository) GetByWholesalerAndProduct(ctx context.Context, wholesalerID, productID string) (*model.WholesalerOffer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM wholesaler_products
		WHERE wholesaler_id = $1 AND product_id = $2
	`

	var o model.WholesalerOffer
	if err := scanOffer(r.pool.QueryRow(ctx, query, wholesalerID, productID), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("wholesaler_id", wholesalerID).
			Str("product_id", productID).
			Msg("failed to query offer by listing")
		return nil, storeError("query offer by listing", err)
	}

	return &o, nil
}

// ListByProduct retrieves every offer for a product, oldest first.
func (r *offerRepository) ListByProduct(ctx context.Context, productID string) ([]model.WholesalerOffer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM wholesaler_products
		WHERE product_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query offers")
		return nil, storeError("query offers", err)
	}
	defer rows.Close()

	offers := []model.WholesalerOffer{}
	for rows.Next() {
		var o model.WholesalerOffer
		if err := scanOffer(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan offer row")
			return nil, storeError("scan offer", err)
		}
		offers = append(offers, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating offer rows")
		return nil, storeError("iterate offers", err)
	}

	return offers, nil
}

// SetAvailability toggles an offer's availability.
func (r *offerRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `UPDATE wholesaler_products SET available = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, available)
	if err != nil {
		r.logger.Error().Err(err).Str("offer_id", id.String()).Msg("failed to update offer availability")
		return storeError("update offer availability", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}

	r.logger.Debug().
		Str("offer_id", id.String()).
		Bool("available", available).
		Msg("offer availability updated")

	return nil
}

// ReplaceTiers replaces an offer's price tiers.
func (r *offerRepository) ReplaceTiers(ctx context.Context, id uuid.UUID, tiers []model.PriceTier) error {
	query := `UPDATE wholesaler_products SET price_tiers = $2, updated_at = NOW() WHERE id = $1`

	if tiers == nil {
		tiers = []model.PriceTier{}
	}

	tag, err := r.pool.Exec(ctx, query, id, tiers)
	if err != nil {
		r.logger.Error().Err(err).Str("offer_id", id.String()).Msg("failed to replace offer tiers")
		return storeError("replace offer tiers", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}

	r.logger.Debug().
		Str("offer_id", id.String()).
		Int("tiers", len(tiers)).
		Msg("offer tiers replaced")

	return nil
}
