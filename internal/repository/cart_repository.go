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

const cartColumns = `id, retailer_id, wholesaler_id, product_id, product_name, wholesaler_name,
	price_per_unit, quantity, unit, status, created_at, total_price`

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

func scanCartLine(row pgx.Row, c *model.CartLine) error {
	return row.Scan(
		&c.ID,
		&c.RetailerID,
		&c.WholesalerID,
		&c.ProductID,
		&c.ProductName,
		&c.WholesalerName,
		&c.PricePerUnit,
		&c.Quantity,
		&c.Unit,
		&c.Status,
		&c.CreatedAt,
		&c.TotalPrice,
	)
}

func collectCartLines(rows pgx.Rows) ([]model.CartLine, error) {
	defer rows.Close()

	lines := []model.CartLine{}
	for rows.Next() {
		var c model.CartLine
		if err := scanCartLine(rows, &c); err != nil {
			return nil, err
		}
		lines = append(lines, c)
	}
	return lines, rows.Err()
}

// Add inserts a new cart line.
func (r *cartRepository) Add(ctx context.Context, line *model.CartLine) error {
	query := `
		INSERT INTO cart (` + cartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		line.ID,
		line.RetailerID,
		line.WholesalerID,
		line.ProductID,
		line.ProductName,
		line.WholesalerName,
		line.PricePerUnit,
		line.Quantity,
		line.Unit,
		line.Status,
		line.CreatedAt,
		line.TotalPrice,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_line_id", line.ID.String()).
			Str("retailer_id", line.RetailerID).
			Msg("failed to add cart line")
		return storeError("add cart line", err)
	}

	r.logger.Debug().Str("cart_line_id", line.ID.String()).Msg("cart line added")

	return nil
}

// ListByRetailer retrieves the retailer's cart lines, oldest first.
func (r *cartRepository) ListByRetailer(ctx context.Context, retailerID string) ([]model.CartLine, error) {
	query := `SELECT ` + cartColumns + ` FROM cart WHERE retailer_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, retailerID)
	if err != nil {
		r.logger.Error().Err(err).Str("retailer_id", retailerID).Msg("failed to query cart")
		return nil, storeError("query cart", err)
	}

	lines, err := collectCartLines(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("retailer_id", retailerID).Msg("failed to read cart rows")
		return nil, storeError("read cart", err)
	}

	return lines, nil
}

// LockByRetailer retrieves the retailer's cart lines with FOR UPDATE so a concurrent
// confirmation blocks until this transaction ends.
func (r *cartRepository) LockByRetailer(ctx context.Context, tx pgx.Tx, retailerID string) ([]model.CartLine, error) {
	query := `SELECT ` + cartColumns + ` FROM cart WHERE retailer_id = $1 ORDER BY created_at, id FOR UPDATE`

	rows, err := tx.Query(ctx, query, retailerID)
	if err != nil {
		r.logger.Error().Err(err).Str("retailer_id", retailerID).Msg("failed to lock cart")
		return nil, storeError("lock cart", err)
	}

	lines, err := collectCartLines(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("retailer_id", retailerID).Msg("failed to read locked cart rows")
		return nil, storeError("read locked cart", err)
	}

	return lines, nil
}

// UpdateQuantity changes a line's quantity. The total is recomputed from the stored snapshot.
func (r *cartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, retailerID string, quantity int) (*model.CartLine, error) {
	query := `
		UPDATE cart
		SET quantity = $3, total_price = price_per_unit * $3
		WHERE id = $1 AND retailer_id = $2
		RETURNING ` + cartColumns

	var c model.CartLine
	if err := scanCartLine(r.pool.QueryRow(ctx, query, id, retailerID, quantity), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCartLineNotFound
		}
		r.logger.Error().Err(err).Str("cart_line_id", id.String()).Msg("failed to update cart line")
		return nil, storeError("update cart line", err)
	}

	return &c, nil
}

// Delete removes one of the retailer's cart lines.
func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID, retailerID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart WHERE id = $1 AND retailer_id = $2`, id, retailerID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_line_id", id.String()).Msg("failed to delete cart line")
		return storeError("delete cart line", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartLineNotFound
	}
	return nil
}

// DeleteLines removes the given lines of the retailer within the transaction.
func (r *cartRepository) DeleteLines(ctx context.Context, tx pgx.Tx, retailerID string, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := tx.Exec(ctx, `DELETE FROM cart WHERE id = ANY($1) AND retailer_id = $2`, ids, retailerID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("retailer_id", retailerID).
			Int("count", len(ids)).
			Msg("failed to delete cart lines")
		return 0, storeError("delete cart lines", err)
	}

	r.logger.Debug().
		Str("retailer_id", retailerID).
		Int64("deleted", tag.RowsAffected()).
		Msg("cart lines deleted")

	return tag.RowsAffected(), nil
}
