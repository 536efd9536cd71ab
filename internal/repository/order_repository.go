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

const orderColumns = `id, product_id, product_name, wholesaler_id, wholesaler_name, retailer_id,
	qty, unit, price_per_unit, status, created_at, updated_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, storeError("begin transaction", err)
	}
	return tx, nil
}

// CreateOrders inserts the orders within the provided transaction as one batch.
func (r *orderRepository) CreateOrders(ctx context.Context, tx pgx.Tx, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(query,
			o.ID,
			o.ProductID,
			o.ProductName,
			o.WholesalerID,
			o.WholesalerName,
			o.RetailerID,
			o.Qty,
			o.Unit,
			o.PricePerUnit,
			o.Status,
			o.CreatedAt,
			o.UpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(orders); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", orders[i].ID.String()).
				Str("product_id", orders[i].ProductID).
				Msg("failed to create order")
			return storeError("create order", err)
		}
	}

	r.logger.Debug().
		Int("count", len(orders)).
		Msg("orders created successfully")

	return nil
}

// UpdateStatus moves an order from one status to another only if it is still in the
// expected status. A nil order with a nil error means the compare-and-swap lost.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to model.OrderStatus) (*model.Order, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + orderColumns

	rows, err := tx.Query(ctx, query, id, from, to)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, storeError("update order status", err)
	}

	order, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Order])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().
				Str("order_id", id.String()).
				Str("expected_status", string(from)).
				Msg("order status changed concurrently or order missing")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to read updated order")
		return nil, storeError("read updated order", err)
	}

	return &order, nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, storeError("query order", err)
	}

	order, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Order])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to scan order")
		return nil, storeError("scan order", err)
	}

	return &order, nil
}

// List retrieves orders matching the filter, newest first.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	limit, offset := pageBounds(filter.Limit, filter.Offset)

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR retailer_id = $1)
		  AND ($2 = '' OR wholesaler_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC, id
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, query,
		filter.RetailerID,
		filter.WholesalerID,
		string(filter.Status),
		limit,
		offset,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("retailer_id", filter.RetailerID).
			Str("wholesaler_id", filter.WholesalerID).
			Msg("failed to query orders")
		return nil, storeError("query orders", err)
	}

	orders, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Order])
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan order rows")
		return nil, storeError("scan orders", err)
	}

	return orders, nil
}
