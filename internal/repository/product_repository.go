package repository

import (
	"context"
	"errors"
	"strings"

	"bulkmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, category, unit, description, search_name, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Category, &p.Unit, &p.Description, &p.SearchName, &p.CreatedAt, &p.UpdatedAt)
}

// Upsert inserts the product or refreshes the mutable fields of an existing one.
// created_at of an existing row is never changed.
func (r *productRepository) Upsert(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			unit = EXCLUDED.unit,
			description = EXCLUDED.description,
			search_name = EXCLUDED.search_name,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + productColumns

	var stored model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Category,
		product.Unit,
		product.Description,
		product.SearchName,
		product.CreatedAt,
		product.UpdatedAt,
	), &stored)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to upsert product")
		return nil, storeError("upsert product", err)
	}

	r.logger.Debug().Str("product_id", stored.ID).Msg("product upserted")

	return &stored, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, storeError("query product", err)
	}

	return &p, nil
}

// List retrieves products matching the filter. The query matches search_name by substring.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	limit, offset := pageBounds(filter.Limit, filter.Offset)

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR search_name LIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		ORDER BY search_name
		LIMIT $3 OFFSET $4
	`

	search := escapeLike(model.SearchName(filter.Query))
	rows, err := r.pool.Query(ctx, query, search, filter.Category, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("query", filter.Query).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, storeError("query products", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, storeError("scan product", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, storeError("iterate products", err)
	}

	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
