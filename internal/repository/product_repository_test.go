package repository

import (
	"context"
	"testing"
	"time"

	"bulkmart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Upsert(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	created := time.Now().Add(-time.Hour).UTC()
	product := &model.Product{
		ID:         model.NormalizeProductID("Basmati Rice"),
		Name:       "Basmati Rice",
		Category:   "grains",
		Unit:       "kg",
		SearchName: model.SearchName("Basmati Rice"),
		CreatedAt:  created,
		UpdatedAt:  created,
	}

	stored, err := repo.Upsert(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, "basmati_rice", stored.ID)
	assert.Equal(t, "kg", stored.Unit)

	// Second upsert with the same ID refreshes fields but keeps created_at.
	updated := *product
	updated.Description = "Long grain"
	updated.Unit = "bag"
	updated.CreatedAt = time.Now().UTC()
	updated.UpdatedAt = updated.CreatedAt

	stored, err = repo.Upsert(ctx, &updated)
	require.NoError(t, err)
	assert.Equal(t, "Long grain", stored.Description)
	assert.Equal(t, "bag", stored.Unit)
	assert.WithinDuration(t, created, stored.CreatedAt, time.Millisecond)

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestProductRepository_GetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())

	now := time.Now()
	seedProducts(t, pool, []model.Product{
		{ID: "wheat_flour", Name: "Wheat Flour", Category: "grains", Unit: "kg", CreatedAt: now},
	})

	tests := []struct {
		name          string
		productID     string
		expectFound   bool
		expectedName  string
		expectedError bool
	}{
		{name: "Existing product", productID: "wheat_flour", expectFound: true, expectedName: "Wheat Flour"},
		{name: "Non-existent product", productID: "sugar", expectFound: false},
		{name: "Empty ID", productID: "", expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := repo.GetByID(context.Background(), tt.productID)

			require.NoError(t, err)
			if tt.expectFound {
				require.NotNil(t, product)
				assert.Equal(t, tt.expectedName, product.Name)
				assert.Equal(t, "wheat flour", product.SearchName)
			} else {
				assert.Nil(t, product)
			}
		})
	}
}

func TestProductRepository_List(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())

	now := time.Now()
	seedProducts(t, pool, []model.Product{
		{ID: "basmati_rice", Name: "Basmati Rice", Category: "grains", Unit: "kg", CreatedAt: now},
		{ID: "brown_rice", Name: "Brown Rice", Category: "grains", Unit: "kg", CreatedAt: now},
		{ID: "sunflower_oil", Name: "Sunflower Oil", Category: "oils", Unit: "litre", CreatedAt: now},
		{ID: "rice_bran_oil", Name: "Rice Bran Oil", Category: "oils", Unit: "litre", CreatedAt: now},
	})

	tests := []struct {
		name        string
		filter      model.ProductFilter
		expectedIDs []string
	}{
		{
			name:        "All products ordered by name",
			filter:      model.ProductFilter{},
			expectedIDs: []string{"basmati_rice", "brown_rice", "rice_bran_oil", "sunflower_oil"},
		},
		{
			name:        "Substring search is case insensitive",
			filter:      model.ProductFilter{Query: "RICE"},
			expectedIDs: []string{"basmati_rice", "brown_rice", "rice_bran_oil"},
		},
		{
			name:        "Category filter",
			filter:      model.ProductFilter{Category: "oils"},
			expectedIDs: []string{"rice_bran_oil", "sunflower_oil"},
		},
		{
			name:        "Search and category",
			filter:      model.ProductFilter{Query: "rice", Category: "oils"},
			expectedIDs: []string{"rice_bran_oil"},
		},
		{
			name:        "Pagination",
			filter:      model.ProductFilter{Limit: 2, Offset: 1},
			expectedIDs: []string{"brown_rice", "rice_bran_oil"},
		},
		{
			name:        "LIKE wildcards are literal",
			filter:      model.ProductFilter{Query: "%"},
			expectedIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestProductRepository_ErrorPaths(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())

	// Close the pool to simulate database errors
	pool.Close()

	t.Run("List with closed pool", func(t *testing.T) {
		products, err := repo.List(context.Background(), model.ProductFilter{})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
		assert.Nil(t, products)
	})

	t.Run("GetByID with closed pool", func(t *testing.T) {
		product, err := repo.GetByID(context.Background(), "wheat_flour")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
		assert.Nil(t, product)
	})

	t.Run("Upsert with closed pool", func(t *testing.T) {
		product, err := repo.Upsert(context.Background(), &model.Product{ID: "x", Name: "X", Unit: "kg"})

		require.Error(t, err)
		assert.Nil(t, product)
	})
}
