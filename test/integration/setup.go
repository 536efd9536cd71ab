package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bulkmart/internal/auth"
	"bulkmart/internal/database"
	"bulkmart/internal/model"
	"bulkmart/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPassword is the password of every seeded user.
const TestPassword = "s3cret-pass"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the migrations and opens a pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(connStr, logger), "failed to migrate schema")

	pool, err := database.NewPoolFromURL(ctx, connStr, logger)
	require.NoError(t, err, "failed to create connection pool")

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedUsers creates a retailer, a wholesaler and an admin, all sharing TestPassword.
func SeedUsers(t *testing.T, pool *pgxpool.Pool) map[model.Role]model.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	require.NoError(t, err)

	users := map[model.Role]model.User{
		model.RoleRetailer:   {ID: "retailer-1", Phone: "9000000001", Name: "Corner Store", Role: model.RoleRetailer},
		model.RoleWholesaler: {ID: "wholesaler-1", Phone: "9000000002", Name: "Acme Wholesale", Role: model.RoleWholesaler},
		model.RoleAdmin:      {ID: "admin-1", Phone: "9000000003", Name: "Ops", Role: model.RoleAdmin},
	}

	repo := repository.NewUserRepository(pool, zerolog.Nop())
	for role, user := range users {
		user.PasswordHash = hash
		user.CreatedAt = time.Now().UTC()
		require.NoError(t, repo.Create(context.Background(), &user), "failed to seed %s", role)
		users[role] = user
	}

	return users
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"notifications", "orders", "cart", "wholesaler_products", "products", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
