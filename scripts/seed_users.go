//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bulkmart/internal/auth"
	"bulkmart/internal/config"
	"bulkmart/internal/database"
	"bulkmart/internal/model"
	"bulkmart/internal/repository"
)

// Seeds one account per role using the server's database configuration.
// Usage: SEED_PASSWORD=... go run scripts/seed_users.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logger)

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		fmt.Fprintln(os.Stderr, "SEED_PASSWORD must be set")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to hash password: %v\n", err)
		os.Exit(1)
	}

	users := []model.User{
		{ID: "retailer-1", Phone: "9000000001", Name: "Corner Store", Role: model.RoleRetailer},
		{ID: "wholesaler-1", Phone: "9000000002", Name: "Acme Wholesale", Role: model.RoleWholesaler},
		{ID: "admin-1", Phone: "9000000003", Name: "Operations", Role: model.RoleAdmin},
	}

	repo := repository.NewUserRepository(pool, logger)
	for _, user := range users {
		user.PasswordHash = hash
		user.CreatedAt = time.Now().UTC()
		if err := repo.Create(ctx, &user); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to create %s: %v\n", user.Phone, err)
			os.Exit(1)
		}
		fmt.Printf("Created %s %s (%s)\n", user.Role, user.Name, user.Phone)
	}
}
