package repository

import (
	"context"
	"errors"

	"bulkmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, phone, name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, user.ID, user.Phone, user.Name, user.Role, user.PasswordHash, user.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to create user")
		return storeError("create user", err)
	}

	return nil
}

// GetByPhone retrieves a user by phone number.
func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	query := `
		SELECT id, phone, name, role, password_hash, created_at
		FROM users
		WHERE phone = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, phone).Scan(&u.ID, &u.Phone, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user by phone")
		return nil, storeError("query user", err)
	}

	return &u, nil
}
