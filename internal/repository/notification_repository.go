package repository

import (
	"context"

	"bulkmart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// notificationRepository implements the NotificationRepository interface using PostgreSQL.
type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

// Create inserts a notification within the provided transaction.
func (r *notificationRepository) Create(ctx context.Context, tx pgx.Tx, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, message, order_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query, n.ID, n.UserID, n.Type, n.Message, n.OrderID, n.Status, n.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", n.OrderID.String()).
			Str("user_id", n.UserID).
			Msg("failed to create notification")
		return storeError("create notification", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error) {
	limit, offset = pageBounds(limit, offset)

	query := `
		SELECT id, user_id, type, message, order_id, status, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query notifications")
		return nil, storeError("query notifications", err)
	}

	notifications, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Notification])
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to scan notification rows")
		return nil, storeError("scan notifications", err)
	}

	return notifications, nil
}

// MarkRead marks one of the user's notifications as read. Marking twice is not an error.
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID, userID string) error {
	query := `UPDATE notifications SET status = $3 WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID, model.NotificationStatusRead)
	if err != nil {
		r.logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
		return storeError("mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotificationNotFound
	}

	return nil
}
