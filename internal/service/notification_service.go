package service

import (
	"context"
	"fmt"

	"bulkmart/internal/model"
	"bulkmart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notificationService implements NotificationService.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger.With().Str("service", "notification").Logger(),
	}
}

// List retrieves the actor's notifications, newest first.
func (s *notificationService) List(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Notification, error) {
	if actor.UserID == "" {
		return nil, model.ErrUnauthorised
	}

	notifications, err := s.notificationRepo.ListByUser(ctx, actor.UserID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", actor.UserID).Msg("failed to list notifications")
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one of the actor's notifications as read. Another user's notification
// is reported as missing.
func (s *notificationService) MarkRead(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if actor.UserID == "" {
		return model.ErrUnauthorised
	}

	if err := s.notificationRepo.MarkRead(ctx, id, actor.UserID); err != nil {
		if isDomainError(err) {
			return err
		}
		s.logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
