package service

import (
	"context"
	"fmt"
	"time"

	"bulkmart/internal/events"
	"bulkmart/internal/model"
	"bulkmart/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

// orderService implements OrderService.
type orderService struct {
	orderRepo        repository.OrderRepository
	cartRepo         repository.CartRepository
	notificationRepo repository.NotificationRepository
	publisher        events.Publisher
	logger           zerolog.Logger
}

// NewOrderService creates a new order service. Committed changes are announced on publisher.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	notificationRepo repository.NotificationRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	if publisher == nil {
		publisher = events.Nop()
	}
	return &orderService{
		orderRepo:        orderRepo,
		cartRepo:         cartRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
		logger:           logger.With().Str("service", "order").Logger(),
	}
}

// ConfirmCart turns every cart line of the retailer into a requested order and empties the
// cart in one transaction. Either all lines become orders or nothing changes.
func (s *orderService) ConfirmCart(ctx context.Context, actor model.Actor) (_ []model.Order, err error) {
	if !actor.Is(model.RoleRetailer) {
		return nil, model.ErrForbidden
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to confirm cart: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			s.rollback(ctx, tx)
		}
	}()

	lines, err := s.cartRepo.LockByRetailer(ctx, tx, actor.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("retailer_id", actor.UserID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(lines) == 0 {
		s.logger.Debug().Str("retailer_id", actor.UserID).Msg("confirm on empty cart")
		err = model.ErrEmptyCart
		return nil, err
	}

	now := time.Now().UTC()
	orders := make([]model.Order, len(lines))
	lineIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		orders[i] = model.NewOrderFromCartLine(line, now)
		lineIDs[i] = line.ID
	}

	if err = s.orderRepo.CreateOrders(ctx, tx, orders); err != nil {
		s.logger.Error().
			Err(err).
			Str("retailer_id", actor.UserID).
			Int("order_count", len(orders)).
			Msg("failed to create orders")
		return nil, fmt.Errorf("failed to create orders: %w", err)
	}

	deleted, err := s.cartRepo.DeleteLines(ctx, tx, actor.UserID, lineIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("retailer_id", actor.UserID).Msg("failed to clear cart")
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if deleted != int64(len(lines)) {
		s.logger.Warn().
			Str("retailer_id", actor.UserID).
			Int("expected", len(lines)).
			Int64("deleted", deleted).
			Msg("cart changed during confirmation")
		err = model.ErrCartConflict
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("retailer_id", actor.UserID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to confirm cart: %w", fmt.Errorf("%w: commit: %w", model.ErrStoreUnavailable, err))
	}

	s.logger.Info().
		Str("retailer_id", actor.UserID).
		Int("order_count", len(orders)).
		Msg("cart confirmed")

	placed := make([]events.Event, len(orders))
	for i, order := range orders {
		placed[i] = events.NewOrderPlaced(order, now)
	}
	s.publish(ctx, placed...)

	return orders, nil
}

// Transition moves an order to target if the lifecycle allows it and records exactly one
// notification for the retailer in the same transaction. Concurrent transitions from the
// same status are serialised by a compare-and-swap on the current status; the loser gets
// ErrInvalidTransition.
func (s *orderService) Transition(ctx context.Context, actor model.Actor, id uuid.UUID, target model.OrderStatus) (_ *model.Order, err error) {
	if !target.Valid() {
		return nil, model.ErrInvalidStatus
	}
	if !actor.Is(model.RoleWholesaler) && !actor.Is(model.RoleAdmin) {
		return nil, model.ErrForbidden
	}

	current, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if current == nil {
		return nil, model.ErrOrderNotFound
	}

	if actor.Is(model.RoleWholesaler) && current.WholesalerID != actor.UserID {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("actor", actor.UserID).
			Msg("wholesaler tried to transition another wholesaler's order")
		return nil, model.ErrForbidden
	}

	if !model.CanTransition(current.Status, target) {
		s.logger.Debug().
			Str("order_id", id.String()).
			Str("from", string(current.Status)).
			Str("to", string(target)).
			Msg("transition not allowed")
		return nil, model.ErrInvalidTransition
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}

	defer func() {
		if err != nil {
			s.rollback(ctx, tx)
		}
	}()

	updated, err := s.orderRepo.UpdateStatus(ctx, tx, id, current.Status, target)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}
	if updated == nil {
		err = s.lostTransition(ctx, id)
		return nil, err
	}

	now := time.Now().UTC()
	notification := model.NewOrderStatusNotification(*updated, now)
	if err = s.notificationRepo.Create(ctx, tx, &notification); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to record notification")
		return nil, fmt.Errorf("failed to record notification: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to transition order: %w", fmt.Errorf("%w: commit: %w", model.ErrStoreUnavailable, err))
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(current.Status)).
		Str("to", string(updated.Status)).
		Str("actor", actor.UserID).
		Msg("order transitioned")

	s.publish(ctx, events.NewOrderStatus(*updated, now))

	return updated, nil
}

// lostTransition explains a compare-and-swap that updated nothing.
func (s *orderService) lostTransition(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to re-read order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(order.Status)).
		Msg("order changed by a concurrent transition")

	return model.ErrInvalidTransition
}

// GetByID retrieves an order. Orders the actor may not see are reported as missing.
func (s *orderService) GetByID(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil || !canSee(actor, order) {
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// List retrieves the orders visible to the actor: a retailer's own orders, the orders
// addressed to a wholesaler, or any order for an admin.
func (s *orderService) List(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	switch actor.Role {
	case model.RoleRetailer:
		filter.RetailerID = actor.UserID
	case model.RoleWholesaler:
		filter.WholesalerID = actor.UserID
	case model.RoleAdmin:
	default:
		return nil, model.ErrForbidden
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("actor", actor.UserID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

func canSee(actor model.Actor, order *model.Order) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleRetailer:
		return order.RetailerID == actor.UserID
	case model.RoleWholesaler:
		return order.WholesalerID == actor.UserID
	}
	return false
}

func (s *orderService) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to rollback transaction")
	}
}

// publish hands committed events to the broker. Failures are logged and never undo the change.
func (s *orderService) publish(ctx context.Context, evs ...events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	for _, event := range evs {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn().
				Err(err).
				Str("event_id", event.ID.String()).
				Str("type", event.Type).
				Str("order_id", event.OrderID.String()).
				Msg("failed to publish order event")
		}
	}
}
