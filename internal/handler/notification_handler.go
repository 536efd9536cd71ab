package handler

import (
	"net/http"

	"bulkmart/internal/model"
	"bulkmart/internal/service"

	"github.com/rs/zerolog"
)

// NotificationHandler handles the notification inbox.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /api/notifications?limit=&offset=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", 0, h.logger)
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset", 0, h.logger)
	if !ok {
		return
	}

	notifications, err := h.service.List(r.Context(), actor, limit, offset)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", model.ErrNotificationNotFound, h.logger)
	if !ok {
		return
	}

	if err := h.service.MarkRead(r.Context(), actor, id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
