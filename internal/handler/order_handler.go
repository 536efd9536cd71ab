package handler

import (
	"net/http"

	"bulkmart/internal/model"
	"bulkmart/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders?status=&limit=&offset=. Admins may also filter by
// retailerId and wholesalerId.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query()
	orders, err := h.service.List(r.Context(), actor, model.OrderFilter{
		RetailerID:   query.Get("retailerId"),
		WholesalerID: query.Get("wholesalerId"),
		Status:       model.OrderStatus(query.Get("status")),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", model.ErrOrderNotFound, h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Transition handles POST /api/orders/{id}/status.
func (h *OrderHandler) Transition(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", model.ErrOrderNotFound, h.logger)
	if !ok {
		return
	}

	var req model.TransitionRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.Transition(r.Context(), actor, id, req.Status)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
