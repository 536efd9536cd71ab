package handler

import (
	"net/http"

	"bulkmart/internal/model"
	"bulkmart/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles a retailer's cart HTTP requests.
type CartHandler struct {
	carts  service.CartService
	orders service.OrderService
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler. Confirmation is delegated to orders.
func NewCartHandler(carts service.CartService, orders service.OrderService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		orders: orders,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// List handles GET /api/cart.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}

	lines, err := h.carts.List(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AddToCartRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	line, err := h.carts.Add(r.Context(), actor, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, line)
}

// UpdateQuantity handles PATCH /api/cart/{id}.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", model.ErrCartLineNotFound, h.logger)
	if !ok {
		return
	}

	var req model.UpdateCartLineRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	line, err := h.carts.UpdateQuantity(r.Context(), actor, id, req.Quantity)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, line)
}

// Remove handles DELETE /api/cart/{id}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", model.ErrCartLineNotFound, h.logger)
	if !ok {
		return
	}

	if err := h.carts.Remove(r.Context(), actor, id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Confirm handles POST /api/cart/confirm.
func (h *CartHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.orders.ConfirmCart(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, orders)
}
