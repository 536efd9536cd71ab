package handler

import (
	"net/http"

	"bulkmart/internal/model"
	"bulkmart/internal/service"

	"github.com/rs/zerolog"
)

// OfferHandler handles wholesaler offer HTTP requests.
type OfferHandler struct {
	service service.OfferService
	logger  zerolog.Logger
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(service service.OfferService, logger zerolog.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		logger:  logger.With().Str("handler", "offer").Logger(),
	}
}

// Create handles POST /api/offers.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}

	var req model.OfferRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	offer, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, offer)
}

// GetByID handles GET /api/offers/{id}.
func (h *OfferHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", model.ErrOfferNotFound, h.logger)
	if !ok {
		return
	}

	offer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, offer)
}

// SetAvailability handles PATCH /api/offers/{id}/availability.
func (h *OfferHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", model.ErrOfferNotFound, h.logger)
	if !ok {
		return
	}

	var req model.AvailabilityRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	offer, err := h.service.SetAvailability(r.Context(), actor, id, req.Available)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, offer)
}

// ReplaceTiers handles PUT /api/offers/{id}/tiers.
func (h *OfferHandler) ReplaceTiers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", model.ErrOfferNotFound, h.logger)
	if !ok {
		return
	}

	var req model.PriceTiersRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	offer, err := h.service.ReplaceTiers(r.Context(), actor, id, req.PriceTiers)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, offer)
}
