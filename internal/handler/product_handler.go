package handler

import (
	"net/http"

	"bulkmart/internal/model"
	"bulkmart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue HTTP requests.
type ProductHandler struct {
	products service.ProductService
	offers   service.OfferService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, offers service.OfferService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		offers:   offers,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products with optional q, category, limit and offset.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", 20, h.logger)
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset", 0, h.logger)
	if !ok {
		return
	}

	products, err := h.products.List(r.Context(), model.ProductFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Upsert handles POST /api/products.
func (h *ProductHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ProductRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	product, err := h.products.Upsert(r.Context(), actor, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Offers handles GET /api/products/{id}/offers?qty=.
func (h *ProductHandler) Offers(w http.ResponseWriter, r *http.Request) {
	qty, ok := queryInt(w, r, "qty", 1, h.logger)
	if !ok {
		return
	}

	quotes, err := h.offers.ListForProduct(r.Context(), chi.URLParam(r, "id"), qty)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quotes)
}

// BestOffer handles GET /api/products/{id}/best-offer?qty=&area=.
func (h *ProductHandler) BestOffer(w http.ResponseWriter, r *http.Request) {
	qty, ok := queryInt(w, r, "qty", 1, h.logger)
	if !ok {
		return
	}

	quote, err := h.offers.BestOffer(r.Context(), chi.URLParam(r, "id"), qty, r.URL.Query().Get("area"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}
