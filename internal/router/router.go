package router

import (
	"net/http"

	"bulkmart/internal/handler"
	"bulkmart/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Offer        *handler.OfferHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Notification *handler.NotificationHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, tokens middleware.TokenParser, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens, logger))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Product.List)
				r.Post("/", h.Product.Upsert)
				r.Get("/{id}", h.Product.GetByID)
				r.Get("/{id}/offers", h.Product.Offers)
				r.Get("/{id}/best-offer", h.Product.BestOffer)
			})

			r.Route("/offers", func(r chi.Router) {
				r.Post("/", h.Offer.Create)
				r.Get("/{id}", h.Offer.GetByID)
				r.Patch("/{id}/availability", h.Offer.SetAvailability)
				r.Put("/{id}/tiers", h.Offer.ReplaceTiers)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.List)
				r.Post("/", h.Cart.Add)
				r.Post("/confirm", h.Cart.Confirm)
				r.Patch("/{id}", h.Cart.UpdateQuantity)
				r.Delete("/{id}", h.Cart.Remove)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Order.List)
				r.Get("/{id}", h.Order.GetByID)
				r.Post("/{id}/status", h.Order.Transition)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Post("/{id}/read", h.Notification.MarkRead)
			})
		})
	})

	return r
}
