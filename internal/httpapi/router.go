package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/anlev/shopfront/internal/catalog"
	"github.com/anlev/shopfront/internal/referral"
)

type RouterConfig struct {
	Carts          CartService
	Catalog        catalog.Client
	Checkout       CheckoutService
	Referrals      referral.Store
	Clicks         ClickRecorder
	RequestTimeout time.Duration
}

// NewRouter builds the full HTTP surface.
func NewRouter(cfg RouterConfig) chi.Router {
	productHandler := NewProductHandler(cfg.Catalog, cfg.RequestTimeout)
	cartHandler := NewCartHandler(cfg.Carts, cfg.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.RequestTimeout)
	referralHandler := NewReferralHandler(cfg.Referrals, cfg.Clicks, cfg.RequestTimeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/referral/{agentID}", referralHandler.Visit)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.List)
		r.Get("/products/{productID}", productHandler.Get)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Get("/totals", cartHandler.Totals)
			r.Put("/items/{productID}", cartHandler.SetQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.Submit)
		r.Get("/orders/last", checkoutHandler.LastOrder)
	})

	return r
}
