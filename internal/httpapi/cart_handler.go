package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anlev/shopfront/internal/domain"
)

// CartService is the slice of the cart service the handlers need.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	SetQuantity(ctx context.Context, sessionID, productID string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, productID string) error
	Totals(ctx context.Context, sessionID string) (*domain.Cart, domain.Totals, error)
}

type CartHandler struct {
	carts   CartService
	timeout time.Duration
}

func NewCartHandler(carts CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type SetQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items      []CartItemDTO `json:"items"`
	TotalItems int           `json:"total_items"`
}

type CartItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CartTotalsResponseDTO struct {
	Items      []CartItemDTO `json:"items"`
	TotalItems int           `json:"total_items"`
	Subtotal   string        `json:"subtotal"`
	Tax        string        `json:"tax"`
	Shipping   string        `json:"shipping"`
	Total      string        `json:"total"`
}

func toCartResponse(c *domain.Cart) CartResponseDTO {
	items := make([]CartItemDTO, len(c.Items))
	for i, it := range c.Items {
		items[i] = CartItemDTO{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return CartResponseDTO{Items: items, TotalItems: c.TotalItems()}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	cart, err := h.carts.Get(ctx, sessionFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := sessionFromContext(r.Context())
	if err := h.carts.SetQuantity(ctx, sessionID, productID, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	cart, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	sessionID := sessionFromContext(r.Context())
	if err := h.carts.RemoveItem(ctx, sessionID, productID); err != nil {
		handleServiceError(w, err)
		return
	}

	cart, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) Totals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	cart, totals, err := h.carts.Totals(ctx, sessionFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	base := toCartResponse(cart)
	respondJSON(w, http.StatusOK, CartTotalsResponseDTO{
		Items:      base.Items,
		TotalItems: base.TotalItems,
		Subtotal:   totals.Subtotal.Round(2).StringFixed(2),
		Tax:        totals.Tax.Round(2).StringFixed(2),
		Shipping:   totals.Shipping.Round(2).StringFixed(2),
		Total:      totals.Total.Round(2).StringFixed(2),
	})
}
