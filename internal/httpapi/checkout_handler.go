package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/anlev/shopfront/internal/domain"
)

// CheckoutService is the slice of the checkout service the handlers need.
type CheckoutService interface {
	Submit(ctx context.Context, sessionID string, info domain.CustomerInfo, method domain.PaymentMethod, details domain.PaymentDetails) (*domain.OrderConfirmation, error)
	LastOrder(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(svc CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		timeout:  timeout,
	}
}

type CheckoutRequestDTO struct {
	CustomerInfo   domain.CustomerInfo   `json:"customer_info"`
	PaymentMethod  string                `json:"payment_method"`
	PaymentDetails domain.PaymentDetails `json:"payment_details"`
}

type OrderConfirmationDTO struct {
	OrderID     string `json:"order_id"`
	TotalAmount string `json:"total_amount"`
	Status      string `json:"status,omitempty"`
}

func toConfirmationDTO(conf *domain.OrderConfirmation) OrderConfirmationDTO {
	return OrderConfirmationDTO{
		OrderID:     conf.OrderID,
		TotalAmount: conf.TotalAmount.Round(2).StringFixed(2),
		Status:      conf.Status,
	}
}

// POST /api/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	conf, err := h.checkout.Submit(ctx,
		sessionFromContext(r.Context()),
		req.CustomerInfo,
		domain.PaymentMethod(req.PaymentMethod),
		req.PaymentDetails,
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toConfirmationDTO(conf))
}

// GET /api/orders/last
func (h *CheckoutHandler) LastOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	conf, err := h.checkout.LastOrder(ctx, sessionFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toConfirmationDTO(conf))
}
