package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/anlev/shopfront/internal/cart"
	"github.com/anlev/shopfront/internal/catalog"
	"github.com/anlev/shopfront/internal/checkout"
	"github.com/anlev/shopfront/internal/orders"
	"github.com/anlev/shopfront/internal/referral"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service and client errors onto HTTP answers.
// Validation problems come back as 400 with the specific reason, upstream
// business rejections keep their message verbatim, transport trouble turns
// into a generic 502.
func handleServiceError(w http.ResponseWriter, err error) {
	var ve *checkout.ValidationError
	var be *orders.BackendError

	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, "validation_failed", ve.Error())
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, cart.ErrInsufficientStock):
		respondError(w, http.StatusBadRequest, "insufficient_stock", err.Error())
	case errors.Is(err, referral.ErrInvalidAgentID):
		respondError(w, http.StatusBadRequest, "invalid_agent_id", "referral agent id is not a valid UUID")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, orders.ErrNoLastOrder):
		respondError(w, http.StatusNotFound, "not_found", "no recent order for this session")
	case errors.As(err, &be):
		respondError(w, be.StatusCode, "order_rejected", be.Message)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "order service is temporarily unavailable")
	default:
		log.Printf("httpapi: internal error: %v", err)
		respondError(w, http.StatusBadGateway, "upstream_error", "something went wrong, please try again")
	}
}
