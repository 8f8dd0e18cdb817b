package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/anlev/shopfront/internal/domain"
)

// BackendError is a non-2xx answer from the order service that carried a
// message body. The message is surfaced to the user verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// Client posts assembled order drafts to the external order service. One
// submission is one POST: no retry on any failure, the user retries manually.
// A circuit breaker guards the upstream; business rejections (4xx with a
// message) do not count against it, only transport-level failures do.
type Client struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*domain.OrderConfirmation]
}

func NewClient(baseURL string, client *http.Client) *Client {
	settings := gobreaker.Settings{
		Name: "order-service",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var be *BackendError
			return errors.As(err, &be) && be.StatusCode < 500
		},
	}

	return &Client{
		baseURL: baseURL,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[*domain.OrderConfirmation](settings),
	}
}

// Wire shapes follow the order service's contract: camelCase field names,
// amounts rounded to two decimals at this boundary only.
type placeOrderLine struct {
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	UnitPrice json.Number `json:"unitPrice"`
}

type placeOrderCustomer struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shippingAddress"`
	BillingAddress  string `json:"billingAddress"`
}

type placeOrderPayment struct {
	CardNumber string `json:"cardNumber,omitempty"`
	CardExpiry string `json:"cardExpiry,omitempty"`
	CardCVV    string `json:"cardCvv,omitempty"`
	UPIID      string `json:"upiId,omitempty"`
}

type placeOrderRequest struct {
	Items           []placeOrderLine   `json:"items"`
	ReferralAgentID string             `json:"referralAgentId,omitempty"`
	Subtotal        json.Number        `json:"subtotal"`
	Tax             json.Number        `json:"tax"`
	Shipping        json.Number        `json:"shipping"`
	TotalAmount     json.Number        `json:"totalAmount"`
	CustomerInfo    placeOrderCustomer `json:"customerInfo"`
	PaymentMethod   string             `json:"paymentMethod"`
	PaymentDetails  placeOrderPayment  `json:"paymentDetails"`
}

type placeOrderResponse struct {
	OrderID     string      `json:"orderId"`
	TotalAmount json.Number `json:"totalAmount"`
	Status      string      `json:"status"`
	Error       string      `json:"error"`
	Message     string      `json:"message"`
}

// Place submits the draft and returns the confirmation on a 2xx answer.
func (c *Client) Place(ctx context.Context, draft domain.OrderDraft) (*domain.OrderConfirmation, error) {
	return c.breaker.Execute(func() (*domain.OrderConfirmation, error) {
		return c.place(ctx, draft)
	})
}

func (c *Client) place(ctx context.Context, draft domain.OrderDraft) (*domain.OrderConfirmation, error) {
	body, err := json.Marshal(toWire(draft))
	if err != nil {
		return nil, fmt.Errorf("marshal order failed: %w", err)
	}

	url := c.baseURL + "/api/orders/place"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order submission failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response failed: %w", err)
	}

	var decoded placeOrderResponse
	// The error body is best-effort JSON; a decode failure falls through to
	// the generic message below.
	_ = json.Unmarshal(respBody, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decoded.Error
		if msg == "" {
			msg = decoded.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("order service returned status %d", resp.StatusCode)
		}
		return nil, &BackendError{StatusCode: resp.StatusCode, Message: msg}
	}

	if decoded.OrderID == "" {
		return nil, fmt.Errorf("order service returned no order id")
	}

	conf := &domain.OrderConfirmation{
		OrderID:     decoded.OrderID,
		Status:      decoded.Status,
		TotalAmount: draft.TotalAmount,
	}
	// Prefer the amount the order service actually booked, when it echoes one.
	if decoded.TotalAmount != "" {
		if amt, err := decimal.NewFromString(decoded.TotalAmount.String()); err == nil {
			conf.TotalAmount = amt
		}
	}
	return conf, nil
}

// money renders an amount with presentation rounding to two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.Round(2).StringFixed(2))
}

func toWire(draft domain.OrderDraft) placeOrderRequest {
	lines := make([]placeOrderLine, len(draft.Items))
	for i, l := range draft.Items {
		lines[i] = placeOrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: money(l.UnitPrice),
		}
	}

	info := draft.CustomerInfo
	return placeOrderRequest{
		Items:           lines,
		ReferralAgentID: draft.ReferralAgentID,
		Subtotal:        money(draft.Subtotal),
		Tax:             money(draft.Tax),
		Shipping:        money(draft.Shipping),
		TotalAmount:     money(draft.TotalAmount),
		CustomerInfo: placeOrderCustomer{
			Name:            info.Name,
			Email:           info.Email,
			Phone:           info.Phone,
			ShippingAddress: info.ShippingAddress,
			BillingAddress:  info.BillingAddress,
		},
		PaymentMethod: string(draft.PaymentMethod),
		PaymentDetails: placeOrderPayment{
			CardNumber: draft.PaymentDetails.CardNumber,
			CardExpiry: draft.PaymentDetails.CardExpiry,
			CardCVV:    draft.PaymentDetails.CardCVV,
			UPIID:      draft.PaymentDetails.UPIID,
		},
	}
}
