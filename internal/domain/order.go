package domain

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// CustomerInfo carries the contact and shipping fields collected at checkout.
// BillingAddress is the only optional field; when blank it falls back to
// ShippingAddress.
type CustomerInfo struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
}

// PaymentDetails is the method-specific payload. Card fields are required for
// PaymentCard, UPIID for PaymentUPI; the unused half stays empty.
type PaymentDetails struct {
	CardNumber string `json:"card_number,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCVV    string `json:"card_cvv,omitempty"`
	UPIID      string `json:"upi_id,omitempty"`
}

// OrderLine freezes a cart entry's unit price at submission time so that
// mid-checkout catalog changes cannot shift the charged amount.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderDraft is the transient order-placement contract assembled at checkout.
// It is built once, posted once, and never persisted locally.
type OrderDraft struct {
	Items           []OrderLine     `json:"items"`
	ReferralAgentID string          `json:"referral_agent_id,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CustomerInfo    CustomerInfo    `json:"customer_info"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentDetails  PaymentDetails  `json:"payment_details"`
}

// OrderConfirmation is the order service's success payload, cached per session
// for the confirmation view.
type OrderConfirmation struct {
	OrderID     string          `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status,omitempty"`
}
