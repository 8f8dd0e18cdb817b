package checkout

import (
	"strings"

	"github.com/anlev/shopfront/internal/domain"
)

// validateCustomer checks the contact and shipping fields. Every field is
// required except the billing address, which falls back to the shipping
// address when blank. Returns the (possibly defaulted) info.
func validateCustomer(info domain.CustomerInfo) (domain.CustomerInfo, error) {
	info.Name = strings.TrimSpace(info.Name)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)
	info.ShippingAddress = strings.TrimSpace(info.ShippingAddress)
	info.BillingAddress = strings.TrimSpace(info.BillingAddress)

	switch {
	case info.Name == "":
		return info, &ValidationError{Field: "name", Reason: "required"}
	case info.Email == "":
		return info, &ValidationError{Field: "email", Reason: "required"}
	case !strings.Contains(info.Email, "@"):
		return info, &ValidationError{Field: "email", Reason: "not a valid email address"}
	case info.Phone == "":
		return info, &ValidationError{Field: "phone", Reason: "required"}
	case info.ShippingAddress == "":
		return info, &ValidationError{Field: "shipping_address", Reason: "required"}
	}

	if info.BillingAddress == "" {
		info.BillingAddress = info.ShippingAddress
	}
	return info, nil
}

// validatePayment checks the method discriminator and its detail payload.
func validatePayment(method domain.PaymentMethod, details domain.PaymentDetails) error {
	switch method {
	case domain.PaymentCard:
		digits := strings.ReplaceAll(details.CardNumber, " ", "")
		if len(digits) < 12 || !allDigits(digits) {
			return &ValidationError{Field: "card_number", Reason: "must be at least 12 digits"}
		}
		if details.CardExpiry == "" {
			return &ValidationError{Field: "card_expiry", Reason: "required"}
		}
		if n := len(details.CardCVV); n < 3 || n > 4 || !allDigits(details.CardCVV) {
			return &ValidationError{Field: "card_cvv", Reason: "must be 3 or 4 digits"}
		}
	case domain.PaymentUPI:
		if !strings.Contains(details.UPIID, "@") {
			return &ValidationError{Field: "upi_id", Reason: "not a valid UPI id"}
		}
	default:
		return &ValidationError{Field: "payment_method", Reason: "must be card or upi"}
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
