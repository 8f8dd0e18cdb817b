package checkout

import "errors"

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError reports a checkout field that failed local validation.
// Validation failures never reach the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
