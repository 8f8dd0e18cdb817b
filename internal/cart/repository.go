package cart

import (
	"context"
	"errors"

	"github.com/anlev/shopfront/internal/domain"
)

// Repository defines the interface for cart persistence.
// Consumers define this interface, not the MongoDB implementation.
type Repository interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	// SetItem sets the quantity for a product, adding the entry (and the cart)
	// when absent. Quantity validation happens in the service layer; the
	// repository never stores a zero-quantity entry because removal goes
	// through RemoveItem.
	SetItem(ctx context.Context, sessionID string, item domain.CartItem) error
	RemoveItem(ctx context.Context, sessionID, productID string) error
	DeleteCart(ctx context.Context, sessionID string) error
}

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)
