package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/anlev/shopfront/internal/cart"
	"github.com/anlev/shopfront/internal/catalog"
	"github.com/anlev/shopfront/internal/domain"
	"github.com/anlev/shopfront/internal/orders"
	"github.com/anlev/shopfront/internal/referral"
)

// CartService is the slice of the cart service the checkout flow needs.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// OrderPlacer submits a finished draft to the order service.
type OrderPlacer interface {
	Place(ctx context.Context, draft domain.OrderDraft) (*domain.OrderConfirmation, error)
}

// Service assembles and submits the order-placement contract: one cart
// snapshot, prices frozen at submission time, attributed to the active
// referral if one exists.
type Service struct {
	carts      CartService
	catalog    catalog.Client
	referrals  referral.Store
	orders     OrderPlacer
	lastOrders orders.LastOrderStore
}

func NewService(carts CartService, cat catalog.Client, refs referral.Store, placer OrderPlacer, last orders.LastOrderStore) *Service {
	return &Service{
		carts:      carts,
		catalog:    cat,
		referrals:  refs,
		orders:     placer,
		lastOrders: last,
	}
}

// Submit runs the checkout. Validation failures and empty carts return before
// any call to the order service. A submission failure leaves cart and
// attribution untouched so the user can retry; success clears both and caches
// the confirmation.
func (s *Service) Submit(ctx context.Context, sessionID string, info domain.CustomerInfo, method domain.PaymentMethod, details domain.PaymentDetails) (*domain.OrderConfirmation, error) {
	info, err := validateCustomer(info)
	if err != nil {
		return nil, err
	}
	if err := validatePayment(method, details); err != nil {
		return nil, err
	}

	cartState, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cartState.Items) == 0 {
		return nil, ErrEmptyCart
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog: %w", err)
	}
	index := domain.IndexProducts(products)

	lines := cart.ResolveLines(cartState.Items, index)
	if len(lines) == 0 {
		// every cart entry vanished from the catalog; nothing to charge
		return nil, ErrEmptyCart
	}
	totals := cart.ComputeTotals(cartState.Items, index)

	draft := domain.OrderDraft{
		Items:          lines,
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Shipping:       totals.Shipping,
		TotalAmount:    totals.Total,
		CustomerInfo:   info,
		PaymentMethod:  method,
		PaymentDetails: details,
	}

	// Attribution read is best-effort: a store failure costs the agent the
	// commission but never blocks the order.
	agentID, err := s.referrals.Active(ctx, sessionID)
	switch {
	case err == nil:
		draft.ReferralAgentID = agentID
	case errors.Is(err, referral.ErrNoActiveReferral):
		// organic order
	default:
		log.Printf("checkout: attribution read failed: %v", err)
	}

	conf, err := s.orders.Place(ctx, draft)
	if err != nil {
		return nil, err
	}

	// Post-success cleanup is sequential, not transactional. Failures are
	// logged; the order already exists and must be reported to the user.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("checkout: cart clear failed after order %s: %v", conf.OrderID, err)
	}
	if err := s.referrals.Clear(ctx, sessionID); err != nil {
		log.Printf("checkout: attribution clear failed after order %s: %v", conf.OrderID, err)
	}
	if err := s.lastOrders.Set(ctx, sessionID, conf); err != nil {
		log.Printf("checkout: confirmation cache failed for order %s: %v", conf.OrderID, err)
	}

	return conf, nil
}

// LastOrder returns the cached confirmation for the session's most recent order.
func (s *Service) LastOrder(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error) {
	return s.lastOrders.Get(ctx, sessionID)
}
