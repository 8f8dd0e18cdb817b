package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/anlev/shopfront/internal/cart"
	"github.com/anlev/shopfront/internal/catalog"
	"github.com/anlev/shopfront/internal/domain"
	"github.com/anlev/shopfront/internal/orders"
	"github.com/anlev/shopfront/internal/referral"
)

type mockCartService struct {
	cart   *domain.Cart
	totals domain.Totals
	err    error
}

func (m *mockCartService) Get(context.Context, string) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *mockCartService) SetQuantity(_ context.Context, _ string, productID string, quantity int) error {
	if m.err != nil {
		return m.err
	}
	if quantity < 1 {
		return cart.ErrInvalidQuantity
	}
	for i := range m.cart.Items {
		if m.cart.Items[i].ProductID == productID {
			m.cart.Items[i].Quantity = quantity
			return nil
		}
	}
	m.cart.Items = append(m.cart.Items, domain.CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

func (m *mockCartService) RemoveItem(_ context.Context, _ string, productID string) error {
	if m.err != nil {
		return m.err
	}
	for i, it := range m.cart.Items {
		if it.ProductID == productID {
			m.cart.Items = append(m.cart.Items[:i], m.cart.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockCartService) Totals(context.Context, string) (*domain.Cart, domain.Totals, error) {
	if m.err != nil {
		return nil, domain.Totals{}, m.err
	}
	return m.cart, m.totals, nil
}

type mockCatalogClient struct {
	products []domain.Product
	err      error
}

func (m *mockCatalogClient) List(context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockCatalogClient) Get(_ context.Context, id string) (domain.Product, error) {
	if m.err != nil {
		return domain.Product{}, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, catalog.ErrProductNotFound
}

type mockCheckoutService struct {
	conf *domain.OrderConfirmation
	err  error
	last *domain.OrderConfirmation
}

func (m *mockCheckoutService) Submit(context.Context, string, domain.CustomerInfo, domain.PaymentMethod, domain.PaymentDetails) (*domain.OrderConfirmation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.conf, nil
}

func (m *mockCheckoutService) LastOrder(context.Context, string) (*domain.OrderConfirmation, error) {
	if m.last == nil {
		return nil, orders.ErrNoLastOrder
	}
	return m.last, nil
}

type mockReferralStore struct {
	mu       sync.Mutex
	recorded map[string]string
	active   string
}

func (m *mockReferralStore) Record(_ context.Context, sessionID, agentID string) error {
	if !referral.ValidAgentID(agentID) {
		return referral.ErrInvalidAgentID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recorded == nil {
		m.recorded = make(map[string]string)
	}
	m.recorded[sessionID] = agentID
	return nil
}

func (m *mockReferralStore) Active(context.Context, string) (string, error) {
	if m.active == "" {
		return "", referral.ErrNoActiveReferral
	}
	return m.active, nil
}

func (m *mockReferralStore) Clear(context.Context, string) error {
	m.active = ""
	return nil
}

type mockClickRecorder struct {
	mu     sync.Mutex
	agents []string
	done   chan struct{}
}

func (m *mockClickRecorder) RecordClick(_ context.Context, agentID string) error {
	m.mu.Lock()
	m.agents = append(m.agents, agentID)
	m.mu.Unlock()
	if m.done != nil {
		close(m.done)
	}
	return nil
}

type testEnv struct {
	router   chi.Router
	carts    *mockCartService
	catalog  *mockCatalogClient
	checkout *mockCheckoutService
	refs     *mockReferralStore
	clicks   *mockClickRecorder
}

func newTestEnv() *testEnv {
	env := &testEnv{
		carts: &mockCartService{cart: &domain.Cart{SessionID: "sess-1"}},
		catalog: &mockCatalogClient{products: []domain.Product{
			{ID: "p1", Name: "Widget", Price: decimal.RequireFromString("10.00"), Stock: 5, Category: "tools"},
		}},
		checkout: &mockCheckoutService{conf: &domain.OrderConfirmation{
			OrderID:     "ord-1",
			TotalAmount: decimal.RequireFromString("27.00"),
		}},
		refs:   &mockReferralStore{},
		clicks: &mockClickRecorder{done: make(chan struct{})},
	}

	env.router = NewRouter(RouterConfig{
		Carts:          env.carts,
		Catalog:        env.catalog,
		Checkout:       env.checkout,
		Referrals:      env.refs,
		Clicks:         env.clicks,
		RequestTimeout: 5 * time.Second,
	})
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
