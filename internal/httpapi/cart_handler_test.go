package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anlev/shopfront/internal/cart"
	"github.com/anlev/shopfront/internal/domain"
)

func TestGetCart_Empty(t *testing.T) {
	env := newTestEnv()

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/cart/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Zero(t, resp.TotalItems)
	assert.Empty(t, resp.Items)
}

func TestSetQuantity_Success(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/p1", strings.NewReader(`{"quantity":3}`))
	rec := env.do(req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ProductID)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, 3, resp.TotalItems)
}

func TestSetQuantity_InvalidJSON(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/p1", strings.NewReader(`{`))
	rec := env.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetQuantity_ZeroRejected(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/p1", strings.NewReader(`{"quantity":0}`))
	rec := env.do(req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid_quantity", resp.Code)
}

func TestSetQuantity_InsufficientStock(t *testing.T) {
	env := newTestEnv()
	env.carts.err = cart.ErrInsufficientStock

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/p1", strings.NewReader(`{"quantity":99}`))
	rec := env.do(req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "insufficient_stock", resp.Code)
}

func TestSetQuantity_UnknownProduct(t *testing.T) {
	env := newTestEnv()
	env.carts.err = cart.ErrProductNotFound

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/ghost", strings.NewReader(`{"quantity":1}`))
	rec := env.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveItem(t *testing.T) {
	env := newTestEnv()
	env.carts.cart.Items = []domain.CartItem{{ProductID: "p1", Quantity: 2}}

	rec := env.do(httptest.NewRequest(http.MethodDelete, "/api/cart/items/p1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Items)
}

func TestCartTotals(t *testing.T) {
	env := newTestEnv()
	env.carts.cart.Items = []domain.CartItem{
		{ProductID: "A", Quantity: 2},
		{ProductID: "B", Quantity: 1},
	}
	env.carts.totals = domain.Totals{
		Subtotal: decimal.RequireFromString("25.00"),
		Tax:      decimal.RequireFromString("2.00"),
		Shipping: decimal.Zero,
		Total:    decimal.RequireFromString("27.00"),
	}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/cart/totals", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartTotalsResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "25.00", resp.Subtotal)
	assert.Equal(t, "2.00", resp.Tax)
	assert.Equal(t, "0.00", resp.Shipping)
	assert.Equal(t, "27.00", resp.Total)
	assert.Equal(t, 3, resp.TotalItems)
}

func TestSessionCookieIssued(t *testing.T) {
	env := newTestEnv()

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/cart/", nil))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	var found bool
	for _, c := range cookies {
		if c.Name == sessionCookieName {
			found = true
			assert.NotEmpty(t, c.Value)
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie must be set for new visitors")
}

func TestSessionCookieReused(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/cart/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "existing-session"})
	rec := env.do(req)

	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, sessionCookieName, c.Name, "existing session must not be replaced")
	}
}
