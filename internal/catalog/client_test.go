package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, srv.Client())
}

func TestList_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Write([]byte(`[
			{"id":"p1","name":"Widget","price":10.00,"stock":5,"category":"tools","image_url":"a.png","commission_pct":5},
			{"id":"p2","name":"Gadget","price":"5.00","stock":3,"category":"tools","image_url":"b.png","commission_pct":10}
		]`))
	})

	products, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "10", products[0].Price.String())
	assert.Equal(t, 5, products[0].Stock)
	assert.Equal(t, "5", products[1].Price.String())
}

func TestList_QuarantinesMalformedEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"p1","name":"Widget","price":10.00,"stock":5},
			{"id":"","name":"No ID","price":1.00,"stock":1},
			{"id":"p3","name":"Negative","price":-2.00,"stock":1},
			{"id":"p4","name":"Bad stock","price":2.00,"stock":-1},
			{"id":"p5","name":"","price":2.00,"stock":1}
		]`))
	})

	products, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestList_EmptyCatalog(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	products, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestList_Upstreamfailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.List(context.Background())
	assert.Error(t, err)
}

func TestGet_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/p1", r.URL.Path)
		w.Write([]byte(`{"id":"p1","name":"Widget","price":10.00,"stock":5}`))
	})

	p, err := client.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
}

func TestGet_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGet_MalformedEntryRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"p1","name":"Widget","price":-10.00,"stock":5}`))
	})

	_, err := client.Get(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrMalformedProduct)
}

func TestDisplayRating_Deterministic(t *testing.T) {
	first := DisplayRating("p1")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DisplayRating("p1"))
	}

	assert.GreaterOrEqual(t, first, 3.5)
	assert.LessOrEqual(t, first, 5.0)
}

func TestDisplayReviewCount_Deterministic(t *testing.T) {
	first := DisplayReviewCount("p1")
	assert.Equal(t, first, DisplayReviewCount("p1"))
	assert.GreaterOrEqual(t, first, 5)
	assert.Less(t, first, 500)
}
