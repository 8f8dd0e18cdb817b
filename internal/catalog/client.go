package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/anlev/shopfront/internal/domain"
)

// Client reads the external product catalog. Implementations validate entries
// at the network boundary; a malformed entry is never handed to callers.
type Client interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, productID string) (domain.Product, error)
}

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrMalformedProduct = errors.New("malformed product entry")
)

func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  client,
	}
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
	sfg     singleflight.Group // collapses concurrent list fetches
}

func (c *HTTPClient) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do("list", func() (interface{}, error) {
		body, err := c.fetch(ctx, c.baseURL+"/api/products")
		if err != nil {
			return nil, err
		}

		var raw []domain.Product
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("decode product list failed: %w", err)
		}

		// Quarantine malformed entries instead of propagating them.
		products := make([]domain.Product, 0, len(raw))
		for _, p := range raw {
			if err := validate(p); err != nil {
				log.Printf("catalog: dropping product %q: %v", p.ID, err)
				continue
			}
			products = append(products, p)
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (c *HTTPClient) Get(ctx context.Context, productID string) (domain.Product, error) {
	body, err := c.fetch(ctx, c.baseURL+"/api/products/"+productID)
	if err != nil {
		return domain.Product{}, err
	}

	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.Product{}, fmt.Errorf("decode product failed: %w", err)
	}
	if err := validate(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (c *HTTPClient) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request failed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response failed: %w", err)
	}
	return body, nil
}

func validate(p domain.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrMalformedProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrMalformedProduct)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: negative price", ErrMalformedProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: negative stock", ErrMalformedProduct)
	}
	return nil
}
