package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/anlev/shopfront/internal/catalog"
	"github.com/anlev/shopfront/internal/domain"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
	ErrProductNotFound   = errors.New("product not found")
)

type Service struct {
	repo    Repository
	cache   Cache
	catalog catalog.Client
	sfg     singleflight.Group // Prevents cache stampede
}

func NewService(repo Repository, cache Cache, cat catalog.Client) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		catalog: cat,
	}
}

// Get returns the session's cart, reading through the cache. A session with
// no stored cart gets an empty one, never an error.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, sessionID)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cart: cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, sessionID)
		if errors.Is(errGet, ErrCartNotFound) {
			return &domain.Cart{
				SessionID: sessionID,
				Items:     nil,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), sessionID, cart); errSet != nil {
				log.Printf("cart: cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// SetQuantity updates the quantity for a product. Quantities below 1 or above
// the product's current stock are rejected and leave the cart untouched.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("resolve product %s: %w", productID, err)
	}
	if quantity > product.Stock {
		return ErrInsufficientStock
	}

	item := domain.CartItem{
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.repo.SetItem(ctx, sessionID, item); err != nil {
		log.Printf("cart: repo set item error: %v", err)
		return err
	}

	s.invalidateCache(sessionID)
	return nil
}

// RemoveItem deletes the entry unconditionally.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) error {
	err := s.repo.RemoveItem(ctx, sessionID, productID)
	if err != nil && !errors.Is(err, ErrCartNotFound) {
		log.Printf("cart: repo remove item error: %v", err)
		return err
	}

	s.invalidateCache(sessionID)
	return nil
}

// Clear drops the cart after a successful order placement.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	err := s.repo.DeleteCart(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrCartNotFound) {
		log.Printf("cart: repo delete cart error: %v", err)
		return err
	}

	s.invalidateCache(sessionID)
	return nil
}

// Totals prices the cart against the live catalog. A catalog failure degrades
// to an all-zero total rather than failing the read.
func (s *Service) Totals(ctx context.Context, sessionID string) (*domain.Cart, domain.Totals, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, domain.Totals{}, err
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		log.Printf("cart: catalog list error, pricing against empty catalog: %v", err)
		products = nil
	}

	return cart, ComputeTotals(cart.Items, domain.IndexProducts(products)), nil
}

func (s *Service) invalidateCache(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		log.Printf("cart: cache invalidate error: %v", err)
	}
}
