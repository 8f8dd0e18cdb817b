package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anlev/shopfront/internal/domain"
)

// LastOrderStore caches the most recent order confirmation per session so the
// confirmation view survives a reload without another backend round trip.
type LastOrderStore interface {
	Set(ctx context.Context, sessionID string, conf *domain.OrderConfirmation) error
	Get(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error)
}

var ErrNoLastOrder = errors.New("no cached order confirmation")

func NewRedisLastOrderStore(client *redis.Client) *RedisLastOrderStore {
	return &RedisLastOrderStore{
		client: client,
		ttl:    24 * time.Hour,
	}
}

type RedisLastOrderStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s *RedisLastOrderStore) Set(ctx context.Context, sessionID string, conf *domain.OrderConfirmation) error {
	data, err := json.Marshal(conf)
	if err != nil {
		return fmt.Errorf("marshal confirmation failed: %w", err)
	}

	if err := s.client.Set(ctx, lastOrderKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisLastOrderStore) Get(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error) {
	data, err := s.client.Get(ctx, lastOrderKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoLastOrder
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var conf domain.OrderConfirmation
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("unmarshal confirmation failed: %w", err)
	}
	return &conf, nil
}

func lastOrderKey(sessionID string) string {
	return fmt.Sprintf("lastorder:%s", sessionID)
}
