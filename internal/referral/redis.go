package referral

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anlev/shopfront/internal/domain"
)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		now:    time.Now,
	}
}

// RedisStore holds attributions as JSON values with a TTL matching the
// attribution window. The TTL handles the common expiry; Active still checks
// CapturedAt so a record never outlives its window even if the key survives.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func (s *RedisStore) Record(ctx context.Context, sessionID, agentID string) error {
	if !ValidAgentID(agentID) {
		return fmt.Errorf("%w: %q", ErrInvalidAgentID, agentID)
	}

	attr := domain.Attribution{
		AgentID:    agentID,
		CapturedAt: s.now(),
	}
	data, err := json.Marshal(attr)
	if err != nil {
		return fmt.Errorf("marshal attribution failed: %w", err)
	}

	if err := s.client.Set(ctx, attributionKey(sessionID), data, domain.AttributionWindow).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Active(ctx context.Context, sessionID string) (string, error) {
	key := attributionKey(sessionID)

	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoActiveReferral
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	var attr domain.Attribution
	if err := json.Unmarshal(data, &attr); err != nil {
		return "", fmt.Errorf("unmarshal attribution failed: %w", err)
	}

	if attr.Expired(s.now()) {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return "", fmt.Errorf("redis delete failed: %w", err)
		}
		return "", ErrNoActiveReferral
	}

	return attr.AgentID, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, attributionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func attributionKey(sessionID string) string {
	return fmt.Sprintf("referral:%s", sessionID)
}
