package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"multiwallet-trader/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultSnapshotTTL bounds how long a persisted snapshot may serve as a fallback.
const DefaultSnapshotTTL = 24 * time.Hour

// SnapshotStore implements ports.SnapshotStore, one JSON value per token.
type SnapshotStore struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewSnapshotStore creates a Redis-backed snapshot store. ttl <= 0 uses DefaultSnapshotTTL.
func NewSnapshotStore(client goredis.UniversalClient, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotStore{
		client: client,
		prefix: keyPrefix + "balances:",
		ttl:    ttl,
	}
}

// SaveSnapshot stores snapshot under its token.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key(snapshot.Token), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis snapshot set: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot of token, or nil, nil if there is none.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context, token string) (*domain.BalanceSnapshot, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis snapshot get: %w", err)
	}

	var snap domain.BalanceSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// An empty token is a valid key: it holds native balances only.
func (s *SnapshotStore) key(token string) string {
	if token == "" {
		return s.prefix + "_native"
	}
	return s.prefix + token
}
