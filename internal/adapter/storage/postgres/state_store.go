package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"multiwallet-trader/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// StateStore implements ports.StateStore as a single JSONB row.
type StateStore struct {
	pool Pool
}

// NewStateStore creates a new StateStore.
func NewStateStore(pool Pool) *StateStore {
	return &StateStore{pool: pool}
}

// Load returns the stored state, or an empty one when none was saved.
func (s *StateStore) Load(ctx context.Context) (*domain.AppState, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM app_state WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.AppState{RecentMints: []domain.RecentMint{}}, nil
		}
		return nil, fmt.Errorf("get state: %w", err)
	}

	st := &domain.AppState{}
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return st, nil
}

// Save upserts the state row.
func (s *StateStore) Save(ctx context.Context, st *domain.AppState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	query := `INSERT INTO app_state (id, doc, updated_at) VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`

	if _, err := s.pool.Exec(ctx, query, raw); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}
