package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/pkg/apperror"

	"github.com/rs/zerolog"
)

// StateServiceImpl implements ports.StateService over a StateStore.
type StateServiceImpl struct {
	store  ports.StateStore
	events ports.EventStream
	log    zerolog.Logger

	mu sync.Mutex
}

// NewStateService creates a new StateServiceImpl.
func NewStateService(store ports.StateStore, events ports.EventStream, log zerolog.Logger) *StateServiceImpl {
	return &StateServiceImpl{store: store, events: events, log: log}
}

// Get returns the current state document.
func (s *StateServiceImpl) Get(ctx context.Context) (*domain.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Update merges patch into the state and persists it.
func (s *StateServiceImpl) Update(ctx context.Context, patch domain.StatePatch) (*domain.AppState, error) {
	if patch.RecentMint != nil && patch.RecentMint.CreatedAt.IsZero() {
		patch.RecentMint.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	st.Apply(patch)
	if err := s.store.Save(ctx, st); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save state: %w", err))
	}

	s.events.Publish(domain.CategoryState, "state updated", map[string]interface{}{
		"mint":   st.Mint,
		"recent": len(st.RecentMints),
	})
	return st, nil
}

// RecordBalances stores snapshot as the last known balances. Failures are only logged.
func (s *StateServiceImpl) RecordBalances(snapshot domain.BalanceSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load state for balance snapshot")
		return
	}
	st.LastBalances = &snapshot
	if err := s.store.Save(ctx, st); err != nil {
		s.log.Warn().Err(err).Msg("failed to store balance snapshot in state")
	}
}

func (s *StateServiceImpl) load(ctx context.Context) (*domain.AppState, error) {
	st, err := s.store.Load(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load state: %w", err))
	}
	if st == nil {
		st = &domain.AppState{}
	}
	if st.RecentMints == nil {
		st.RecentMints = []domain.RecentMint{}
	}
	return st, nil
}
