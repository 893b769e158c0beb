package file

import (
	"context"

	"multiwallet-trader/internal/core/domain"

	"github.com/rs/zerolog"
)

// StateStore implements ports.StateStore on a JSON file.
type StateStore struct {
	path string
	log  zerolog.Logger
}

// NewStateStore creates a store for the state file at path.
func NewStateStore(path string, log zerolog.Logger) *StateStore {
	return &StateStore{path: path, log: log}
}

// Load reads the state file. Missing or unreadable state starts over empty.
func (s *StateStore) Load(_ context.Context) (*domain.AppState, error) {
	st := &domain.AppState{}
	if _, err := readJSON(s.path, st); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("state file unreadable, starting with empty state")
		st = &domain.AppState{}
	}
	if st.RecentMints == nil {
		st.RecentMints = []domain.RecentMint{}
	}
	return st, nil
}

// Save writes st atomically.
func (s *StateStore) Save(_ context.Context, st *domain.AppState) error {
	return writeJSON(s.path, st, 0o644)
}
