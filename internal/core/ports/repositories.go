package ports

import (
	"context"

	"multiwallet-trader/internal/core/domain"
)

// WalletStore persists the wallet registry as one document.
// Load returns an empty document, not an error, when nothing has been saved yet.
type WalletStore interface {
	Load(ctx context.Context) (*domain.RegistryDocument, error)
	Save(ctx context.Context, doc *domain.RegistryDocument) error
}

// StateStore persists the small application state document.
type StateStore interface {
	Load(ctx context.Context) (*domain.AppState, error)
	Save(ctx context.Context, state *domain.AppState) error
}

// SnapshotStore keeps the last full balance snapshot per token, best effort.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error
	// LoadSnapshot returns nil, nil when no snapshot exists for token.
	LoadSnapshot(ctx context.Context, token string) (*domain.BalanceSnapshot, error)
}
