package postgres

import (
	"context"
	"fmt"

	"multiwallet-trader/internal/core/domain"
)

// WalletStore implements ports.WalletStore. The registry is stored one row per wallet
// and replaced as a whole on every save.
type WalletStore struct {
	pool Pool
}

// NewWalletStore creates a new WalletStore.
func NewWalletStore(pool Pool) *WalletStore {
	return &WalletStore{pool: pool}
}

// Load reads the registry. An empty table yields an empty document.
func (s *WalletStore) Load(ctx context.Context) (*domain.RegistryDocument, error) {
	query := `SELECT public_key, name, secret_key, role, buy_amount_fixed, buy_amount_percent, sell_percent
		FROM wallets ORDER BY position`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query wallets: %w", err)
	}
	defer rows.Close()

	doc := &domain.RegistryDocument{Buyers: []domain.WalletRecord{}}
	for rows.Next() {
		var (
			w    domain.WalletRecord
			role string
		)
		if err := rows.Scan(&w.PublicKey, &w.Name, &w.SecretKey, &role,
			&w.BuyAmountFixed, &w.BuyAmountPercent, &w.SellPercent); err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		w.Role = domain.WalletRole(role)

		if w.Role == domain.WalletRoleDev {
			dev := w
			doc.Dev = &dev
			continue
		}
		doc.Buyers = append(doc.Buyers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallets: %w", err)
	}
	return doc, nil
}

// Save replaces the stored registry with doc in one transaction.
func (s *WalletStore) Save(ctx context.Context, doc *domain.RegistryDocument) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin wallet save: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM wallets`); err != nil {
		return fmt.Errorf("clear wallets: %w", err)
	}

	query := `INSERT INTO wallets (public_key, name, secret_key, role, buy_amount_fixed, buy_amount_percent, sell_percent, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, w := range doc.All() {
		if _, err := tx.Exec(ctx, query,
			w.PublicKey, w.Name, w.SecretKey, string(w.Role),
			w.BuyAmountFixed, w.BuyAmountPercent, w.SellPercent, i,
		); err != nil {
			return fmt.Errorf("insert wallet %s: %w", w.PublicKey, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit wallet save: %w", err)
	}
	return nil
}
