package service

import (
	"context"
	"fmt"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/pkg/apperror"
)

// SealedWalletStore encrypts key material on the way into a WalletStore and decrypts
// it on the way out. Plain secrets found on load are accepted and sealed on next save.
type SealedWalletStore struct {
	inner ports.WalletStore
	enc   ports.EncryptionService
}

// NewSealedWalletStore wraps inner with encryption at rest.
func NewSealedWalletStore(inner ports.WalletStore, enc ports.EncryptionService) *SealedWalletStore {
	return &SealedWalletStore{inner: inner, enc: enc}
}

// Load reads the registry and decrypts every secret.
func (s *SealedWalletStore) Load(ctx context.Context) (*domain.RegistryDocument, error) {
	doc, err := s.inner.Load(ctx)
	if err != nil || doc == nil {
		return doc, err
	}

	open := func(w *domain.WalletRecord) error {
		if !IsSealed(w.SecretKey) {
			return nil
		}
		plain, err := s.enc.Decrypt(w.SecretKey)
		if err != nil {
			return apperror.ErrEncryptionFailure(fmt.Errorf("decrypt secret of %s: %w", w.PublicKey, err))
		}
		w.SecretKey = plain
		return nil
	}

	if doc.Dev != nil {
		if err := open(doc.Dev); err != nil {
			return nil, err
		}
	}
	for i := range doc.Buyers {
		if err := open(&doc.Buyers[i]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Save encrypts every secret and writes a sealed copy, leaving doc untouched.
func (s *SealedWalletStore) Save(ctx context.Context, doc *domain.RegistryDocument) error {
	seal := func(w domain.WalletRecord) (domain.WalletRecord, error) {
		if w.SecretKey == "" || IsSealed(w.SecretKey) {
			return w, nil
		}
		sealed, err := s.enc.Encrypt(w.SecretKey)
		if err != nil {
			return w, apperror.ErrEncryptionFailure(fmt.Errorf("encrypt secret of %s: %w", w.PublicKey, err))
		}
		w.SecretKey = sealed
		return w, nil
	}

	out := &domain.RegistryDocument{Buyers: make([]domain.WalletRecord, 0, len(doc.Buyers))}
	if doc.Dev != nil {
		dev, err := seal(*doc.Dev)
		if err != nil {
			return err
		}
		out.Dev = &dev
	}
	for _, w := range doc.Buyers {
		sealed, err := seal(w)
		if err != nil {
			return err
		}
		out.Buyers = append(out.Buyers, sealed)
	}
	return s.inner.Save(ctx, out)
}
