package file

import (
	"context"

	"multiwallet-trader/internal/core/domain"
)

// walletEntry is the on-disk form of a wallet. Unlike the API form it carries the secret.
type walletEntry struct {
	Name        string  `json:"name"`
	PublicKey   string  `json:"publicKey"`
	SecretKey   string  `json:"secretKey"`
	BuySol      float64 `json:"buySol"`
	BuyPercent  float64 `json:"buyPercent"`
	SellPercent float64 `json:"sellPercent"`
}

type registryFile struct {
	Dev    *walletEntry  `json:"dev,omitempty"`
	Buyers []walletEntry `json:"buyers"`
}

func toEntry(w domain.WalletRecord) walletEntry {
	return walletEntry{
		Name:        w.Name,
		PublicKey:   w.PublicKey,
		SecretKey:   w.SecretKey,
		BuySol:      w.BuyAmountFixed,
		BuyPercent:  w.BuyAmountPercent,
		SellPercent: w.SellPercent,
	}
}

func (e walletEntry) record(role domain.WalletRole) domain.WalletRecord {
	return domain.WalletRecord{
		Name:             e.Name,
		PublicKey:        e.PublicKey,
		SecretKey:        e.SecretKey,
		BuyAmountFixed:   e.BuySol,
		BuyAmountPercent: e.BuyPercent,
		SellPercent:      e.SellPercent,
		Role:             role,
	}
}

// RegistryStore implements ports.WalletStore on a JSON file.
type RegistryStore struct {
	path string
}

// NewRegistryStore creates a store for the registry file at path.
func NewRegistryStore(path string) *RegistryStore {
	return &RegistryStore{path: path}
}

// Load reads the registry file. A missing file is an empty registry; a corrupt one is an error.
func (s *RegistryStore) Load(_ context.Context) (*domain.RegistryDocument, error) {
	var f registryFile
	if _, err := readJSON(s.path, &f); err != nil {
		return nil, err
	}

	doc := &domain.RegistryDocument{Buyers: make([]domain.WalletRecord, 0, len(f.Buyers))}
	if f.Dev != nil {
		dev := f.Dev.record(domain.WalletRoleDev)
		doc.Dev = &dev
	}
	for _, b := range f.Buyers {
		doc.Buyers = append(doc.Buyers, b.record(domain.WalletRoleBuyer))
	}
	return doc, nil
}

// Save writes doc atomically, readable by the owner only.
func (s *RegistryStore) Save(_ context.Context, doc *domain.RegistryDocument) error {
	f := registryFile{Buyers: make([]walletEntry, 0, len(doc.Buyers))}
	if doc.Dev != nil {
		dev := toEntry(*doc.Dev)
		f.Dev = &dev
	}
	for _, b := range doc.Buyers {
		f.Buyers = append(f.Buyers, toEntry(b))
	}
	return writeJSON(s.path, f, 0o600)
}
