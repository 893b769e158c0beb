package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	maxGenerateCount    = 500
	defaultWalletPrefix = "buyer"
)

// WalletRegistryImpl implements ports.WalletRegistry.
// Every load-modify-save runs under mu, so concurrent requests cannot lose updates.
type WalletRegistryImpl struct {
	store  ports.WalletStore
	keys   ports.Keyring
	events ports.EventStream
	log    zerolog.Logger

	mu sync.Mutex
}

// NewWalletRegistry creates a new WalletRegistryImpl.
func NewWalletRegistry(store ports.WalletStore, keys ports.Keyring, events ports.EventStream, log zerolog.Logger) *WalletRegistryImpl {
	return &WalletRegistryImpl{
		store:  store,
		keys:   keys,
		events: events,
		log:    log,
	}
}

// List returns the whole registry.
func (r *WalletRegistryImpl) List(ctx context.Context) (*domain.RegistryDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Generate creates count new buyer wallets named prefix-NNNN, continuing from the
// current buyer count.
func (r *WalletRegistryImpl) Generate(ctx context.Context, count int, defaultBuy float64, prefix string) ([]domain.WalletRecord, error) {
	if count < 1 || count > maxGenerateCount {
		return nil, apperror.Validation(fmt.Sprintf("count must be between 1 and %d", maxGenerateCount))
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultWalletPrefix
	}

	var (
		created []domain.WalletRecord
		total   int
	)
	err := r.mutate(ctx, func(doc *domain.RegistryDocument) error {
		start := len(doc.Buyers)
		created = make([]domain.WalletRecord, 0, count)
		for i := 0; i < count; i++ {
			pub, secret, err := r.keys.Generate()
			if err != nil {
				return apperror.InternalError(fmt.Errorf("generate keypair: %w", err))
			}
			created = append(created, domain.WalletRecord{
				Name:           fmt.Sprintf("%s-%04d", prefix, start+i+1),
				PublicKey:      pub,
				SecretKey:      secret,
				BuyAmountFixed: positive(defaultBuy),
				Role:           domain.WalletRoleBuyer,
			})
		}
		doc.Buyers = append(doc.Buyers, created...)
		total = len(doc.Buyers)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.events.Publish(domain.CategoryWallets, "wallets generated", map[string]interface{}{
		"count": count,
		"total": total,
	})
	return created, nil
}

// AddFromSecret imports a buyer wallet from a base58 or JSON-array secret.
func (r *WalletRegistryImpl) AddFromSecret(ctx context.Context, secret, name string, buyFixed float64) (domain.WalletRecord, error) {
	pub, normalized, err := r.keys.Parse(strings.TrimSpace(secret))
	if err != nil {
		if apperror.KindOf(err) == apperror.KindValidation {
			return domain.WalletRecord{}, err
		}
		return domain.WalletRecord{}, apperror.Validation(fmt.Sprintf("invalid secret key: %v", err))
	}

	var rec domain.WalletRecord
	err = r.mutate(ctx, func(doc *domain.RegistryDocument) error {
		if doc.Contains(pub) {
			return apperror.ErrDuplicateWallet(pub)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("%s-%04d", defaultWalletPrefix, len(doc.Buyers)+1)
		}
		rec = domain.WalletRecord{
			Name:           name,
			PublicKey:      pub,
			SecretKey:      normalized,
			BuyAmountFixed: positive(buyFixed),
			Role:           domain.WalletRoleBuyer,
		}
		doc.Buyers = append(doc.Buyers, rec)
		return nil
	})
	if err != nil {
		return domain.WalletRecord{}, err
	}

	r.events.Publish(domain.CategoryWallets, "wallet imported", map[string]string{"wallet": pub, "name": rec.Name})
	return rec, nil
}

// Remove deletes a buyer wallet. The dev wallet cannot be removed.
func (r *WalletRegistryImpl) Remove(ctx context.Context, publicKey string) error {
	err := r.mutate(ctx, func(doc *domain.RegistryDocument) error {
		idx := doc.BuyerIndex(publicKey)
		if idx < 0 {
			if doc.Dev != nil && doc.Dev.PublicKey == publicKey {
				return apperror.Validation("the dev wallet cannot be removed")
			}
			return apperror.ErrWalletNotFound(publicKey)
		}
		doc.Buyers = append(doc.Buyers[:idx], doc.Buyers[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	r.events.Publish(domain.CategoryWallets, "wallet removed", map[string]string{"wallet": publicKey})
	return nil
}

// Rename changes the display name of a buyer or the dev wallet.
func (r *WalletRegistryImpl) Rename(ctx context.Context, publicKey, name string) (domain.WalletRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.WalletRecord{}, apperror.Validation("name is required")
	}

	var rec domain.WalletRecord
	err := r.mutate(ctx, func(doc *domain.RegistryDocument) error {
		switch idx := doc.BuyerIndex(publicKey); {
		case idx >= 0:
			doc.Buyers[idx].Name = name
			rec = doc.Buyers[idx]
		case doc.Dev != nil && doc.Dev.PublicKey == publicKey:
			doc.Dev.Name = name
			rec = *doc.Dev
		default:
			return apperror.ErrWalletNotFound(publicKey)
		}
		return nil
	})
	if err != nil {
		return domain.WalletRecord{}, err
	}

	r.events.Publish(domain.CategoryWallets, "wallet renamed", map[string]string{"wallet": publicKey, "name": name})
	return rec, nil
}

// UpdateOverrides applies per-wallet overrides. Unknown wallets are skipped;
// the number of updated wallets is returned.
func (r *WalletRegistryImpl) UpdateOverrides(ctx context.Context, updates []domain.OverrideUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, apperror.Validation("no overrides given")
	}

	updated := 0
	err := r.mutate(ctx, func(doc *domain.RegistryDocument) error {
		for _, u := range updates {
			switch idx := doc.BuyerIndex(u.PublicKey); {
			case idx >= 0:
				doc.Buyers[idx].ApplyOverrides(u)
				updated++
			case doc.Dev != nil && doc.Dev.PublicKey == u.PublicKey:
				doc.Dev.ApplyOverrides(u)
				updated++
			default:
				r.log.Debug().Str("wallet", u.PublicKey).Msg("override for unknown wallet skipped")
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.events.Publish(domain.CategoryWallets, "overrides updated", map[string]int{"updated": updated, "requested": len(updates)})
	return updated, nil
}

// PromoteToDev moves a buyer into the dev slot.
func (r *WalletRegistryImpl) PromoteToDev(ctx context.Context, publicKey string) (domain.WalletRecord, error) {
	var (
		dev  domain.WalletRecord
		prev string
	)
	err := r.mutate(ctx, func(doc *domain.RegistryDocument) error {
		if doc.Dev != nil {
			if doc.Dev.PublicKey == publicKey {
				return apperror.Validation("wallet is already the dev wallet")
			}
			prev = doc.Dev.PublicKey
		}
		if !doc.PromoteToDev(publicKey) {
			return apperror.ErrWalletNotFound(publicKey)
		}
		dev = *doc.Dev
		return nil
	})
	if err != nil {
		return domain.WalletRecord{}, err
	}

	r.events.Publish(domain.CategoryWallets, "dev promoted", map[string]string{"dev": publicKey, "previous": prev})
	return dev, nil
}

// InitDev creates the dev wallet unless one exists.
func (r *WalletRegistryImpl) InitDev(ctx context.Context) (domain.WalletRecord, bool, error) {
	var (
		dev     domain.WalletRecord
		created bool
	)
	err := r.mutate(ctx, func(doc *domain.RegistryDocument) error {
		if doc.Dev != nil {
			dev = *doc.Dev
			return errUnchanged
		}
		pub, secret, err := r.keys.Generate()
		if err != nil {
			return apperror.InternalError(fmt.Errorf("generate dev keypair: %w", err))
		}
		dev = domain.WalletRecord{Name: "dev", PublicKey: pub, SecretKey: secret, Role: domain.WalletRoleDev}
		doc.Dev = &dev
		created = true
		return nil
	})
	if err != nil {
		return domain.WalletRecord{}, false, err
	}

	if created {
		r.events.Publish(domain.CategoryWallets, "dev created", map[string]string{"dev": dev.PublicKey})
	}
	return dev, created, nil
}

// ExportSecret returns the base58 secret of a buyer or the dev wallet.
func (r *WalletRegistryImpl) ExportSecret(ctx context.Context, publicKey string) (string, error) {
	w, err := r.Find(ctx, publicKey)
	if err != nil {
		return "", err
	}
	r.log.Info().Str("wallet", publicKey).Msg("secret exported")
	r.events.Publish(domain.CategoryWallets, "secret exported", map[string]string{"wallet": publicKey})
	return w.SecretKey, nil
}

// Find looks a wallet up by public key.
func (r *WalletRegistryImpl) Find(ctx context.Context, publicKey string) (domain.WalletRecord, error) {
	doc, err := r.List(ctx)
	if err != nil {
		return domain.WalletRecord{}, err
	}
	w, ok := doc.Find(publicKey)
	if !ok {
		return domain.WalletRecord{}, apperror.ErrWalletNotFound(publicKey)
	}
	return w, nil
}

// Buyers returns every buyer, or the buyers named in subset in subset order.
// Names in subset that are not buyers are left out.
func (r *WalletRegistryImpl) Buyers(ctx context.Context, subset []string) ([]domain.WalletRecord, error) {
	doc, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(subset) == 0 {
		return doc.Buyers, nil
	}

	out := make([]domain.WalletRecord, 0, len(subset))
	for _, pk := range subset {
		if idx := doc.BuyerIndex(pk); idx >= 0 {
			out = append(out, doc.Buyers[idx])
		}
	}
	return out, nil
}

// Dev returns the dev wallet.
func (r *WalletRegistryImpl) Dev(ctx context.Context) (domain.WalletRecord, error) {
	doc, err := r.List(ctx)
	if err != nil {
		return domain.WalletRecord{}, err
	}
	if doc.Dev == nil {
		return domain.WalletRecord{}, apperror.ErrNoDevWallet()
	}
	return *doc.Dev, nil
}

// errUnchanged aborts a mutation without saving and without failing the call.
var errUnchanged = errors.New("registry unchanged")

// mutate runs fn on the loaded document and saves the result before returning.
func (r *WalletRegistryImpl) mutate(ctx context.Context, fn func(doc *domain.RegistryDocument) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}

	doc.Normalize()
	if err := r.store.Save(ctx, doc); err != nil {
		return apperror.InternalError(fmt.Errorf("save registry: %w", err))
	}
	return nil
}

func (r *WalletRegistryImpl) load(ctx context.Context) (*domain.RegistryDocument, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load registry: %w", err))
	}
	if doc == nil {
		doc = &domain.RegistryDocument{}
	}
	if doc.Buyers == nil {
		doc.Buyers = []domain.WalletRecord{}
	}
	doc.Normalize()
	return doc, nil
}

func positive(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
