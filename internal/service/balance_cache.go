package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/internal/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// BalanceCacheConfig tunes the balance cache.
type BalanceCacheConfig struct {
	TTL    time.Duration
	Fanout int // concurrent wallet queries during a full refresh
}

// BalanceCache implements ports.BalanceReader: a per-token TTL cache with
// single-flight refreshes in front of the chain client.
type BalanceCache struct {
	chain     ports.ChainClient
	registry  ports.WalletRegistry
	snapshots ports.SnapshotStore // optional
	events    ports.EventStream
	cfg       BalanceCacheConfig
	log       zerolog.Logger

	mu      sync.Mutex
	entries map[string]domain.BalanceSnapshot
	group   singleflight.Group

	now       func() time.Time
	onRefresh func(domain.BalanceSnapshot)
}

// NewBalanceCache creates a new BalanceCache. snapshots may be nil.
func NewBalanceCache(
	chain ports.ChainClient,
	registry ports.WalletRegistry,
	snapshots ports.SnapshotStore,
	events ports.EventStream,
	cfg BalanceCacheConfig,
	log zerolog.Logger,
) *BalanceCache {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.Fanout < 1 {
		cfg.Fanout = 6
	}
	return &BalanceCache{
		chain:     chain,
		registry:  registry,
		snapshots: snapshots,
		events:    events,
		cfg:       cfg,
		log:       log,
		entries:   make(map[string]domain.BalanceSnapshot),
		now:       time.Now,
	}
}

// OnRefresh registers fn to receive every successful full snapshot.
func (c *BalanceCache) OnRefresh(fn func(domain.BalanceSnapshot)) {
	c.onRefresh = fn
}

// Get returns the snapshot for token, refreshing it when it is older than the TTL.
// Concurrent callers for the same token share one refresh.
func (c *BalanceCache) Get(ctx context.Context, token string) (domain.BalanceSnapshot, error) {
	if s, ok := c.fresh(token); ok {
		metrics.BalanceCacheHits.WithLabelValues("hit").Inc()
		return s, nil
	}
	metrics.BalanceCacheHits.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(token, func() (interface{}, error) {
		// A caller that lost the race may arrive after the entry was refreshed.
		if s, ok := c.fresh(token); ok {
			return s, nil
		}
		return c.refresh(context.WithoutCancel(ctx), token), nil
	})
	if err != nil {
		return domain.BalanceSnapshot{}, err
	}
	return v.(domain.BalanceSnapshot), nil
}

// GetSubset queries exactly identities, bypassing the cache.
func (c *BalanceCache) GetSubset(ctx context.Context, token string, identities []string) (domain.BalanceSnapshot, error) {
	doc, err := c.registry.List(ctx)
	if err != nil {
		return domain.BalanceSnapshot{}, err
	}

	wallets := make([]domain.WalletRecord, 0, len(identities))
	for _, id := range identities {
		if w, ok := doc.Find(id); ok {
			wallets = append(wallets, w)
		} else {
			wallets = append(wallets, domain.WalletRecord{PublicKey: id})
		}
	}
	return domain.NewBalanceSnapshot(token, c.fetchRows(ctx, token, wallets), c.now().UTC()), nil
}

// Invalidate drops the cached snapshot for token.
func (c *BalanceCache) Invalidate(token string) {
	c.mu.Lock()
	delete(c.entries, token)
	c.mu.Unlock()
}

// InvalidateAll drops every cached snapshot.
func (c *BalanceCache) InvalidateAll() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

func (c *BalanceCache) fresh(token string) (domain.BalanceSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[token]
	if !ok || s.Age(c.now()) >= c.cfg.TTL {
		return domain.BalanceSnapshot{}, false
	}
	return s, true
}

// refresh fetches a full snapshot. It never fails: on error it degrades to the
// previous snapshot marked stale.
func (c *BalanceCache) refresh(ctx context.Context, token string) domain.BalanceSnapshot {
	start := c.now()
	defer func() { metrics.BalanceRefreshSeconds.Observe(c.now().Sub(start).Seconds()) }()

	doc, err := c.registry.List(ctx)
	if err != nil {
		return c.fallback(ctx, token, fmt.Errorf("loading registry: %w", err))
	}

	rows := c.fetchRows(ctx, token, doc.All())
	if err := allFailed(rows); err != nil {
		return c.fallback(ctx, token, err)
	}
	snapshot := domain.NewBalanceSnapshot(token, rows, c.now().UTC())

	c.mu.Lock()
	c.entries[token] = snapshot
	c.mu.Unlock()

	if c.snapshots != nil {
		if err := c.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			c.log.Warn().Err(err).Str("mint", token).Msg("failed to persist balance snapshot")
		}
	}
	if c.onRefresh != nil {
		c.onRefresh(snapshot)
	}

	c.events.Publish(domain.CategoryBalances, "balances refreshed", map[string]interface{}{
		"mint":    token,
		"wallets": len(snapshot.Wallets),
		"sol":     snapshot.Totals.Native,
		"token":   snapshot.Totals.Token,
	})
	return snapshot
}

func (c *BalanceCache) fallback(ctx context.Context, token string, cause error) domain.BalanceSnapshot {
	c.log.Error().Err(cause).Str("mint", token).Msg("balance refresh failed")
	c.events.Publish(domain.CategoryBalances, "balance refresh failed", map[string]interface{}{
		"mint":  token,
		"error": cause.Error(),
	})

	c.mu.Lock()
	prev, ok := c.entries[token]
	c.mu.Unlock()

	if !ok && c.snapshots != nil {
		if stored, err := c.snapshots.LoadSnapshot(ctx, token); err == nil && stored != nil {
			prev, ok = *stored, true
		}
	}
	if !ok {
		prev = domain.NewBalanceSnapshot(token, nil, c.now().UTC())
	}
	prev.Stale = true
	return prev
}

// fetchRows queries native and token balances for wallets with bounded fan-out.
// Row order follows wallets; per-wallet errors stay in their row.
func (c *BalanceCache) fetchRows(ctx context.Context, token string, wallets []domain.WalletRecord) []domain.WalletBalance {
	rows := make([]domain.WalletBalance, len(wallets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Fanout)
	for i, w := range wallets {
		g.Go(func() error {
			row := domain.WalletBalance{PublicKey: w.PublicKey, Name: w.Name, Role: w.Role}

			native, err := c.chain.GetBalance(gctx, w.PublicKey)
			if err != nil {
				row.Error = err.Error()
				rows[i] = row
				return nil
			}
			row.Native = native

			if token != "" {
				amount, err := c.chain.GetTokenBalance(gctx, w.PublicKey, token)
				if err != nil {
					row.Error = err.Error()
				}
				row.Token = amount
			}
			rows[i] = row
			return nil
		})
	}
	_ = g.Wait()
	return rows
}

// allFailed returns an error when there are rows and none of them could be queried.
func allFailed(rows []domain.WalletBalance) error {
	if len(rows) == 0 {
		return nil
	}
	for _, r := range rows {
		if r.Error == "" {
			return nil
		}
	}
	return fmt.Errorf("all %d balance queries failed: %s", len(rows), rows[0].Error)
}
