package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type cacheTestDeps struct {
	cache     *BalanceCache
	chain     *mocks.MockChainClient
	registry  *mocks.MockWalletRegistry
	snapshots *mocks.MockSnapshotStore
	bus       *EventBus
	clock     *fakeClock
	ctrl      *gomock.Controller
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func setupBalanceCache(t *testing.T) *cacheTestDeps {
	ctrl := gomock.NewController(t)
	d := &cacheTestDeps{
		chain:     mocks.NewMockChainClient(ctrl),
		registry:  mocks.NewMockWalletRegistry(ctrl),
		snapshots: mocks.NewMockSnapshotStore(ctrl),
		bus:       NewEventBus(DefaultEventCapacity, zerolog.Nop()),
		clock:     &fakeClock{now: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)},
		ctrl:      ctrl,
	}
	d.cache = NewBalanceCache(d.chain, d.registry, d.snapshots, d.bus, BalanceCacheConfig{
		TTL:    10 * time.Second,
		Fanout: 3,
	}, zerolog.Nop())
	d.cache.now = d.clock.Now
	return d
}

func testRegistry() *domain.RegistryDocument {
	doc := &domain.RegistryDocument{
		Dev: &domain.WalletRecord{Name: "dev", PublicKey: "D"},
		Buyers: []domain.WalletRecord{
			{Name: "buyer-0001", PublicKey: "B1"},
			{Name: "buyer-0002", PublicKey: "B2"},
		},
	}
	doc.Normalize()
	return doc
}

func (d *cacheTestDeps) expectBalances(token string) {
	d.chain.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Return(1.0, nil).AnyTimes()
	d.chain.EXPECT().GetTokenBalance(gomock.Any(), gomock.Any(), token).Return(100.0, nil).AnyTimes()
}

func TestBalanceCache_FreshEntryIsReturnedAsIs(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil).Times(1)
	d.expectBalances("MINT")
	d.snapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	first, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)

	d.clock.Advance(5 * time.Second)
	second, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)

	assert.Equal(t, first.FetchedAt, second.FetchedAt)
	assert.Equal(t, first, second)
	require.Len(t, first.Wallets, 3)
	assert.Equal(t, "D", first.Wallets[0].PublicKey)
	assert.Equal(t, domain.WalletRoleDev, first.Wallets[0].Role)
	assert.InDelta(t, 3.0, first.Totals.Native, 1e-9)
	assert.InDelta(t, 300.0, first.Totals.Token, 1e-9)
	assert.False(t, first.Stale)
}

func TestBalanceCache_ExpiredEntryIsRefreshed(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil).Times(2)
	d.expectBalances("MINT")
	d.snapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	first, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)

	d.clock.Advance(10 * time.Second)
	second, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)

	assert.True(t, second.FetchedAt.After(first.FetchedAt))
}

func TestBalanceCache_SingleFlight(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	release := make(chan struct{})
	d.registry.EXPECT().List(gomock.Any()).DoAndReturn(func(context.Context) (*domain.RegistryDocument, error) {
		<-release
		return testRegistry(), nil
	}).Times(1)
	d.expectBalances("MINT")
	d.snapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	const callers = 20
	var wg sync.WaitGroup
	results := make([]domain.BalanceSnapshot, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := d.cache.Get(context.Background(), "MINT")
			assert.NoError(t, err)
			results[i] = s
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, s := range results {
		assert.Equal(t, results[0].FetchedAt, s.FetchedAt)
	}
}

func TestBalanceCache_TokensAreIndependent(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil).Times(2)
	d.chain.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Return(1.0, nil).AnyTimes()
	d.chain.EXPECT().GetTokenBalance(gomock.Any(), gomock.Any(), "TokenA").Return(5.0, nil).Times(3)
	d.chain.EXPECT().GetTokenBalance(gomock.Any(), gomock.Any(), "TokenB").Return(7.0, nil).Times(3)
	d.snapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	a1, err := d.cache.Get(context.Background(), "TokenA")
	require.NoError(t, err)
	b, err := d.cache.Get(context.Background(), "TokenB")
	require.NoError(t, err)
	a2, err := d.cache.Get(context.Background(), "TokenA")
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, "TokenB", b.Token)
	assert.InDelta(t, 21.0, b.Totals.Token, 1e-9)
}

func TestBalanceCache_PerWalletErrorsStayInRow(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil)
	d.chain.EXPECT().GetBalance(gomock.Any(), "D").Return(2.0, nil)
	d.chain.EXPECT().GetBalance(gomock.Any(), "B1").Return(0.0, errors.New("rpc timeout"))
	d.chain.EXPECT().GetBalance(gomock.Any(), "B2").Return(1.0, nil)
	d.chain.EXPECT().GetTokenBalance(gomock.Any(), gomock.Any(), "MINT").Return(10.0, nil).Times(2)
	d.snapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	s, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)

	assert.False(t, s.Stale)
	assert.Empty(t, s.Wallets[0].Error)
	assert.Equal(t, "rpc timeout", s.Wallets[1].Error)
	assert.InDelta(t, 3.0, s.Totals.Native, 1e-9)
}

func TestBalanceCache_FallsBackToPreviousSnapshot(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	gomock.InOrder(
		d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil),
		d.registry.EXPECT().List(gomock.Any()).Return(nil, errors.New("disk gone")),
	)
	d.expectBalances("MINT")
	d.snapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	first, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)

	d.clock.Advance(time.Minute)
	second, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)

	assert.True(t, second.Stale)
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
	assert.Equal(t, first.Totals, second.Totals)

	var failures int
	for _, e := range d.bus.Recent(0) {
		if e.Message == "balance refresh failed" {
			failures++
		}
	}
	assert.Equal(t, 1, failures)
}

func TestBalanceCache_FallsBackToPersistedSnapshot(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	stored := domain.NewBalanceSnapshot("MINT", []domain.WalletBalance{{PublicKey: "D", Native: 4}}, d.clock.Now().Add(-time.Hour))
	d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil)
	d.chain.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Return(0.0, errors.New("503")).Times(3)
	d.snapshots.EXPECT().LoadSnapshot(gomock.Any(), "MINT").Return(&stored, nil)

	s, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)

	assert.True(t, s.Stale)
	assert.InDelta(t, 4.0, s.Totals.Native, 1e-9)
}

func TestBalanceCache_FallsBackToEmptySnapshot(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	d.registry.EXPECT().List(gomock.Any()).Return(nil, errors.New("disk gone"))
	d.snapshots.EXPECT().LoadSnapshot(gomock.Any(), "MINT").Return(nil, nil)

	s, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)

	assert.True(t, s.Stale)
	assert.Equal(t, "MINT", s.Token)
	assert.Empty(t, s.Wallets)
}

func TestBalanceCache_SubsetBypassesCache(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil).Times(2)
	d.chain.EXPECT().GetBalance(gomock.Any(), "B2").Return(1.5, nil).Times(2)
	d.chain.EXPECT().GetBalance(gomock.Any(), "X").Return(0.5, nil).Times(2)
	d.chain.EXPECT().GetTokenBalance(gomock.Any(), gomock.Any(), "MINT").Return(1.0, nil).Times(4)

	for i := 0; i < 2; i++ {
		s, err := d.cache.GetSubset(context.Background(), "MINT", []string{"B2", "X"})
		require.NoError(t, err)
		require.Len(t, s.Wallets, 2)
		assert.Equal(t, "buyer-0002", s.Wallets[0].Name)
		assert.Equal(t, "X", s.Wallets[1].PublicKey)
	}
}

func TestBalanceCache_Invalidate(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil).Times(2)
	d.expectBalances("MINT")
	d.snapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	_, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)
	d.cache.Invalidate("MINT")
	_, err = d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)
}

func TestBalanceCache_OnRefresh(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil)
	d.expectBalances("MINT")
	d.snapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	var got domain.BalanceSnapshot
	d.cache.OnRefresh(func(s domain.BalanceSnapshot) { got = s })

	s, err := d.cache.Get(context.Background(), "MINT")
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestBalanceCache_InvalidateAll(t *testing.T) {
	d := setupBalanceCache(t)
	defer d.ctrl.Finish()

	d.registry.EXPECT().List(gomock.Any()).Return(testRegistry(), nil).Times(4)
	d.chain.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Return(1.0, nil).AnyTimes()
	d.chain.EXPECT().GetTokenBalance(gomock.Any(), gomock.Any(), gomock.Any()).Return(1.0, nil).AnyTimes()
	d.snapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil).Times(4)

	for _, token := range []string{"A", "B"} {
		_, err := d.cache.Get(context.Background(), token)
		require.NoError(t, err)
	}
	d.cache.InvalidateAll()
	for _, token := range []string{"A", "B"} {
		_, err := d.cache.Get(context.Background(), token)
		require.NoError(t, err)
	}
}
