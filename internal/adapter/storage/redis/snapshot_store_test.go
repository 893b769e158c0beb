package redis

import (
	"context"
	"testing"
	"time"

	"multiwallet-trader/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore_RoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSnapshotStore(client, time.Hour)
	ctx := context.Background()

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	snap := domain.NewBalanceSnapshot("MINT", []domain.WalletBalance{
		{PublicKey: "D", Role: domain.WalletRoleDev, Native: 1.25},
		{PublicKey: "B1", Role: domain.WalletRoleBuyer, Native: 0.5, Token: 1000, Error: ""},
	}, at)
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	assert.Equal(t, time.Hour, mr.TTL("mwt:balances:MINT"))

	got, err := store.LoadSnapshot(ctx, "MINT")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "MINT", got.Token)
	assert.Len(t, got.Wallets, 2)
	assert.InDelta(t, 1.75, got.Totals.Native, 1e-9)
	assert.True(t, at.Equal(got.FetchedAt))
}

func TestSnapshotStore_Missing(t *testing.T) {
	_, client := newTestClient(t)

	got, err := NewSnapshotStore(client, 0).LoadSnapshot(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotStore_NativeOnlyKey(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSnapshotStore(client, 0)

	require.NoError(t, store.SaveSnapshot(context.Background(), domain.NewBalanceSnapshot("", nil, time.Now())))
	assert.True(t, mr.Exists("mwt:balances:_native"))
	assert.Equal(t, DefaultSnapshotTTL, mr.TTL("mwt:balances:_native"))
}

func TestSnapshotStore_CorruptValue(t *testing.T) {
	mr, client := newTestClient(t)
	require.NoError(t, mr.Set("mwt:balances:MINT", "{oops"))

	_, err := NewSnapshotStore(client, 0).LoadSnapshot(context.Background(), "MINT")
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	mr, client := newTestClient(t)
	hc := NewHealthCheck(client)

	assert.Equal(t, "redis", hc.Name())
	assert.NoError(t, hc.Ping(context.Background()))

	mr.Close()
	assert.Error(t, hc.Ping(context.Background()))
}
