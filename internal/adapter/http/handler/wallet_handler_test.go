package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWallets_List(t *testing.T) {
	d := setupRouter(t)
	d.registry.EXPECT().List(gomock.Any()).Return(&domain.RegistryDocument{
		Dev:    &domain.WalletRecord{Name: "dev", PublicKey: addrA, SecretKey: "SECRET", Role: domain.WalletRoleDev},
		Buyers: []domain.WalletRecord{{Name: "buyer-0001", PublicKey: addrB, SecretKey: "SECRET", Role: domain.WalletRoleBuyer}},
	}, nil)

	w := d.do(http.MethodGet, "/api/v1/wallets", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "SECRET")
	data := envelope(t, w)
	assert.Equal(t, float64(2), data["count"])
	assert.Equal(t, addrA, data["dev"].(map[string]interface{})["public_key"])
}

func TestWallets_Generate(t *testing.T) {
	t.Run("default amount", func(t *testing.T) {
		d := setupRouter(t)
		d.registry.EXPECT().Generate(gomock.Any(), 3, 0.02, "").
			Return([]domain.WalletRecord{{PublicKey: addrA}, {PublicKey: addrB}, {PublicKey: addrC}}, nil)

		w := d.do(http.MethodPost, "/api/v1/wallets/generate", map[string]interface{}{"count": 3})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("explicit amount", func(t *testing.T) {
		d := setupRouter(t)
		d.registry.EXPECT().Generate(gomock.Any(), 1, 0.5, "snipe").Return([]domain.WalletRecord{{PublicKey: addrA}}, nil)

		w := d.do(http.MethodPost, "/api/v1/wallets/generate", map[string]interface{}{"count": 1, "buy_amount": 0.5, "prefix": "snipe"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("count required", func(t *testing.T) {
		d := setupRouter(t)
		w := d.do(http.MethodPost, "/api/v1/wallets/generate", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VAL_001", errorCode(t, w))
	})
}

func TestWallets_Import(t *testing.T) {
	d := setupRouter(t)
	d.registry.EXPECT().AddFromSecret(gomock.Any(), "[1,2,3]", "imported", 0.1).
		Return(domain.WalletRecord{}, apperror.Validation("secret key must be 64 bytes"))

	w := d.do(http.MethodPost, "/api/v1/wallets/import", map[string]interface{}{"secret": "[1,2,3]", "name": "imported", "buy_amount": 0.1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	d.registry.EXPECT().AddFromSecret(gomock.Any(), "base58secret", "", 0.0).
		Return(domain.WalletRecord{}, apperror.ErrDuplicateWallet(addrA))
	w = d.do(http.MethodPost, "/api/v1/wallets/import", map[string]interface{}{"secret": "base58secret"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWallets_RemoveRenameExport(t *testing.T) {
	d := setupRouter(t)

	w := d.do(http.MethodDelete, "/api/v1/wallets/not-an-address", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	d.registry.EXPECT().Remove(gomock.Any(), addrB).Return(apperror.ErrWalletNotFound(addrB))
	w = d.do(http.MethodDelete, "/api/v1/wallets/"+addrB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	d.registry.EXPECT().Rename(gomock.Any(), addrB, "whale").Return(domain.WalletRecord{Name: "whale", PublicKey: addrB}, nil)
	w = d.do(http.MethodPut, "/api/v1/wallets/"+addrB+"/name", map[string]string{"name": " whale "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "whale", envelope(t, w)["name"])

	d.registry.EXPECT().ExportSecret(gomock.Any(), addrB).Return("SECRETB58", nil)
	w = d.do(http.MethodPost, "/api/v1/wallets/"+addrB+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "SECRETB58", envelope(t, w)["secret_key"])
}

func TestWallets_UpdateOverrides(t *testing.T) {
	d := setupRouter(t)
	d.registry.EXPECT().UpdateOverrides(gomock.Any(), []domain.OverrideUpdate{
		{PublicKey: addrA, BuyAmountPercent: 25},
		{PublicKey: addrB, BuyAmountFixed: 0.1, SellPercent: 50},
	}).Return(2, nil)

	w := d.do(http.MethodPut, "/api/v1/wallets/overrides", map[string]interface{}{
		"updates": []map[string]interface{}{
			{"public_key": addrA, "buy_amount_percent": 25},
			{"public_key": addrB, "buy_amount_fixed": 0.1, "sell_percent": 50},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), envelope(t, w)["updated"])
}

func TestWallets_Dev(t *testing.T) {
	d := setupRouter(t)
	dev := domain.WalletRecord{Name: "dev", PublicKey: addrA, Role: domain.WalletRoleDev}

	gomock.InOrder(
		d.registry.EXPECT().InitDev(gomock.Any()).Return(dev, true, nil),
		d.registry.EXPECT().InitDev(gomock.Any()).Return(dev, false, nil),
	)
	assert.Equal(t, http.StatusCreated, d.do(http.MethodPost, "/api/v1/wallets/dev/init", nil).Code)
	w := d.do(http.MethodPost, "/api/v1/wallets/dev/init", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, envelope(t, w)["created"])

	d.registry.EXPECT().PromoteToDev(gomock.Any(), addrB).Return(domain.WalletRecord{PublicKey: addrB, Role: domain.WalletRoleDev}, nil)
	w = d.do(http.MethodPost, "/api/v1/wallets/dev/promote", map[string]string{"public_key": addrB})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dev", envelope(t, w)["role"])
}

func TestWallets_MutationsAreAudited(t *testing.T) {
	d := setupRouter(t)
	d.registry.EXPECT().Remove(gomock.Any(), addrB).Return(nil)

	require.Equal(t, http.StatusOK, d.do(http.MethodDelete, "/api/v1/wallets/"+addrB, nil).Code)

	recent := d.events.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, domain.CategoryAPI, recent[0].Category)
	assert.Equal(t, "wallet removed", recent[0].Message)
}

// --- Balances and state ---

func TestBalances(t *testing.T) {
	snap := domain.NewBalanceSnapshot(addrC, []domain.WalletBalance{{PublicKey: addrA, Native: 1.5}}, time.Now())

	t.Run("cached snapshot", func(t *testing.T) {
		d := setupRouter(t)
		d.balances.EXPECT().Get(gomock.Any(), addrC).Return(snap, nil)

		w := d.do(http.MethodGet, "/api/v1/balances?token="+addrC, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, addrC, envelope(t, w)["mint"])
	})

	t.Run("subset bypass", func(t *testing.T) {
		d := setupRouter(t)
		d.balances.EXPECT().GetSubset(gomock.Any(), addrC, []string{addrA, addrB}).Return(snap, nil)

		w := d.do(http.MethodGet, "/api/v1/balances?token="+addrC+"&wallets="+addrA+",+"+addrB+",", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("native only", func(t *testing.T) {
		d := setupRouter(t)
		d.balances.EXPECT().Get(gomock.Any(), "").Return(domain.NewBalanceSnapshot("", nil, time.Now()), nil)

		assert.Equal(t, http.StatusOK, d.do(http.MethodGet, "/api/v1/balances", nil).Code)
	})

	t.Run("invalid wallet", func(t *testing.T) {
		d := setupRouter(t)
		assert.Equal(t, http.StatusBadRequest, d.do(http.MethodGet, "/api/v1/balances?wallets=nope", nil).Code)
	})
}

func TestState(t *testing.T) {
	d := setupRouter(t)

	d.state.EXPECT().Get(gomock.Any()).Return(&domain.AppState{Mint: addrC, RecentMints: []domain.RecentMint{}}, nil)
	w := d.do(http.MethodGet, "/api/v1/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, addrC, envelope(t, w)["mint"])

	d.state.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p domain.StatePatch) (*domain.AppState, error) {
			require.NotNil(t, p.Mint)
			assert.Empty(t, *p.Mint)
			assert.Nil(t, p.RecentMint)
			return &domain.AppState{RecentMints: []domain.RecentMint{}}, nil
		})
	w = d.do(http.MethodPatch, "/api/v1/state", map[string]interface{}{"mint": ""})
	assert.Equal(t, http.StatusOK, w.Code)

	w = d.do(http.MethodPatch, "/api/v1/state", map[string]interface{}{"mint": "bad mint"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
