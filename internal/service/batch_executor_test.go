package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports/mocks"
	"multiwallet-trader/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type executorTestDeps struct {
	exec    *BatchExecutor
	gateway *mocks.MockTradeGateway
	chain   *mocks.MockChainClient
	signer  *mocks.MockTxSigner
	bus     *EventBus
	ctrl    *gomock.Controller
}

func setupExecutor(t *testing.T, maxConcurrency int) *executorTestDeps {
	ctrl := gomock.NewController(t)
	d := &executorTestDeps{
		gateway: mocks.NewMockTradeGateway(ctrl),
		chain:   mocks.NewMockChainClient(ctrl),
		signer:  mocks.NewMockTxSigner(ctrl),
		bus:     NewEventBus(DefaultEventCapacity, zerolog.Nop()),
		ctrl:    ctrl,
	}
	d.exec = NewBatchExecutor(d.gateway, d.chain, d.signer, d.bus, ExecutorConfig{
		FeeBuffer:      0.03,
		MaxConcurrency: maxConcurrency,
		ConfirmTimeout: time.Second,
		RetryDelay:     func(int) time.Duration { return 0 },
	}, zerolog.Nop())
	return d
}

func wallet(i int) domain.WalletRecord {
	return domain.WalletRecord{
		Name:      fmt.Sprintf("buyer-%04d", i),
		PublicKey: fmt.Sprintf("W%d", i),
		SecretKey: fmt.Sprintf("S%d", i),
		Role:      domain.WalletRoleBuyer,
	}
}

func buyRequest(i int, sol float64) domain.TradeRequest {
	return domain.TradeRequest{
		Wallet: wallet(i),
		Token:  "MINT",
		Side:   domain.TradeSideBuy,
		Amount: domain.FixedAmount(sol),
		Pool:   "auto",
	}
}

// expectHappyPipeline makes build/sign/submit/confirm succeed for any wallet,
// returning "sig-<wallet>" as the signature.
func (d *executorTestDeps) expectHappyPipeline() {
	d.gateway.EXPECT().BuildTrade(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.BuildRequest) ([]byte, error) {
			return []byte("tx-" + req.PublicKey), nil
		}).AnyTimes()
	d.signer.EXPECT().Sign(gomock.Any(), gomock.Any()).DoAndReturn(
		func(unsigned []byte, _ ...string) ([]byte, error) {
			return append([]byte("signed-"), unsigned...), nil
		}).AnyTimes()
	d.chain.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, signed []byte) (string, error) {
			return "sig-" + string(signed[len("signed-tx-"):]), nil
		}).AnyTimes()
	d.chain.EXPECT().Confirm(gomock.Any(), gomock.Any(), time.Second).
		Return(domain.ConfirmationConfirmed, nil).AnyTimes()
}

func TestBatchExecutor_ThreeWalletScenario(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	d.chain.EXPECT().GetBalance(gomock.Any(), "W1").Return(1.0, nil)
	d.chain.EXPECT().GetBalance(gomock.Any(), "W2").Return(0.02, nil)
	d.chain.EXPECT().GetBalance(gomock.Any(), "W3").Return(1.0, nil)
	d.expectHappyPipeline()

	var (
		mu       sync.Mutex
		progress []domain.Progress
	)
	results := d.exec.Run(context.Background(), BatchJob{
		Category:    domain.CategoryBuy,
		Requests:    []domain.TradeRequest{buyRequest(1, 0.1), buyRequest(2, 0.1), buyRequest(3, 0.1)},
		Concurrency: 2,
		Retries:     2,
		OnProgress: func(p domain.Progress) {
			mu.Lock()
			progress = append(progress, p)
			mu.Unlock()
		},
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.Equal(t, "sig-W1", results[0].Signature)
	assert.Equal(t, domain.ConfirmationConfirmed, results[0].Confirmation)
	assert.InDelta(t, 0.1, results[0].Amount, 1e-9)

	assert.False(t, results[1].OK)
	assert.Equal(t, "W2", results[1].Wallet)
	assert.Equal(t, string(apperror.KindInsufficientFunds), results[1].ErrorKind)
	assert.Empty(t, results[1].Signature)

	assert.True(t, results[2].OK)
	assert.Equal(t, "sig-W3", results[2].Signature)

	require.Len(t, progress, 3)
	for i, p := range progress {
		assert.Equal(t, i+1, p.Done)
		assert.Equal(t, 3, p.Total)
	}
	assert.Equal(t, 1, progress[2].Fail)
	assert.Equal(t, 2, progress[2].OK)
}

func TestBatchExecutor_ResultsKeepInputOrder(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	// Earlier wallets finish later.
	d.chain.EXPECT().GetBalance(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, identity string) (float64, error) {
			var i int
			_, _ = fmt.Sscanf(identity, "W%d", &i)
			time.Sleep(time.Duration(10-i) * 3 * time.Millisecond)
			return 1, nil
		}).AnyTimes()
	d.expectHappyPipeline()

	reqs := make([]domain.TradeRequest, 10)
	for i := range reqs {
		reqs[i] = buyRequest(i, 0.05)
	}

	results := d.exec.Run(context.Background(), BatchJob{Category: domain.CategoryBuy, Requests: reqs, Concurrency: 5})

	require.Len(t, results, len(reqs))
	for i, r := range results {
		assert.Equal(t, reqs[i].Wallet.PublicKey, r.Wallet)
		assert.Equal(t, "sig-"+reqs[i].Wallet.PublicKey, r.Signature)
	}
}

func TestBatchExecutor_ConcurrencyBound(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		max       int
		wantBound int
	}{
		{name: "requested below max", requested: 2, max: 6, wantBound: 2},
		{name: "requested above max is clamped", requested: 20, max: 3, wantBound: 3},
		{name: "zero means sequential", requested: 0, max: 6, wantBound: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupExecutor(t, tt.max)
			defer d.ctrl.Finish()

			var active, peak int32
			d.chain.EXPECT().GetBalance(gomock.Any(), gomock.Any()).DoAndReturn(
				func(context.Context, string) (float64, error) {
					n := atomic.AddInt32(&active, 1)
					for {
						p := atomic.LoadInt32(&peak)
						if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					atomic.AddInt32(&active, -1)
					return 1, nil
				}).AnyTimes()
			d.expectHappyPipeline()

			reqs := make([]domain.TradeRequest, 12)
			for i := range reqs {
				reqs[i] = buyRequest(i, 0.01)
			}
			results := d.exec.Run(context.Background(), BatchJob{
				Category:    domain.CategoryBuy,
				Requests:    reqs,
				Concurrency: tt.requested,
			})

			assert.Len(t, results, 12)
			assert.LessOrEqual(t, int(atomic.LoadInt32(&peak)), tt.wantBound)
		})
	}
}

func TestBatchExecutor_RetriesTransientFailures(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	d.chain.EXPECT().GetBalance(gomock.Any(), "W1").Return(1.0, nil)
	gomock.InOrder(
		d.gateway.EXPECT().BuildTrade(gomock.Any(), gomock.Any()).Return(nil, apperror.RateLimited(errors.New("429"))),
		d.gateway.EXPECT().BuildTrade(gomock.Any(), gomock.Any()).Return(nil, apperror.TransientBackend(errors.New("502"))),
		d.gateway.EXPECT().BuildTrade(gomock.Any(), gomock.Any()).Return([]byte("tx"), nil),
	)
	d.signer.EXPECT().Sign([]byte("tx"), "S1").Return([]byte("signed"), nil)
	d.chain.EXPECT().Submit(gomock.Any(), []byte("signed")).Return("sig-1", nil)
	d.chain.EXPECT().Confirm(gomock.Any(), "sig-1", time.Second).Return(domain.ConfirmationPending, nil)

	results := d.exec.Run(context.Background(), BatchJob{
		Category: domain.CategoryBuy,
		Requests: []domain.TradeRequest{buyRequest(1, 0.1)},
		Retries:  2,
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].OK)
	assert.Equal(t, domain.ConfirmationPending, results[0].Confirmation)
}

func TestBatchExecutor_ExhaustedRetriesKeepLastError(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	d.chain.EXPECT().GetBalance(gomock.Any(), "W1").Return(1.0, nil)
	d.gateway.EXPECT().BuildTrade(gomock.Any(), gomock.Any()).
		Return(nil, apperror.TransientBackend(errors.New("503"))).Times(3)

	results := d.exec.Run(context.Background(), BatchJob{
		Category: domain.CategoryBuy,
		Requests: []domain.TradeRequest{buyRequest(1, 0.1)},
		Retries:  2,
	})

	assert.False(t, results[0].OK)
	assert.Equal(t, string(apperror.KindTransientBackend), results[0].ErrorKind)
	assert.Contains(t, results[0].Error, "503")
}

func TestBatchExecutor_ValidationIsNotRetried(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	d.chain.EXPECT().GetBalance(gomock.Any(), "W1").Return(1.0, nil)
	d.gateway.EXPECT().BuildTrade(gomock.Any(), gomock.Any()).
		Return(nil, apperror.Validation("bad mint")).Times(1)

	results := d.exec.Run(context.Background(), BatchJob{
		Category: domain.CategoryBuy,
		Requests: []domain.TradeRequest{buyRequest(1, 0.1)},
		Retries:  5,
	})

	assert.False(t, results[0].OK)
	assert.Equal(t, "bad mint", results[0].Error)
}

func TestBatchExecutor_RejectedKeepsSignature(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	d.chain.EXPECT().GetBalance(gomock.Any(), "W1").Return(1.0, nil)
	d.gateway.EXPECT().BuildTrade(gomock.Any(), gomock.Any()).Return([]byte("tx"), nil)
	d.signer.EXPECT().Sign(gomock.Any(), gomock.Any()).Return([]byte("signed"), nil)
	d.chain.EXPECT().Submit(gomock.Any(), gomock.Any()).Return("sig-bad", nil)
	d.chain.EXPECT().Confirm(gomock.Any(), "sig-bad", gomock.Any()).
		Return(domain.Confirmation(""), apperror.TransactionRejected(`{"InstructionError":[0,"Custom"]}`))

	results := d.exec.Run(context.Background(), BatchJob{
		Category: domain.CategoryBuy,
		Requests: []domain.TradeRequest{buyRequest(1, 0.1)},
	})

	assert.False(t, results[0].OK)
	assert.Equal(t, "sig-bad", results[0].Signature)
	assert.Equal(t, string(apperror.KindRejected), results[0].ErrorKind)
}

func TestBatchExecutor_RejectedIsNotResubmitted(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	d.chain.EXPECT().GetBalance(gomock.Any(), "W1").Return(1.0, nil)
	d.gateway.EXPECT().BuildTrade(gomock.Any(), gomock.Any()).Return([]byte("tx"), nil).Times(1)
	d.signer.EXPECT().Sign(gomock.Any(), gomock.Any()).Return([]byte("signed"), nil).Times(1)
	d.chain.EXPECT().Submit(gomock.Any(), gomock.Any()).Return("sig-landed", nil).Times(1)
	d.chain.EXPECT().Confirm(gomock.Any(), "sig-landed", gomock.Any()).
		Return(domain.Confirmation(""), apperror.TransactionRejected(`{"InstructionError":[2,{"Custom":6003}]}`)).Times(1)

	results := d.exec.Run(context.Background(), BatchJob{
		Category: domain.CategoryBuy,
		Requests: []domain.TradeRequest{buyRequest(1, 0.1)},
		Retries:  2,
	})

	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.Equal(t, "sig-landed", results[0].Signature)
	assert.Equal(t, string(apperror.KindRejected), results[0].ErrorKind)
}

func TestBatchExecutor_SellResolution(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	d.chain.EXPECT().GetTokenBalance(gomock.Any(), "W1", "MINT").Return(1000.0, nil)
	d.chain.EXPECT().GetTokenBalance(gomock.Any(), "W2", "MINT").Return(0.0, nil)

	var (
		mu     sync.Mutex
		builds = map[string]domain.BuildRequest{}
	)
	d.gateway.EXPECT().BuildTrade(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.BuildRequest) ([]byte, error) {
			mu.Lock()
			builds[req.PublicKey] = req
			mu.Unlock()
			return []byte("tx-" + req.PublicKey), nil
		}).AnyTimes()
	d.signer.EXPECT().Sign(gomock.Any(), gomock.Any()).Return([]byte("signed-tx-W"), nil).AnyTimes()
	d.chain.EXPECT().Submit(gomock.Any(), gomock.Any()).Return("sig", nil).AnyTimes()
	d.chain.EXPECT().Confirm(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ConfirmationConfirmed, nil).AnyTimes()

	sell := func(i int, spec domain.AmountSpec) domain.TradeRequest {
		return domain.TradeRequest{Wallet: wallet(i), Token: "MINT", Side: domain.TradeSideSell, Amount: spec}
	}
	results := d.exec.Run(context.Background(), BatchJob{
		Category:    domain.CategorySell,
		Requests:    []domain.TradeRequest{sell(1, domain.PercentAmount(50)), sell(2, domain.PercentAmount(100)), sell(3, domain.TokenAmount(7))},
		Concurrency: 3,
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.InDelta(t, 500, results[0].Amount, 1e-9)
	assert.False(t, builds["W1"].DenominatedInSol)
	assert.Equal(t, domain.TradeActionSell, builds["W1"].Action)

	assert.False(t, results[1].OK)
	assert.Equal(t, "no tokens to sell", results[1].Error)

	assert.True(t, results[2].OK)
	assert.Equal(t, 7.0, results[2].Amount)
}

func TestBatchExecutor_PreDecidedFailure(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	req := buyRequest(1, 0.1)
	req.Err = apperror.ErrWalletNotFound("W1")

	results := d.exec.Run(context.Background(), BatchJob{Category: domain.CategoryBuy, Requests: []domain.TradeRequest{req}})

	assert.False(t, results[0].OK)
	assert.Equal(t, string(apperror.KindNotFound), results[0].ErrorKind)
}

func TestBatchExecutor_IgnoresCallerCancellation(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.chain.EXPECT().GetBalance(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (float64, error) {
			assert.NoError(t, ctx.Err())
			return 1, nil
		}).Times(2)
	d.expectHappyPipeline()

	results := d.exec.Run(ctx, BatchJob{
		Category: domain.CategoryBuy,
		Requests: []domain.TradeRequest{buyRequest(1, 0.1), buyRequest(2, 0.1)},
	})
	assert.True(t, results[0].OK)
	assert.True(t, results[1].OK)
}

func TestBatchExecutor_PublishesProgress(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	d.chain.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Return(1.0, nil).Times(2)
	d.expectHappyPipeline()

	d.exec.Run(context.Background(), BatchJob{
		Category: domain.CategoryBuy,
		Requests: []domain.TradeRequest{buyRequest(1, 0.1), buyRequest(2, 0.1)},
	})

	var progress, oks int
	for _, e := range d.bus.Recent(0) {
		switch e.Message {
		case "progress":
			progress++
		case "buy ok":
			oks++
		}
	}
	assert.Equal(t, 2, progress)
	assert.Equal(t, 2, oks)
}

func TestBatchExecutor_EmptyJob(t *testing.T) {
	d := setupExecutor(t, 6)
	defer d.ctrl.Finish()

	assert.Empty(t, d.exec.Run(context.Background(), BatchJob{Category: domain.CategoryBuy}))
}
