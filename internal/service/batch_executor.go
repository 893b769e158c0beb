package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/internal/metrics"
	"multiwallet-trader/pkg/apperror"
	"multiwallet-trader/pkg/retrier"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ExecutorConfig tunes the batch executor.
type ExecutorConfig struct {
	FeeBuffer      float64 // SOL kept aside when resolving buy amounts
	MaxConcurrency int
	ConfirmTimeout time.Duration
	// RetryDelay returns the pause before retry n (1 based). Nil uses 100ms+n*200ms plus jitter.
	RetryDelay func(n int) time.Duration
}

// BatchJob is one homogeneous set of trade requests.
type BatchJob struct {
	Category    string // event category, usually the trade side
	Requests    []domain.TradeRequest
	Concurrency int
	Retries     int
	OnProgress  func(domain.Progress)
}

// BatchExecutor runs trade requests with bounded concurrency and per-item fault isolation.
type BatchExecutor struct {
	gateway ports.TradeGateway
	chain   ports.ChainClient
	signer  ports.TxSigner
	events  ports.EventStream
	cfg     ExecutorConfig
	log     zerolog.Logger
}

// NewBatchExecutor creates a new BatchExecutor.
func NewBatchExecutor(
	gateway ports.TradeGateway,
	chain ports.ChainClient,
	signer ports.TxSigner,
	events ports.EventStream,
	cfg ExecutorConfig,
	log zerolog.Logger,
) *BatchExecutor {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 6
	}
	if cfg.RetryDelay == nil {
		cfg.RetryDelay = defaultRetryDelay
	}
	return &BatchExecutor{
		gateway: gateway,
		chain:   chain,
		signer:  signer,
		events:  events,
		cfg:     cfg,
		log:     log,
	}
}

func defaultRetryDelay(n int) time.Duration {
	return retrier.Jitter(100*time.Millisecond+time.Duration(n)*200*time.Millisecond, 60*time.Millisecond)
}

// Run executes every request and returns results in request order. It never aborts early:
// items keep running after ctx is cancelled, only values flow from ctx.
func (e *BatchExecutor) Run(ctx context.Context, job BatchJob) []domain.TradeResult {
	ctx = context.WithoutCancel(ctx)
	results := make([]domain.TradeResult, len(job.Requests))
	if len(job.Requests) == 0 {
		return results
	}

	concurrency := job.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > e.cfg.MaxConcurrency {
		concurrency = e.cfg.MaxConcurrency
	}

	var (
		mu       sync.Mutex
		progress = domain.Progress{Total: len(job.Requests)}
	)
	complete := func(r domain.TradeResult) {
		mu.Lock()
		defer mu.Unlock()
		progress.Done++
		if r.OK {
			progress.OK++
		} else {
			progress.Fail++
		}
		snapshot := progress
		e.events.Publish(job.Category, "progress", snapshot)
		if job.OnProgress != nil {
			job.OnProgress(snapshot)
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	for i, req := range job.Requests {
		g.Go(func() error {
			metrics.BatchInflight.Inc()
			defer metrics.BatchInflight.Dec()

			r, _ := e.execute(ctx, job.Category, req, job.Retries)
			results[i] = r
			complete(r)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Execute runs a single request without retries. The error is the failure recorded
// in the result, if any.
func (e *BatchExecutor) Execute(ctx context.Context, category string, req domain.TradeRequest) (domain.TradeResult, error) {
	return e.execute(context.WithoutCancel(ctx), category, req, 0)
}

func (e *BatchExecutor) execute(ctx context.Context, category string, req domain.TradeRequest, retries int) (domain.TradeResult, error) {
	res := domain.TradeResult{Wallet: req.Wallet.PublicKey, Name: req.Wallet.Name}
	side := string(req.Side)

	fail := func(err error) (domain.TradeResult, error) {
		res.OK = false
		res.Error, res.ErrorKind = describeError(err)
		metrics.TradesTotal.WithLabelValues(side, "error").Inc()
		e.events.Publish(category, fmt.Sprintf("%s fail", side), map[string]interface{}{
			"wallet": res.Wallet,
			"name":   res.Name,
			"error":  res.Error,
			"kind":   res.ErrorKind,
		})
		e.log.Warn().
			Str("wallet", res.Wallet).
			Str("side", side).
			Str("kind", res.ErrorKind).
			Msg(res.Error)
		return res, err
	}

	if req.Err != nil {
		return fail(req.Err)
	}

	amount, err := e.resolve(ctx, req)
	if err != nil {
		return fail(err)
	}
	res.Amount = amount

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			_ = retrier.Sleep(ctx, e.cfg.RetryDelay(attempt))
		}
		metrics.TradeAttempts.WithLabelValues(side).Inc()

		sig, conf, err := e.attempt(ctx, req, amount)
		if err == nil {
			res.OK = true
			res.Signature = sig
			res.Confirmation = conf
			metrics.TradesTotal.WithLabelValues(side, "ok").Inc()
			e.events.Publish(category, fmt.Sprintf("%s ok", side), map[string]interface{}{
				"wallet":       res.Wallet,
				"name":         res.Name,
				"signature":    sig,
				"amount":       amount,
				"confirmation": conf,
			})
			return res, nil
		}

		lastErr = err
		if !apperror.IsRetryable(err) {
			break
		}
		if attempt < retries {
			e.log.Debug().
				Err(err).
				Str("wallet", res.Wallet).
				Int("attempt", attempt+1).
				Msg("trade attempt failed, retrying")
		}
	}
	if sig := signatureOf(lastErr); sig != "" {
		res.Signature = sig
	}
	return fail(lastErr)
}

func (e *BatchExecutor) resolve(ctx context.Context, req domain.TradeRequest) (float64, error) {
	switch req.Side {
	case domain.TradeSideBuy:
		balance, err := e.chain.GetBalance(ctx, req.Wallet.PublicKey)
		if err != nil {
			return 0, err
		}
		return ResolveBuyAmount(req.Amount, balance, e.cfg.FeeBuffer)
	case domain.TradeSideSell:
		if req.Amount.Kind == domain.AmountTokens {
			return ResolveSellAmount(req.Amount, 0)
		}
		balance, err := e.chain.GetTokenBalance(ctx, req.Wallet.PublicKey, req.Token)
		if err != nil {
			return 0, err
		}
		return ResolveSellAmount(req.Amount, balance)
	default:
		return 0, apperror.Validation(fmt.Sprintf("unknown trade side %q", req.Side))
	}
}

// attempt builds, signs, submits and confirms one trade.
func (e *BatchExecutor) attempt(ctx context.Context, req domain.TradeRequest, amount float64) (string, domain.Confirmation, error) {
	action := domain.TradeActionBuy
	if req.Side == domain.TradeSideSell {
		action = domain.TradeActionSell
	}

	unsigned, err := e.gateway.BuildTrade(ctx, domain.BuildRequest{
		PublicKey:        req.Wallet.PublicKey,
		Action:           action,
		Mint:             req.Token,
		DenominatedInSol: req.Side == domain.TradeSideBuy,
		Amount:           amount,
		Slippage:         req.Slippage,
		PriorityFee:      req.PriorityFee,
		Pool:             req.Pool,
	})
	if err != nil {
		return "", "", err
	}

	return submitAndConfirm(ctx, e.chain, e.signer, unsigned, e.cfg.ConfirmTimeout, req.Wallet.SecretKey)
}

// submitAndConfirm signs unsigned with secrets, submits it and waits for confirmation.
func submitAndConfirm(
	ctx context.Context,
	chain ports.ChainClient,
	signer ports.TxSigner,
	unsigned []byte,
	timeout time.Duration,
	secrets ...string,
) (string, domain.Confirmation, error) {
	signed, err := signer.Sign(unsigned, secrets...)
	if err != nil {
		return "", "", err
	}

	sig, err := chain.Submit(ctx, signed)
	if err != nil {
		return "", "", err
	}

	conf, err := chain.Confirm(ctx, sig, timeout)
	if err != nil {
		return "", "", &signedError{signature: sig, err: err}
	}
	return sig, conf, nil
}

// signedError keeps the signature of a submitted transaction that failed on-chain.
type signedError struct {
	signature string
	err       error
}

func (e *signedError) Error() string { return e.err.Error() }
func (e *signedError) Unwrap() error { return e.err }

func signatureOf(err error) string {
	var se *signedError
	if errors.As(err, &se) {
		return se.signature
	}
	return ""
}

// describeError returns the client-facing message and kind of err.
func describeError(err error) (string, string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if appErr.Err != nil {
			msg = fmt.Sprintf("%s: %v", msg, appErr.Err)
		}
		return msg, string(appErr.Kind)
	}
	return err.Error(), string(apperror.KindInternal)
}
