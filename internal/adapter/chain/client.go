// Package chain talks to Solana through JSON-RPC and handles wallet key material.
package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/metrics"
	"multiwallet-trader/pkg/apperror"
	"multiwallet-trader/pkg/retrier"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Limiter paces calls to the RPC node.
type Limiter interface {
	Acquire(ctx context.Context) error
}

// Config configures the RPC client.
type Config struct {
	URL string
	// MetadataURL serves DAS getAsset; empty means URL.
	MetadataURL    string
	Commitment     string
	RetryBackoff   []time.Duration
	MaxRetries     int
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// Client implements ports.ChainClient on solana-go's RPC client.
type Client struct {
	rpc        *rpc.Client
	meta       *rpc.Client
	limiter    Limiter
	commitment rpc.CommitmentType
	retry      *retrier.Retrier
	cfg        Config
	log        zerolog.Logger
}

// NewClient creates a chain client for cfg.URL.
func NewClient(cfg Config, limiter Limiter, log zerolog.Logger) *Client {
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 90 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 1200 * time.Millisecond
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	if cfg.MetadataURL == "" {
		cfg.MetadataURL = cfg.URL
	}

	c := &Client{
		rpc:        rpc.New(cfg.URL),
		meta:       rpc.New(cfg.MetadataURL),
		limiter:    limiter,
		commitment: commitment(cfg.Commitment),
		cfg:        cfg,
		log:        log,
	}
	c.retry = retrier.New(
		retrier.WithSchedule(cfg.RetryBackoff...),
		retrier.WithMaxRetries(cfg.MaxRetries),
		retrier.WithRetryIf(IsTransient),
		retrier.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			c.log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("rpc call failed, retrying")
		}),
	)
	return c
}

func commitment(s string) rpc.CommitmentType {
	switch s {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}

// GetBalance returns the native balance of identity in SOL.
func (c *Client) GetBalance(ctx context.Context, identity string) (float64, error) {
	owner, err := parseKey(identity)
	if err != nil {
		return 0, err
	}

	lamports, err := query(c, ctx, "getBalance", func(ctx context.Context) (uint64, error) {
		out, err := c.rpc.GetBalance(ctx, owner, c.commitment)
		if err != nil {
			return 0, err
		}
		return out.Value, nil
	})
	if err != nil {
		return 0, err
	}
	return decimal.NewFromInt(int64(lamports)).Shift(-9).InexactFloat64(), nil
}

// GetTokenBalance sums the ui amounts of every token account identity holds for token.
func (c *Client) GetTokenBalance(ctx context.Context, identity, token string) (float64, error) {
	owner, err := parseKey(identity)
	if err != nil {
		return 0, err
	}
	mint, err := parseKey(token)
	if err != nil {
		return 0, err
	}

	return query(c, ctx, "getTokenAccountsByOwner", func(ctx context.Context) (float64, error) {
		out, err := c.rpc.GetTokenAccountsByOwner(ctx, owner,
			&rpc.GetTokenAccountsConfig{Mint: &mint},
			&rpc.GetTokenAccountsOpts{Commitment: c.commitment, Encoding: solana.EncodingJSONParsed},
		)
		if err != nil {
			return 0, err
		}

		total := decimal.Zero
		for _, acc := range out.Value {
			if acc == nil || acc.Account.Data == nil {
				continue
			}
			amount, err := parsedUIAmount(acc.Account.Data.GetRawJSON())
			if err != nil {
				c.log.Debug().Err(err).Str("account", acc.Pubkey.String()).Msg("skipping unparsable token account")
				continue
			}
			total = total.Add(amount)
		}
		return total.InexactFloat64(), nil
	})
}

type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			TokenAmount struct {
				UIAmountString string   `json:"uiAmountString"`
				UIAmount       *float64 `json:"uiAmount"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

func parsedUIAmount(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 {
		return decimal.Zero, errors.New("account data is not jsonParsed")
	}
	var acc parsedTokenAccount
	if err := json.Unmarshal(raw, &acc); err != nil {
		return decimal.Zero, err
	}
	amt := acc.Parsed.Info.TokenAmount
	if amt.UIAmountString != "" {
		return decimal.NewFromString(amt.UIAmountString)
	}
	if amt.UIAmount != nil {
		return decimal.NewFromFloat(*amt.UIAmount), nil
	}
	return decimal.Zero, nil
}

// Submit sends signed without preflight and returns its signature once the node accepts it.
func (c *Client) Submit(ctx context.Context, signed []byte) (string, error) {
	var sig solana.Signature
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		if err := c.limiter.Acquire(ctx); err != nil {
			return err
		}
		var err error
		sig, err = c.rpc.SendRawTransactionWithOpts(ctx, signed, rpc.TransactionOpts{
			SkipPreflight:       true,
			PreflightCommitment: c.commitment,
		})
		metrics.RPCRequests.WithLabelValues("sendTransaction", metrics.Outcome(err)).Inc()
		return err
	})
	if err != nil {
		return "", apperror.SubmissionFailed(err)
	}
	return sig.String(), nil
}

// Confirm polls the signature status until it is confirmed, rejected or timeout passes.
// Polling errors are ignored; a timeout yields ConfirmationPending.
func (c *Client) Confirm(ctx context.Context, signature string, timeout time.Duration) (domain.Confirmation, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return "", apperror.Validation(fmt.Sprintf("invalid signature %q", signature))
	}
	if timeout <= 0 {
		timeout = c.cfg.ConfirmTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		var st *rpc.SignatureStatusesResult
		err := c.limiter.Acquire(ctx)
		if err == nil {
			st, err = c.status(ctx, sig, false)
			metrics.RPCRequests.WithLabelValues("getSignatureStatuses", metrics.Outcome(err)).Inc()
		}
		switch {
		case err != nil:
			c.log.Debug().Err(err).Str("signature", signature).Msg("status poll failed")
		case st != nil && st.Err != nil:
			payload, _ := json.Marshal(st.Err)
			return "", apperror.TransactionRejected(string(payload))
		case st != nil && (st.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			st.ConfirmationStatus == rpc.ConfirmationStatusFinalized):
			return domain.ConfirmationConfirmed, nil
		}

		if retrier.Sleep(ctx, c.cfg.PollInterval) != nil {
			return domain.ConfirmationPending, nil
		}
	}
}

// SignatureStatus looks signature up once, searching the transaction history.
func (c *Client) SignatureStatus(ctx context.Context, signature string) (*domain.TxStatus, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("invalid signature %q", signature))
	}

	st, err := query(c, ctx, "getSignatureStatuses", func(ctx context.Context) (*rpc.SignatureStatusesResult, error) {
		return c.status(ctx, sig, true)
	})
	if err != nil {
		return nil, err
	}

	out := &domain.TxStatus{Signature: signature}
	if st != nil {
		out.Status = string(st.ConfirmationStatus)
		out.Confirmations = st.Confirmations
		out.Slot = st.Slot
		out.Err = st.Err
	}
	return out, nil
}

func (c *Client) status(ctx context.Context, sig solana.Signature, history bool) (*rpc.SignatureStatusesResult, error) {
	out, err := c.rpc.GetSignatureStatuses(ctx, history, sig)
	if err != nil {
		return nil, err
	}
	if out == nil || len(out.Value) == 0 {
		return nil, nil
	}
	return out.Value[0], nil
}

// BuildNativeTransfer returns an unsigned system transfer of lamports from from to to.
func (c *Client) BuildNativeTransfer(ctx context.Context, from, to string, lamports uint64, feePayer string) ([]byte, error) {
	src, err := parseKey(from)
	if err != nil {
		return nil, err
	}
	dst, err := parseKey(to)
	if err != nil {
		return nil, err
	}
	payer, err := parseKey(feePayer)
	if err != nil {
		return nil, err
	}

	return c.buildTransaction(ctx, []solana.Instruction{system.NewTransferInstruction(lamports, src, dst).Build()}, payer)
}

// buildTransaction assembles ixs under a recent blockhash and returns the unsigned bytes.
func (c *Client) buildTransaction(ctx context.Context, ixs []solana.Instruction, payer solana.PublicKey) ([]byte, error) {
	blockhash, err := query(c, ctx, "getLatestBlockhash", func(ctx context.Context) (solana.Hash, error) {
		out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
		if err != nil {
			return solana.Hash{}, err
		}
		return out.Value.Blockhash, nil
	})
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(ixs, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build transaction: %w", err))
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode transaction: %w", err))
	}
	return raw, nil
}

// Ping implements ports.HealthChecker.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.rpc.GetHealth(ctx)
	return err
}

// Name implements ports.HealthChecker.
func (c *Client) Name() string { return "solana-rpc" }

// query runs a paced read with the transient retry schedule. Exhaustion is a TransientBackend error.
func query[T any](c *Client, ctx context.Context, method string, fn func(ctx context.Context) (T, error)) (T, error) {
	out, err := retrier.DoWithData(c.retry, ctx, func(ctx context.Context) (T, error) {
		if err := c.limiter.Acquire(ctx); err != nil {
			var zero T
			return zero, err
		}
		v, err := fn(ctx)
		metrics.RPCRequests.WithLabelValues(method, metrics.Outcome(err)).Inc()
		return v, err
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return out, err
		}
		if IsTransient(err) {
			return out, apperror.TransientBackend(fmt.Errorf("%s: %w", method, err))
		}
		return out, apperror.BackendFailure(fmt.Errorf("%s: %w", method, err))
	}
	return out, nil
}

var transientMarkers = []string{
	"429", "too many requests", "rate limit",
	"timeout", "timed out", "deadline exceeded",
	"connection reset", "connection refused", "eof",
	"500", "502", "503", "504",
	"bad gateway", "service unavailable", "gateway timeout",
}

// IsTransient reports whether err looks like a temporary RPC failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range transientMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

func parseKey(s string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(strings.TrimSpace(s))
	if err != nil {
		return solana.PublicKey{}, apperror.Validation(fmt.Sprintf("invalid address %q", s))
	}
	return pk, nil
}
