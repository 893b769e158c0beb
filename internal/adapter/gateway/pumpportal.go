// Package gateway builds unsigned trade transactions through the PumpPortal trade-local API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/internal/metrics"
	"multiwallet-trader/pkg/apperror"
	"multiwallet-trader/pkg/retrier"

	"github.com/rs/zerolog"
)

// DefaultBackoff is used when the backend sends no Retry-After header.
var DefaultBackoff = []time.Duration{
	500 * time.Millisecond,
	time.Second,
	2 * time.Second,
	3 * time.Second,
	5 * time.Second,
}

// Limiter paces calls to the backend.
type Limiter interface {
	Acquire(ctx context.Context) error
}

// Config configures the PumpPortal client.
type Config struct {
	TradeURL   string
	Backoff    []time.Duration
	MaxRetries int
	Timeout    time.Duration
	// MaxRetryAfter caps a server-supplied Retry-After.
	MaxRetryAfter time.Duration
}

// PumpPortal implements ports.TradeGateway.
type PumpPortal struct {
	cfg     Config
	http    *http.Client
	limiter Limiter
	events  ports.EventStream
	sleep   func(ctx context.Context, d time.Duration) error
	log     zerolog.Logger
}

// NewPumpPortal creates a trade-local client.
func NewPumpPortal(cfg Config, limiter Limiter, events ports.EventStream, log zerolog.Logger) *PumpPortal {
	if len(cfg.Backoff) == 0 {
		cfg.Backoff = DefaultBackoff
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 8
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetryAfter <= 0 {
		cfg.MaxRetryAfter = 30 * time.Second
	}
	return &PumpPortal{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		events:  events,
		sleep:   retrier.Sleep,
		log:     log,
	}
}

type tradeBody struct {
	PublicKey        string                `json:"publicKey"`
	Action           string                `json:"action"`
	Mint             string                `json:"mint,omitempty"`
	DenominatedInSol string                `json:"denominatedInSol,omitempty"`
	Amount           *float64              `json:"amount,omitempty"`
	Slippage         *float64              `json:"slippage,omitempty"`
	PriorityFee      float64               `json:"priorityFee"`
	Pool             string                `json:"pool,omitempty"`
	TokenMetadata    *domain.TokenMetadata `json:"tokenMetadata,omitempty"`
}

func newTradeBody(req domain.BuildRequest) tradeBody {
	body := tradeBody{
		PublicKey:     req.PublicKey,
		Action:        string(req.Action),
		Mint:          req.Mint,
		PriorityFee:   req.PriorityFee,
		Pool:          req.Pool,
		TokenMetadata: req.Metadata,
	}
	if req.Action == domain.TradeActionCollectFees {
		return body
	}
	amount, slippage := req.Amount, req.Slippage
	body.Amount = &amount
	body.Slippage = &slippage
	body.DenominatedInSol = strconv.FormatBool(req.DenominatedInSol)
	return body
}

// BuildTrade returns the unsigned transaction for req. 429 and 5xx responses are retried,
// waiting Retry-After seconds when given and following the backoff schedule otherwise.
func (p *PumpPortal) BuildTrade(ctx context.Context, req domain.BuildRequest) ([]byte, error) {
	payload, err := json.Marshal(newTradeBody(req))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal trade body: %w", err))
	}

	for attempt := 0; ; attempt++ {
		if err := p.limiter.Acquire(ctx); err != nil {
			return nil, apperror.TransientBackend(err)
		}

		status, body, retryAfter, err := p.post(ctx, payload)
		if err != nil {
			return nil, apperror.TransientBackend(fmt.Errorf("trade-local %s: %w", req.Action, err))
		}

		switch {
		case status == http.StatusOK:
			p.events.Publish(domain.CategoryNet, "trade ok", map[string]interface{}{
				"action": req.Action,
				"status": status,
			})
			return body, nil

		case status == http.StatusTooManyRequests || status >= 500:
			cause := fmt.Errorf("trade-local %s: status %d: %s", req.Action, status, snippet(body))
			if attempt >= p.cfg.MaxRetries {
				if status == http.StatusTooManyRequests {
					return nil, apperror.RateLimited(cause)
				}
				return nil, apperror.TransientBackend(cause)
			}

			delay := retryAfter
			if delay <= 0 {
				delay = retrier.ScheduleDelay(p.cfg.Backoff, attempt)
			}
			delay = min(delay, p.cfg.MaxRetryAfter)
			metrics.GatewayRetries.WithLabelValues(strconv.Itoa(status)).Inc()
			p.events.Publish(domain.CategoryNet, "trade retry", map[string]interface{}{
				"action": req.Action,
				"status": status,
				"delay":  delay.Milliseconds(),
			})
			p.log.Warn().
				Str("action", string(req.Action)).
				Int("status", status).
				Dur("delay", delay).
				Msg("trade-local responded with retryable status")

			if err := p.sleep(ctx, delay); err != nil {
				return nil, apperror.TransientBackend(cause)
			}

		default:
			return nil, apperror.Validation(fmt.Sprintf("trade-local %s failed: %d %s", req.Action, status, snippet(body)))
		}
	}
}

func (p *PumpPortal) post(ctx context.Context, payload []byte) (int, []byte, time.Duration, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TradeURL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(httpReq)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, parseRetryAfter(resp.Header.Get("Retry-After")), nil
}

// parseRetryAfter reads a delay in whole seconds. Anything else yields zero.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
