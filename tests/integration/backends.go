package integration

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/pkg/apperror"

	"github.com/gagliardetto/solana-go"
)

const (
	defaultNative = 1.0
	defaultTokens = 1000.0
)

// fakeChain is an in-memory ChainClient. Every submission confirms immediately.
type fakeChain struct {
	mu        sync.Mutex
	native    map[string]float64
	tokens    map[string]float64
	submitted map[string][]byte
	transfers []nativeTransfer
	tokenTx   []domain.TokenTransfer
	seq       atomic.Uint64
}

type nativeTransfer struct {
	From, To, FeePayer string
	Lamports           uint64
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		native:    make(map[string]float64),
		tokens:    make(map[string]float64),
		submitted: make(map[string][]byte),
	}
}

func (c *fakeChain) setNative(identity string, sol float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.native[identity] = sol
}

func (c *fakeChain) GetBalance(ctx context.Context, identity string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.native[identity]; ok {
		return v, nil
	}
	return defaultNative, nil
}

func (c *fakeChain) GetTokenBalance(ctx context.Context, identity, token string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.tokens[identity+"/"+token]; ok {
		return v, nil
	}
	return defaultTokens, nil
}

func (c *fakeChain) Submit(ctx context.Context, signed []byte) (string, error) {
	var sig solana.Signature
	sig[0] = 0x5a
	binary.BigEndian.PutUint64(sig[56:], c.seq.Add(1))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitted[sig.String()] = signed
	return sig.String(), nil
}

func (c *fakeChain) Confirm(ctx context.Context, signature string, timeout time.Duration) (domain.Confirmation, error) {
	return domain.ConfirmationConfirmed, nil
}

func (c *fakeChain) SignatureStatus(ctx context.Context, signature string) (*domain.TxStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.submitted[signature]; !ok {
		return &domain.TxStatus{Signature: signature}, nil
	}
	return &domain.TxStatus{Signature: signature, Status: "confirmed", Slot: 1}, nil
}

func (c *fakeChain) BuildNativeTransfer(ctx context.Context, from, to string, lamports uint64, feePayer string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transfers = append(c.transfers, nativeTransfer{From: from, To: to, FeePayer: feePayer, Lamports: lamports})
	return []byte(fmt.Sprintf("transfer:%s:%s:%d", from, to, lamports)), nil
}

func (c *fakeChain) setTokens(identity, mint string, amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[identity+"/"+mint] = amount
}

// BuildTokenTransfer moves balances immediately; an unknown holder has defaultTokens.
func (c *fakeChain) BuildTokenTransfer(ctx context.Context, req domain.TokenTransfer) ([]byte, float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := req.From + "/" + req.Mint
	held, ok := c.tokens[key]
	if !ok {
		held = defaultTokens
	}
	amount := req.Amount
	if amount == 0 {
		amount = held
	}
	if amount == 0 || amount > held {
		return nil, 0, apperror.InsufficientFunds("no tokens")
	}
	c.tokens[key] = held - amount
	c.tokens[req.To+"/"+req.Mint] += amount
	c.tokenTx = append(c.tokenTx, req)
	return []byte(fmt.Sprintf("spl:%s:%s:%s:%v", req.From, req.To, req.Mint, amount)), amount, nil
}

func (c *fakeChain) TokenInfo(ctx context.Context, mint string) (*domain.TokenInfo, error) {
	if mint == "" {
		return nil, apperror.ErrTokenNotFound(mint)
	}
	return &domain.TokenInfo{Mint: mint, Name: "Fake Token", Symbol: "FAKE", Source: "das"}, nil
}

func (c *fakeChain) tokenTransfers() []domain.TokenTransfer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.TokenTransfer(nil), c.tokenTx...)
}

func (c *fakeChain) submissions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.submitted)
}

func (c *fakeChain) nativeTransfers() []nativeTransfer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]nativeTransfer(nil), c.transfers...)
}

// fakeGateway records build requests and fails for the wallets in failFor.
type fakeGateway struct {
	mu       sync.Mutex
	requests []domain.BuildRequest
	failFor  map[string]error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{failFor: make(map[string]error)}
}

func (g *fakeGateway) fail(identity string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failFor[identity] = err
}

func (g *fakeGateway) BuildTrade(ctx context.Context, req domain.BuildRequest) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if err, ok := g.failFor[req.PublicKey]; ok {
		return nil, err
	}
	return []byte(fmt.Sprintf("%s:%s:%s", req.Action, req.PublicKey, req.Mint)), nil
}

func (g *fakeGateway) built() []domain.BuildRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.BuildRequest(nil), g.requests...)
}

func (g *fakeGateway) callsFor(identity string) int {
	n := 0
	for _, r := range g.built() {
		if r.PublicKey == identity {
			n++
		}
	}
	return n
}

// fakeSigner appends the number of signers to the payload.
type fakeSigner struct{}

func (fakeSigner) Sign(unsigned []byte, secretKeys ...string) ([]byte, error) {
	if len(secretKeys) == 0 {
		return nil, fmt.Errorf("no signers")
	}
	return append(append([]byte(nil), unsigned...), byte(len(secretKeys))), nil
}
