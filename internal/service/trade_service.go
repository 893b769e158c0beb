package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// transferReserveLamports covers the network fee and a safety margin of a native transfer.
const transferReserveLamports = 5000 + 5000

// TradeConfig holds the trading defaults applied when a request leaves a field unset.
type TradeConfig struct {
	DefaultBuy         float64
	Slippage           float64
	PriorityFee        float64
	Pool               string
	CreatePool         string
	DefaultConcurrency int
	BatchRetries       int
	SweepKeep          float64
	ConfirmTimeout     time.Duration
}

// TradeServiceImpl implements ports.TradeService.
type TradeServiceImpl struct {
	exec     *BatchExecutor
	registry ports.WalletRegistry
	balances ports.BalanceReader
	state    ports.StateService
	gateway  ports.TradeGateway
	chain    ports.ChainClient
	signer   ports.TxSigner
	keys     ports.Keyring
	events   ports.EventStream
	cfg      TradeConfig
	log      zerolog.Logger
}

// TradeDeps groups the collaborators of TradeServiceImpl.
type TradeDeps struct {
	Executor *BatchExecutor
	Registry ports.WalletRegistry
	Balances ports.BalanceReader
	State    ports.StateService
	Gateway  ports.TradeGateway
	Chain    ports.ChainClient
	Signer   ports.TxSigner
	Keys     ports.Keyring
	Events   ports.EventStream
}

// NewTradeService creates a new TradeServiceImpl.
func NewTradeService(deps TradeDeps, cfg TradeConfig, log zerolog.Logger) *TradeServiceImpl {
	if cfg.Pool == "" {
		cfg.Pool = "auto"
	}
	if cfg.CreatePool == "" {
		cfg.CreatePool = "pump"
	}
	if cfg.DefaultConcurrency < 1 {
		cfg.DefaultConcurrency = 4
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 90 * time.Second
	}
	return &TradeServiceImpl{
		exec:     deps.Executor,
		registry: deps.Registry,
		balances: deps.Balances,
		state:    deps.State,
		gateway:  deps.Gateway,
		chain:    deps.Chain,
		signer:   deps.Signer,
		keys:     deps.Keys,
		events:   deps.Events,
		cfg:      cfg,
		log:      log,
	}
}

// BatchBuy buys one token with the selected buyers.
func (s *TradeServiceImpl) BatchBuy(ctx context.Context, req ports.BatchBuyRequest) (*ports.BatchResponse, error) {
	token, err := s.token(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	targets, err := s.targets(ctx, req.Wallets)
	if err != nil {
		return nil, err
	}
	overrides := indexOverrides(req.Overrides)

	requests := make([]domain.TradeRequest, 0, len(targets))
	for _, t := range targets {
		o := overrides[t.wallet.PublicKey]
		plan := BuyPlan{
			OverridePercent: o.BuyPercent,
			OverrideFixed:   o.BuyAmount,
			GlobalPercent:   req.Percent,
			GlobalFixed:     req.Amount,
			DefaultBuy:      s.cfg.DefaultBuy,
		}
		requests = append(requests, domain.TradeRequest{
			Wallet:      t.wallet,
			Token:       token,
			Side:        domain.TradeSideBuy,
			Amount:      plan.Spec(t.wallet),
			Slippage:    s.slippage(req.Slippage),
			PriorityFee: s.priorityFee(req.PriorityFee),
			Pool:        s.pool(req.Pool),
			Err:         t.err,
		})
	}

	return s.runBatch(ctx, domain.CategoryBuy, token, requests, s.concurrency(req.Concurrency, req.Sequential)), nil
}

// BatchSell sells one token from the selected buyers.
func (s *TradeServiceImpl) BatchSell(ctx context.Context, req ports.BatchSellRequest) (*ports.BatchResponse, error) {
	token, err := s.token(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	targets, err := s.targets(ctx, req.Wallets)
	if err != nil {
		return nil, err
	}
	overrides := indexOverrides(req.Overrides)

	requests := make([]domain.TradeRequest, 0, len(targets))
	for _, t := range targets {
		plan := SellPlan{
			Tokens:          req.Tokens,
			OverridePercent: overrides[t.wallet.PublicKey].SellPercent,
			GlobalPercent:   req.Percent,
		}
		spec, ok := plan.Spec(t.wallet)
		itemErr := t.err
		if !ok && itemErr == nil {
			itemErr = apperror.InsufficientFunds("no tokens to sell")
		}
		requests = append(requests, domain.TradeRequest{
			Wallet:      t.wallet,
			Token:       token,
			Side:        domain.TradeSideSell,
			Amount:      spec,
			Slippage:    s.slippage(req.Slippage),
			PriorityFee: s.priorityFee(req.PriorityFee),
			Pool:        s.pool(req.Pool),
			Err:         itemErr,
		})
	}

	return s.runBatch(ctx, domain.CategorySell, token, requests, s.concurrency(req.Concurrency, req.Sequential)), nil
}

// BuyOne buys with a single wallet, without retries.
func (s *TradeServiceImpl) BuyOne(ctx context.Context, req ports.SingleTradeRequest) (*domain.TradeResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}
	return s.single(ctx, domain.TradeSideBuy, req, domain.FixedAmount(req.Amount))
}

// SellOne sells from a single wallet, by token quantity or percent of its balance.
func (s *TradeServiceImpl) SellOne(ctx context.Context, req ports.SingleTradeRequest) (*domain.TradeResult, error) {
	var spec domain.AmountSpec
	switch {
	case req.Amount > 0:
		spec = domain.TokenAmount(req.Amount)
	case req.Percent > 0 && req.Percent <= 100:
		spec = domain.PercentAmount(req.Percent)
	default:
		return nil, apperror.Validation("amount or percent (0-100] is required")
	}
	return s.single(ctx, domain.TradeSideSell, req, spec)
}

func (s *TradeServiceImpl) single(ctx context.Context, side domain.TradeSide, req ports.SingleTradeRequest, spec domain.AmountSpec) (*domain.TradeResult, error) {
	token, err := s.token(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.PublicKey) == "" {
		return nil, apperror.Validation("public_key is required")
	}
	w, err := s.registry.Find(ctx, req.PublicKey)
	if err != nil {
		return nil, err
	}

	res, err := s.exec.Execute(ctx, string(side), domain.TradeRequest{
		Wallet:      w,
		Token:       token,
		Side:        side,
		Amount:      spec,
		Slippage:    s.slippage(req.Slippage),
		PriorityFee: s.priorityFee(req.PriorityFee),
		Pool:        s.pool(req.Pool),
	})
	s.balances.Invalidate(token)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CollectFees claims creator fees with the dev wallet.
func (s *TradeServiceImpl) CollectFees(ctx context.Context, priorityFee *float64) (*domain.TradeResult, error) {
	dev, err := s.registry.Dev(ctx)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	unsigned, err := s.gateway.BuildTrade(ctx, domain.BuildRequest{
		PublicKey:   dev.PublicKey,
		Action:      domain.TradeActionCollectFees,
		PriorityFee: s.priorityFee(priorityFee),
		Pool:        "pump",
	})
	if err != nil {
		s.publishFailure(domain.CategoryFees, "collect fees fail", dev.PublicKey, err)
		return nil, err
	}

	sig, conf, err := submitAndConfirm(ctx, s.chain, s.signer, unsigned, s.cfg.ConfirmTimeout, dev.SecretKey)
	if err != nil {
		s.publishFailure(domain.CategoryFees, "collect fees fail", dev.PublicKey, err)
		return nil, err
	}
	s.balances.InvalidateAll()

	s.events.Publish(domain.CategoryFees, "collect fees ok", map[string]interface{}{
		"wallet":       dev.PublicKey,
		"signature":    sig,
		"confirmation": conf,
	})
	return &domain.TradeResult{
		OK:           true,
		Wallet:       dev.PublicKey,
		Name:         dev.Name,
		Signature:    sig,
		Confirmation: conf,
	}, nil
}

// CreateToken creates a new token with the dev wallet, dev-buying DevBuy SOL of it.
// On success the new mint becomes the active token.
func (s *TradeServiceImpl) CreateToken(ctx context.Context, req ports.CreateTokenRequest) (*ports.CreateTokenResult, error) {
	name := strings.TrimSpace(req.Name)
	symbol := strings.TrimSpace(req.Symbol)
	uri := strings.TrimSpace(req.MetadataURI)
	if name == "" || symbol == "" || uri == "" {
		return nil, apperror.Validation("name, symbol and metadata_uri are required")
	}
	if req.DevBuy < 0 {
		return nil, apperror.Validation("dev_buy must not be negative")
	}

	dev, err := s.registry.Dev(ctx)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	mint, mintSecret, err := s.keys.Generate()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate mint keypair: %w", err))
	}

	unsigned, err := s.gateway.BuildTrade(ctx, domain.BuildRequest{
		PublicKey:        dev.PublicKey,
		Action:           domain.TradeActionCreate,
		Mint:             mint,
		DenominatedInSol: true,
		Amount:           req.DevBuy,
		Slippage:         s.slippage(req.Slippage),
		PriorityFee:      s.priorityFee(req.PriorityFee),
		Pool:             s.cfg.CreatePool,
		Metadata:         &domain.TokenMetadata{Name: name, Symbol: symbol, URI: uri},
	})
	if err != nil {
		s.publishFailure(domain.CategoryCreate, "create fail", dev.PublicKey, err)
		return nil, err
	}

	sig, conf, err := submitAndConfirm(ctx, s.chain, s.signer, unsigned, s.cfg.ConfirmTimeout, mintSecret, dev.SecretKey)
	if err != nil {
		s.publishFailure(domain.CategoryCreate, "create fail", dev.PublicKey, err)
		return nil, err
	}

	if _, err := s.state.Update(ctx, domain.StatePatch{
		Mint:       &mint,
		RecentMint: &domain.RecentMint{Mint: mint, Name: name, Symbol: symbol},
	}); err != nil {
		s.log.Warn().Err(err).Str("mint", mint).Msg("token created but state update failed")
	}
	s.balances.InvalidateAll()

	s.events.Publish(domain.CategoryCreate, "create ok", map[string]interface{}{
		"mint":         mint,
		"symbol":       symbol,
		"signature":    sig,
		"confirmation": conf,
	})
	return &ports.CreateTokenResult{Signature: sig, Mint: mint, Confirmation: conf}, nil
}

// TransferNative moves SOL from a registry wallet to any address.
func (s *TradeServiceImpl) TransferNative(ctx context.Context, req ports.TransferRequest) (*domain.TradeResult, error) {
	to := strings.TrimSpace(req.To)
	if to == "" {
		return nil, apperror.Validation("destination is required")
	}
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}
	from, err := s.registry.Find(ctx, req.From)
	if err != nil {
		return nil, err
	}
	if from.PublicKey == to {
		return nil, apperror.Validation("source and destination are the same wallet")
	}
	ctx = context.WithoutCancel(ctx)

	balance, err := s.chain.GetBalance(ctx, from.PublicKey)
	if err != nil {
		return nil, err
	}
	lamports := SOLToLamports(req.Amount)
	if SOLToLamports(balance) < lamports+transferReserveLamports {
		return nil, apperror.InsufficientFunds(fmt.Sprintf("balance %.9f SOL does not cover %.9f SOL plus fees", balance, req.Amount))
	}

	res := s.transfer(ctx, domain.CategoryTransfer, from, to, lamports, from)
	s.balances.InvalidateAll()
	return &res, nil
}

// SweepNative moves SOL from every buyer to req.To, keeping req.Keep SOL in each.
// The dev wallet pays the fees; buyers are processed one at a time.
func (s *TradeServiceImpl) SweepNative(ctx context.Context, req ports.SweepRequest) (*ports.BatchResponse, error) {
	to := strings.TrimSpace(req.To)
	if to == "" {
		return nil, apperror.Validation("destination is required")
	}
	keep := s.cfg.SweepKeep
	if req.Keep != nil {
		if *req.Keep < 0 {
			return nil, apperror.Validation("keep must not be negative")
		}
		keep = *req.Keep
	}

	dev, err := s.registry.Dev(ctx)
	if err != nil {
		return nil, err
	}
	buyers, err := s.registry.Buyers(ctx, nil)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	keepLamports := SOLToLamports(keep)
	results := make([]domain.TradeResult, 0, len(buyers))
	for _, b := range buyers {
		if b.PublicKey == to {
			continue
		}
		res := domain.TradeResult{Wallet: b.PublicKey, Name: b.Name}

		balance, err := s.chain.GetBalance(ctx, b.PublicKey)
		if err != nil {
			res.Error, res.ErrorKind = describeError(err)
			results = append(results, res)
			continue
		}
		have := SOLToLamports(balance)
		if have <= keepLamports {
			res.Error, res.ErrorKind = describeError(apperror.InsufficientFunds("nothing to sweep"))
			results = append(results, res)
			continue
		}

		results = append(results, s.transfer(ctx, domain.CategorySweep, b, to, have-keepLamports, dev))
	}
	s.balances.InvalidateAll()

	ok, fail := domain.Summarize(results)
	resp := &ports.BatchResponse{BatchID: uuid.NewString(), Results: results, OK: ok, Fail: fail}
	s.events.Publish(domain.CategorySweep, "sweep done", map[string]interface{}{
		"batch_id": resp.BatchID,
		"to":       to,
		"ok":       ok,
		"fail":     fail,
	})
	return resp, nil
}

// TransferToken moves req.Amount tokens of req.Mint from a registry wallet to any
// owner. The source wallet pays the fees, including the destination account rent.
func (s *TradeServiceImpl) TransferToken(ctx context.Context, req ports.TokenTransferRequest) (*domain.TradeResult, error) {
	to := strings.TrimSpace(req.To)
	mint := strings.TrimSpace(req.Mint)
	if to == "" || mint == "" {
		return nil, apperror.Validation("destination and mint are required")
	}
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}
	from, err := s.registry.Find(ctx, req.From)
	if err != nil {
		return nil, err
	}
	if from.PublicKey == to {
		return nil, apperror.Validation("source and destination are the same wallet")
	}
	ctx = context.WithoutCancel(ctx)

	leg := transferLeg{category: domain.CategoryTransfer, from: from, payer: from, to: to, mint: mint}
	res := s.settleTransfer(ctx, leg, func(ctx context.Context) ([]byte, float64, error) {
		return s.chain.BuildTokenTransfer(ctx, domain.TokenTransfer{
			From:     from.PublicKey,
			To:       to,
			Mint:     mint,
			FeePayer: from.PublicKey,
			Amount:   req.Amount,
		})
	})
	s.balances.InvalidateAll()
	return &res, nil
}

// SweepToken moves each buyer's whole req.Mint balance to req.To and closes the
// emptied token accounts. The dev wallet pays the fees; buyers go one at a time.
func (s *TradeServiceImpl) SweepToken(ctx context.Context, req ports.TokenSweepRequest) (*ports.BatchResponse, error) {
	to := strings.TrimSpace(req.To)
	mint := strings.TrimSpace(req.Mint)
	if to == "" || mint == "" {
		return nil, apperror.Validation("destination and mint are required")
	}

	dev, err := s.registry.Dev(ctx)
	if err != nil {
		return nil, err
	}
	buyers, err := s.registry.Buyers(ctx, nil)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	results := make([]domain.TradeResult, 0, len(buyers))
	for _, b := range buyers {
		if b.PublicKey == to {
			continue
		}
		leg := transferLeg{category: domain.CategorySweep, from: b, payer: dev, to: to, mint: mint}
		results = append(results, s.settleTransfer(ctx, leg, func(ctx context.Context) ([]byte, float64, error) {
			return s.chain.BuildTokenTransfer(ctx, domain.TokenTransfer{
				From:        b.PublicKey,
				To:          to,
				Mint:        mint,
				FeePayer:    dev.PublicKey,
				CloseSource: true,
			})
		}))
	}
	s.balances.InvalidateAll()

	ok, fail := domain.Summarize(results)
	resp := &ports.BatchResponse{BatchID: uuid.NewString(), Results: results, OK: ok, Fail: fail}
	s.events.Publish(domain.CategorySweep, "token sweep done", map[string]interface{}{
		"batch_id": resp.BatchID,
		"to":       to,
		"mint":     mint,
		"ok":       ok,
		"fail":     fail,
	})
	return resp, nil
}

// TokenInfo returns the name and symbol indexed for mint.
func (s *TradeServiceImpl) TokenInfo(ctx context.Context, mint string) (*domain.TokenInfo, error) {
	mint = strings.TrimSpace(mint)
	if mint == "" {
		return nil, apperror.Validation("mint is required")
	}
	return s.chain.TokenInfo(ctx, mint)
}

// TxStatus looks a signature up on chain.
func (s *TradeServiceImpl) TxStatus(ctx context.Context, signature string) (*domain.TxStatus, error) {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return nil, apperror.Validation("signature is required")
	}
	return s.chain.SignatureStatus(ctx, signature)
}

// transfer moves lamports from one wallet to another, with payer paying the fee.
func (s *TradeServiceImpl) transfer(ctx context.Context, category string, from domain.WalletRecord, to string, lamports uint64, payer domain.WalletRecord) domain.TradeResult {
	leg := transferLeg{category: category, from: from, payer: payer, to: to}
	return s.settleTransfer(ctx, leg, func(ctx context.Context) ([]byte, float64, error) {
		unsigned, err := s.chain.BuildNativeTransfer(ctx, from.PublicKey, to, lamports, payer.PublicKey)
		return unsigned, LamportsToSOL(lamports), err
	})
}

// transferLeg is one movement of value out of a registry wallet. An empty mint means SOL.
type transferLeg struct {
	category string
	from     domain.WalletRecord
	payer    domain.WalletRecord
	to       string
	mint     string
}

// settleTransfer builds, signs, submits and confirms one leg. The payer signs first.
func (s *TradeServiceImpl) settleTransfer(ctx context.Context, leg transferLeg, build func(ctx context.Context) ([]byte, float64, error)) domain.TradeResult {
	res := domain.TradeResult{Wallet: leg.from.PublicKey, Name: leg.from.Name}

	unsigned, amount, err := build(ctx)
	if err == nil {
		res.Amount = amount
		secrets := []string{leg.from.SecretKey}
		if leg.payer.PublicKey != leg.from.PublicKey {
			secrets = []string{leg.payer.SecretKey, leg.from.SecretKey}
		}
		res.Signature, res.Confirmation, err = submitAndConfirm(ctx, s.chain, s.signer, unsigned, s.cfg.ConfirmTimeout, secrets...)
	}
	if err != nil {
		if sig := signatureOf(err); sig != "" {
			res.Signature = sig
		}
		res.Error, res.ErrorKind = describeError(err)
		s.publishFailure(leg.category, leg.category+" fail", leg.from.PublicKey, err)
		return res
	}

	res.OK = true
	data := map[string]interface{}{
		"wallet":    leg.from.PublicKey,
		"to":        leg.to,
		"amount":    res.Amount,
		"signature": res.Signature,
	}
	if leg.mint != "" {
		data["mint"] = leg.mint
	}
	s.events.Publish(leg.category, leg.category+" ok", data)
	return res
}

func (s *TradeServiceImpl) runBatch(ctx context.Context, category, token string, requests []domain.TradeRequest, concurrency int) *ports.BatchResponse {
	batchID := uuid.NewString()
	s.events.Publish(category, "batch start", map[string]interface{}{
		"batch_id":    batchID,
		"token":       token,
		"wallets":     len(requests),
		"concurrency": concurrency,
	})

	results := s.exec.Run(ctx, BatchJob{
		Category:    category,
		Requests:    requests,
		Concurrency: concurrency,
		Retries:     s.cfg.BatchRetries,
	})
	s.balances.Invalidate(token)

	ok, fail := domain.Summarize(results)
	s.events.Publish(category, "batch done", map[string]interface{}{
		"batch_id": batchID,
		"ok":       ok,
		"fail":     fail,
	})
	s.log.Info().
		Str("batch_id", batchID).
		Str("side", category).
		Int("ok", ok).
		Int("fail", fail).
		Msg("batch finished")

	return &ports.BatchResponse{BatchID: batchID, Results: results, OK: ok, Fail: fail}
}

// target is one wallet of a batch, or the reason it cannot trade.
type target struct {
	wallet domain.WalletRecord
	err    error
}

// targets resolves the wallets of a batch. An empty list selects every buyer; unknown
// identities in an explicit list become failed items rather than a request error.
func (s *TradeServiceImpl) targets(ctx context.Context, wallets []string) ([]target, error) {
	if len(wallets) == 0 {
		buyers, err := s.registry.Buyers(ctx, nil)
		if err != nil {
			return nil, err
		}
		if len(buyers) == 0 {
			return nil, apperror.Validation("no buyer wallets")
		}
		out := make([]target, 0, len(buyers))
		for _, b := range buyers {
			out = append(out, target{wallet: b})
		}
		return out, nil
	}

	doc, err := s.registry.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]target, 0, len(wallets))
	for _, pk := range wallets {
		pk = strings.TrimSpace(pk)
		w, ok := doc.Find(pk)
		if !ok {
			out = append(out, target{wallet: domain.WalletRecord{PublicKey: pk}, err: apperror.ErrWalletNotFound(pk)})
			continue
		}
		out = append(out, target{wallet: w})
	}
	return out, nil
}

func (s *TradeServiceImpl) token(ctx context.Context, token string) (string, error) {
	if t := strings.TrimSpace(token); t != "" {
		return t, nil
	}
	st, err := s.state.Get(ctx)
	if err != nil {
		return "", err
	}
	if st.Mint == "" {
		return "", apperror.Validation("mint required")
	}
	return st.Mint, nil
}

func (s *TradeServiceImpl) concurrency(requested int, sequential bool) int {
	switch {
	case sequential:
		return 1
	case requested < 1:
		return s.cfg.DefaultConcurrency
	default:
		return requested
	}
}

func (s *TradeServiceImpl) slippage(v *float64) float64 {
	if v != nil && *v >= 0 {
		return *v
	}
	return s.cfg.Slippage
}

func (s *TradeServiceImpl) priorityFee(v *float64) float64 {
	if v != nil && *v >= 0 {
		return *v
	}
	return s.cfg.PriorityFee
}

func (s *TradeServiceImpl) pool(p string) string {
	if p = strings.TrimSpace(p); p != "" {
		return p
	}
	return s.cfg.Pool
}

func (s *TradeServiceImpl) publishFailure(category, message, wallet string, err error) {
	msg, kind := describeError(err)
	s.events.Publish(category, message, map[string]interface{}{
		"wallet": wallet,
		"error":  msg,
		"kind":   kind,
	})
	s.log.Warn().Err(err).Str("wallet", wallet).Msg(message)
}

func indexOverrides(overrides []ports.TradeOverride) map[string]ports.TradeOverride {
	out := make(map[string]ports.TradeOverride, len(overrides))
	for _, o := range overrides {
		out[strings.TrimSpace(o.PublicKey)] = o
	}
	return out
}
