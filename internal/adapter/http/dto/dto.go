package dto

import "multiwallet-trader/internal/core/domain"

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Operator string `json:"operator" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128" sanitize:"-"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ConfigResponse exposes the trading defaults to the UI.
type ConfigResponse struct {
	DefaultBuy         float64 `json:"default_buy_sol"`
	FeeBuffer          float64 `json:"fee_buffer_sol"`
	Slippage           float64 `json:"slippage"`
	PriorityFee        float64 `json:"priority_fee"`
	Pool               string  `json:"pool"`
	DefaultConcurrency int     `json:"default_concurrency"`
	MaxConcurrency     int     `json:"max_concurrency"`
	SweepKeep          float64 `json:"sweep_keep_sol"`
	AutoRefreshSeconds int     `json:"auto_refresh_seconds"`
	AuthEnabled        bool    `json:"auth_enabled"`
}

// --- Wallets ---

// GenerateWalletsRequest creates count new buyer wallets.
type GenerateWalletsRequest struct {
	Count     int      `json:"count" binding:"required,min=1,max=500"`
	BuyAmount *float64 `json:"buy_amount,omitempty" binding:"omitempty,gte=0"`
	Prefix    string   `json:"prefix" binding:"max=32"`
}

// ImportWalletRequest adds a buyer from an existing secret.
type ImportWalletRequest struct {
	Secret    string  `json:"secret" binding:"required" sanitize:"-"`
	Name      string  `json:"name" binding:"max=64"`
	BuyAmount float64 `json:"buy_amount" binding:"gte=0"`
}

// RenameWalletRequest sets a wallet's display name.
type RenameWalletRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

// OverrideItem sets the stored overrides of one wallet. Zero or negative clears a value.
type OverrideItem struct {
	PublicKey        string  `json:"public_key" binding:"required,base58"`
	BuyAmountFixed   float64 `json:"buy_amount_fixed"`
	BuyAmountPercent float64 `json:"buy_amount_percent" binding:"lte=100"`
	SellPercent      float64 `json:"sell_percent" binding:"lte=100"`
}

// UpdateOverridesRequest updates stored overrides of many wallets at once.
type UpdateOverridesRequest struct {
	Updates []OverrideItem `json:"updates" binding:"required,min=1,dive"`
}

// PromoteDevRequest makes a buyer the dev wallet.
type PromoteDevRequest struct {
	PublicKey string `json:"public_key" binding:"required,base58"`
}

// WalletListResponse is the registry as shown to clients, without secrets.
type WalletListResponse struct {
	Dev    *domain.WalletRecord  `json:"dev"`
	Buyers []domain.WalletRecord `json:"buyers"`
	Count  int                   `json:"count"`
}

// InitDevResponse reports the dev wallet and whether it was just created.
type InitDevResponse struct {
	Dev     domain.WalletRecord `json:"dev"`
	Created bool                `json:"created"`
}

// ExportResponse carries one exported secret.
type ExportResponse struct {
	PublicKey string `json:"public_key"`
	SecretKey string `json:"secret_key"`
}

// UpdatedResponse reports how many records changed.
type UpdatedResponse struct {
	Updated int `json:"updated"`
}

// --- State and logs ---

// RecentMintItem is one entry pushed onto the recent token history.
type RecentMintItem struct {
	Mint   string `json:"mint" binding:"required,base58"`
	Name   string `json:"name" binding:"max=64"`
	Symbol string `json:"symbol" binding:"max=16"`
}

// StatePatchRequest patches the state document. An empty mint clears it.
type StatePatchRequest struct {
	Mint       *string         `json:"mint"`
	RecentMint *RecentMintItem `json:"recent_mint"`
}

// EmitLogRequest publishes one operator entry to the event log.
type EmitLogRequest struct {
	Category string      `json:"category" binding:"max=32"`
	Message  string      `json:"message" binding:"required,max=2000"`
	Data     interface{} `json:"data,omitempty"`
}

// --- Trades ---

// TradeOverrideItem adjusts one wallet within a batch request.
type TradeOverrideItem struct {
	PublicKey   string   `json:"public_key" binding:"required,base58"`
	BuyAmount   *float64 `json:"buy_amount,omitempty" binding:"omitempty,gt=0"`
	BuyPercent  *float64 `json:"buy_percent,omitempty" binding:"omitempty,gt=0,lte=100"`
	SellPercent *float64 `json:"sell_percent,omitempty" binding:"omitempty,gt=0,lte=100"`
}

// BatchBuyRequest is the request body of POST /trades/buy.
type BatchBuyRequest struct {
	Token       string              `json:"token" binding:"omitempty,base58"`
	Wallets     []string            `json:"wallets" binding:"omitempty,dive,base58"`
	Amount      *float64            `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Percent     *float64            `json:"percent,omitempty" binding:"omitempty,gt=0,lte=100"`
	Overrides   []TradeOverrideItem `json:"overrides" binding:"omitempty,dive"`
	Concurrency int                 `json:"concurrency" binding:"gte=0"`
	Sequential  bool                `json:"sequential"`
	Slippage    *float64            `json:"slippage,omitempty" binding:"omitempty,gte=0,lte=100"`
	PriorityFee *float64            `json:"priority_fee,omitempty" binding:"omitempty,gte=0"`
	Pool        string              `json:"pool" binding:"max=32"`
}

// BatchSellRequest is the request body of POST /trades/sell.
type BatchSellRequest struct {
	Token       string              `json:"token" binding:"omitempty,base58"`
	Wallets     []string            `json:"wallets" binding:"omitempty,dive,base58"`
	Tokens      *float64            `json:"tokens,omitempty" binding:"omitempty,gt=0"`
	Percent     *float64            `json:"percent,omitempty" binding:"omitempty,gt=0,lte=100"`
	Overrides   []TradeOverrideItem `json:"overrides" binding:"omitempty,dive"`
	Concurrency int                 `json:"concurrency" binding:"gte=0"`
	Sequential  bool                `json:"sequential"`
	Slippage    *float64            `json:"slippage,omitempty" binding:"omitempty,gte=0,lte=100"`
	PriorityFee *float64            `json:"priority_fee,omitempty" binding:"omitempty,gte=0"`
	Pool        string              `json:"pool" binding:"max=32"`
}

// SingleTradeRequest is the request body of buy-one and sell-one.
type SingleTradeRequest struct {
	PublicKey   string   `json:"public_key" binding:"required,base58"`
	Token       string   `json:"token" binding:"omitempty,base58"`
	Amount      float64  `json:"amount" binding:"gte=0"`
	Percent     float64  `json:"percent" binding:"gte=0,lte=100"`
	Slippage    *float64 `json:"slippage,omitempty" binding:"omitempty,gte=0,lte=100"`
	PriorityFee *float64 `json:"priority_fee,omitempty" binding:"omitempty,gte=0"`
	Pool        string   `json:"pool" binding:"max=32"`
}

// CollectFeesRequest is the optional body of POST /trades/collect-fees.
type CollectFeesRequest struct {
	PriorityFee *float64 `json:"priority_fee,omitempty" binding:"omitempty,gte=0"`
}

// CreateTokenRequest is the request body of POST /trades/create.
type CreateTokenRequest struct {
	Name        string   `json:"name" binding:"required,max=32"`
	Symbol      string   `json:"symbol" binding:"required,max=10"`
	MetadataURI string   `json:"metadata_uri" binding:"required,safe_url" sanitize:"-"`
	DevBuy      float64  `json:"dev_buy" binding:"gte=0"`
	Slippage    *float64 `json:"slippage,omitempty" binding:"omitempty,gte=0,lte=100"`
	PriorityFee *float64 `json:"priority_fee,omitempty" binding:"omitempty,gte=0"`
}

// TransferRequest is the request body of POST /transfers/native.
type TransferRequest struct {
	From   string  `json:"from" binding:"required,base58"`
	To     string  `json:"to" binding:"required,base58"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// SweepRequest is the request body of POST /sweeps/native.
type SweepRequest struct {
	To   string   `json:"to" binding:"required,base58"`
	Keep *float64 `json:"keep,omitempty" binding:"omitempty,gte=0"`
}

// TokenTransferRequest is the request body of POST /transfers/token. Amount is in tokens.
type TokenTransferRequest struct {
	From   string  `json:"from" binding:"required,base58"`
	To     string  `json:"to" binding:"required,base58"`
	Mint   string  `json:"mint" binding:"required,base58"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// TokenSweepRequest is the request body of POST /sweeps/token.
type TokenSweepRequest struct {
	To   string `json:"to" binding:"required,base58"`
	Mint string `json:"mint" binding:"required,base58"`
}
