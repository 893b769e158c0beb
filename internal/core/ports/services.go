package ports

import (
	"context"
	"time"

	"multiwallet-trader/internal/core/domain"
)

// EncryptionService handles AES-256-GCM encryption/decryption of key material at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(operator string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Operator string
}

// --- Backend Ports ---

// TradeGateway obtains unsigned transactions from the trade-building backend.
type TradeGateway interface {
	BuildTrade(ctx context.Context, req domain.BuildRequest) ([]byte, error)
}

// ChainClient talks to the blockchain RPC backend. Identities are base58 public keys
// and native amounts are in SOL.
type ChainClient interface {
	GetBalance(ctx context.Context, identity string) (float64, error)
	GetTokenBalance(ctx context.Context, identity, token string) (float64, error)
	// Submit returns as soon as the network accepts the transaction, before finality.
	Submit(ctx context.Context, signed []byte) (string, error)
	// Confirm returns ConfirmationPending, not an error, when timeout expires first.
	Confirm(ctx context.Context, signature string, timeout time.Duration) (domain.Confirmation, error)
	SignatureStatus(ctx context.Context, signature string) (*domain.TxStatus, error)
	BuildNativeTransfer(ctx context.Context, from, to string, lamports uint64, feePayer string) ([]byte, error)
	// BuildTokenTransfer also returns the token amount the transaction moves.
	BuildTokenTransfer(ctx context.Context, req domain.TokenTransfer) ([]byte, float64, error)
	TokenInfo(ctx context.Context, mint string) (*domain.TokenInfo, error)
}

// TxSigner signs serialized transactions with base58 secret keys.
type TxSigner interface {
	Sign(unsigned []byte, secretKeys ...string) ([]byte, error)
}

// Keyring creates and parses wallet key material.
type Keyring interface {
	Generate() (publicKey string, secretKey string, err error)
	// Parse accepts a base58 secret or a JSON byte array and returns the normalized base58 form.
	Parse(secret string) (publicKey string, secretKey string, err error)
}

// EventStream is the process-wide operational log.
type EventStream interface {
	Publish(category, message string, data interface{}) domain.LogEntry
	Recent(n int) []domain.LogEntry
	// Subscribe returns the buffered history and a live channel; unsubscribe closes it.
	Subscribe(buffer int) (replay []domain.LogEntry, live <-chan domain.LogEntry, unsubscribe func())
}

// --- Service Ports (Business Logic) ---

// BalanceReader serves balance snapshots.
type BalanceReader interface {
	Get(ctx context.Context, token string) (domain.BalanceSnapshot, error)
	// GetSubset always queries the chain for exactly the given wallets.
	GetSubset(ctx context.Context, token string, identities []string) (domain.BalanceSnapshot, error)
	Invalidate(token string)
	// InvalidateAll drops every cached snapshot, after native balances moved.
	InvalidateAll()
}

// WalletRegistry manages wallet identities, key material and overrides.
type WalletRegistry interface {
	List(ctx context.Context) (*domain.RegistryDocument, error)
	Generate(ctx context.Context, count int, defaultBuy float64, prefix string) ([]domain.WalletRecord, error)
	AddFromSecret(ctx context.Context, secret, name string, buyFixed float64) (domain.WalletRecord, error)
	Remove(ctx context.Context, publicKey string) error
	Rename(ctx context.Context, publicKey, name string) (domain.WalletRecord, error)
	UpdateOverrides(ctx context.Context, updates []domain.OverrideUpdate) (int, error)
	PromoteToDev(ctx context.Context, publicKey string) (domain.WalletRecord, error)
	// InitDev creates a dev wallet if none exists; created reports whether it did.
	InitDev(ctx context.Context) (dev domain.WalletRecord, created bool, err error)
	ExportSecret(ctx context.Context, publicKey string) (string, error)
	Find(ctx context.Context, publicKey string) (domain.WalletRecord, error)
	// Buyers returns all buyers, or only those in subset when it is not empty.
	Buyers(ctx context.Context, subset []string) ([]domain.WalletRecord, error)
	Dev(ctx context.Context) (domain.WalletRecord, error)
}

// TradeService is the control surface for trading operations.
type TradeService interface {
	BatchBuy(ctx context.Context, req BatchBuyRequest) (*BatchResponse, error)
	BatchSell(ctx context.Context, req BatchSellRequest) (*BatchResponse, error)
	BuyOne(ctx context.Context, req SingleTradeRequest) (*domain.TradeResult, error)
	SellOne(ctx context.Context, req SingleTradeRequest) (*domain.TradeResult, error)
	CollectFees(ctx context.Context, priorityFee *float64) (*domain.TradeResult, error)
	CreateToken(ctx context.Context, req CreateTokenRequest) (*CreateTokenResult, error)
	TransferNative(ctx context.Context, req TransferRequest) (*domain.TradeResult, error)
	SweepNative(ctx context.Context, req SweepRequest) (*BatchResponse, error)
	TransferToken(ctx context.Context, req TokenTransferRequest) (*domain.TradeResult, error)
	SweepToken(ctx context.Context, req TokenSweepRequest) (*BatchResponse, error)
	TokenInfo(ctx context.Context, mint string) (*domain.TokenInfo, error)
	TxStatus(ctx context.Context, signature string) (*domain.TxStatus, error)
}

// StateService reads and patches the application state document.
type StateService interface {
	Get(ctx context.Context) (*domain.AppState, error)
	Update(ctx context.Context, patch domain.StatePatch) (*domain.AppState, error)
}

// AuthService handles operator login.
type AuthService interface {
	Login(ctx context.Context, operator, password string) (string, time.Time, error)
}

// --- DTOs for service layer ---

// TradeOverride adjusts the amount of one wallet within a batch request.
type TradeOverride struct {
	PublicKey   string
	BuyAmount   *float64
	BuyPercent  *float64
	SellPercent *float64
}

// BatchBuyRequest buys one token with many wallets.
type BatchBuyRequest struct {
	Token       string
	Wallets     []string // empty: every buyer
	Amount      *float64 // global fixed SOL amount
	Percent     *float64 // global percent of balance; wins over Amount
	Overrides   []TradeOverride
	Concurrency int
	Sequential  bool
	Slippage    *float64
	PriorityFee *float64
	Pool        string
}

// BatchSellRequest sells one token from many wallets.
type BatchSellRequest struct {
	Token       string
	Wallets     []string
	Tokens      *float64 // explicit token quantity per wallet
	Percent     *float64 // global percent of token balance
	Overrides   []TradeOverride
	Concurrency int
	Sequential  bool
	Slippage    *float64
	PriorityFee *float64
	Pool        string
}

// SingleTradeRequest trades with one wallet. Amount is SOL for buys and tokens for sells;
// Percent is only used for sells.
type SingleTradeRequest struct {
	PublicKey   string
	Token       string
	Amount      float64
	Percent     float64
	Slippage    *float64
	PriorityFee *float64
	Pool        string
}

// BatchResponse is returned by batch operations, with mixed outcomes.
type BatchResponse struct {
	BatchID string               `json:"batch_id"`
	Results []domain.TradeResult `json:"results"`
	OK      int                  `json:"ok"`
	Fail    int                  `json:"fail"`
}

// CreateTokenRequest creates a token with the dev wallet and optionally dev-buys it.
type CreateTokenRequest struct {
	Name        string
	Symbol      string
	MetadataURI string
	DevBuy      float64
	Slippage    *float64
	PriorityFee *float64
}

// CreateTokenResult is returned by CreateToken.
type CreateTokenResult struct {
	Signature    string              `json:"signature"`
	Mint         string              `json:"mint"`
	Confirmation domain.Confirmation `json:"confirmation"`
}

// TransferRequest moves SOL between wallets. To may be any address.
type TransferRequest struct {
	From   string
	To     string
	Amount float64
}

// SweepRequest moves SOL from every buyer to To, keeping Keep SOL in each.
type SweepRequest struct {
	To   string
	Keep *float64
}

// TokenTransferRequest moves Amount tokens of Mint from a registry wallet to To.
type TokenTransferRequest struct {
	From   string
	To     string
	Mint   string
	Amount float64
}

// TokenSweepRequest moves every buyer's whole Mint balance to To.
type TokenSweepRequest struct {
	To   string
	Mint string
}
