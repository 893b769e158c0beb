package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/pkg/apperror"

	solana "github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
)

// BuildTokenTransfer returns an unsigned SPL transfer between the associated token
// accounts of req.From and req.To, creating the destination account when it is missing.
// The second return value is the token amount moved.
func (c *Client) BuildTokenTransfer(ctx context.Context, req domain.TokenTransfer) ([]byte, float64, error) {
	owner, err := parseKey(req.From)
	if err != nil {
		return nil, 0, err
	}
	dest, err := parseKey(req.To)
	if err != nil {
		return nil, 0, err
	}
	mint, err := parseKey(req.Mint)
	if err != nil {
		return nil, 0, err
	}
	payer, err := parseKey(req.FeePayer)
	if err != nil {
		return nil, 0, err
	}
	if req.Amount < 0 {
		return nil, 0, apperror.Validation("amount must not be negative")
	}

	srcATA, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("derive source account: %w", err))
	}
	dstATA, _, err := solana.FindAssociatedTokenAddress(dest, mint)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("derive destination account: %w", err))
	}

	srcExists, err := c.accountExists(ctx, srcATA)
	if err != nil {
		return nil, 0, err
	}
	if !srcExists {
		return nil, 0, apperror.InsufficientFunds("no token account")
	}

	held, err := query(c, ctx, "getTokenAccountBalance", func(ctx context.Context) (*rpc.UiTokenAmount, error) {
		out, err := c.rpc.GetTokenAccountBalance(ctx, srcATA, c.commitment)
		if err != nil {
			return nil, err
		}
		if out == nil || out.Value == nil {
			return nil, errors.New("empty token balance")
		}
		return out.Value, nil
	})
	if err != nil {
		return nil, 0, err
	}
	balance, err := strconv.ParseUint(held.Amount, 10, 64)
	if err != nil {
		return nil, 0, apperror.BackendFailure(fmt.Errorf("token balance %q: %w", held.Amount, err))
	}

	raw := balance
	if req.Amount > 0 {
		raw, err = rawAmount(req.Amount, held.Decimals)
		if err != nil {
			return nil, 0, err
		}
		if raw > balance {
			return nil, 0, apperror.InsufficientFunds(fmt.Sprintf("holds %s tokens, %v requested", held.UiAmountString, req.Amount))
		}
	}
	if raw == 0 {
		return nil, 0, apperror.InsufficientFunds("no tokens")
	}

	dstExists, err := c.accountExists(ctx, dstATA)
	if err != nil {
		return nil, 0, err
	}

	var ixs []solana.Instruction
	if !dstExists {
		ixs = append(ixs, associatedtokenaccount.NewCreateInstruction(payer, dest, mint).Build())
	}
	ixs = append(ixs, token.NewTransferCheckedInstruction(raw, held.Decimals, srcATA, mint, dstATA, owner, []solana.PublicKey{}).Build())
	if req.CloseSource && raw == balance {
		ixs = append(ixs, token.NewCloseAccountInstruction(srcATA, dest, owner, []solana.PublicKey{}).Build())
	}

	unsigned, err := c.buildTransaction(ctx, ixs, payer)
	if err != nil {
		return nil, 0, err
	}
	moved := decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(held.Decimals))
	return unsigned, moved.InexactFloat64(), nil
}

// rawAmount converts a token quantity to base units, rounding down.
func rawAmount(amount float64, decimals uint8) (uint64, error) {
	units := decimal.NewFromFloat(amount).Shift(int32(decimals)).Floor()
	n := units.BigInt()
	if !n.IsUint64() {
		return 0, apperror.Validation(fmt.Sprintf("amount %v is out of range", amount))
	}
	if n.Sign() == 0 {
		return 0, apperror.Validation(fmt.Sprintf("amount %v is below the smallest unit", amount))
	}
	return n.Uint64(), nil
}

func (c *Client) accountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	return query(c, ctx, "getAccountInfo", func(ctx context.Context) (bool, error) {
		_, err := c.rpc.GetAccountInfo(ctx, account)
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	})
}

// TokenInfo looks mint up through the DAS getAsset method of the metadata endpoint.
func (c *Client) TokenInfo(ctx context.Context, mint string) (*domain.TokenInfo, error) {
	key, err := parseKey(mint)
	if err != nil {
		return nil, err
	}

	asset, err := query(c, ctx, "getAsset", func(ctx context.Context) (*dasAsset, error) {
		var out *dasAsset
		err := c.meta.RPCCallForInto(ctx, &out, "getAsset", []interface{}{key.String()})
		if err != nil && isAssetNotFound(err) {
			return nil, nil
		}
		return out, err
	})
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperror.ErrTokenNotFound(mint)
	}

	info := &domain.TokenInfo{
		Mint:   key.String(),
		Name:   strings.TrimSpace(asset.Content.Metadata.Name),
		Symbol: strings.TrimSpace(asset.Content.Metadata.Symbol),
		Source: "das",
	}
	if info.Symbol == "" {
		info.Symbol = strings.TrimSpace(asset.TokenInfo.Symbol)
	}
	if asset.TokenInfo.Decimals != nil {
		d := *asset.TokenInfo.Decimals
		info.Decimals = &d
	}
	if info.Name == "" && info.Symbol == "" {
		return nil, apperror.ErrTokenNotFound(mint)
	}
	return info, nil
}

// isAssetNotFound tells a missing asset apart from an endpoint without DAS support.
func isAssetNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") && !strings.Contains(msg, "method not found")
}

type dasAsset struct {
	ID      string `json:"id"`
	Content struct {
		Metadata struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"metadata"`
	} `json:"content"`
	TokenInfo struct {
		Symbol   string `json:"symbol"`
		Decimals *int   `json:"decimals"`
	} `json:"token_info"`
}
