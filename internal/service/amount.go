package service

import (
	"fmt"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/pkg/apperror"

	"github.com/shopspring/decimal"
)

const (
	lamportsPerSOL = 1_000_000_000
	solDecimals    = 9
)

var hundred = decimal.NewFromInt(100)

// ResolveBuyAmount turns a buy AmountSpec into the SOL to spend, keeping feeBuffer
// of the live balance untouched.
//
//	fixed:   min(requested, balance-feeBuffer)
//	percent: max(0, percent/100 * (balance-feeBuffer))
func ResolveBuyAmount(spec domain.AmountSpec, balance, feeBuffer float64) (float64, error) {
	spendable := decimal.NewFromFloat(balance).Sub(decimal.NewFromFloat(feeBuffer))

	var amount decimal.Decimal
	switch spec.Kind {
	case domain.AmountFixed:
		amount = decimal.Min(decimal.NewFromFloat(spec.Value), spendable)
	case domain.AmountPercent:
		amount = decimal.Max(decimal.Zero, decimal.NewFromFloat(spec.Value).Div(hundred).Mul(spendable))
	default:
		return 0, apperror.Validation(fmt.Sprintf("amount kind %q is not valid for buys", spec.Kind))
	}

	amount = amount.Truncate(solDecimals)
	if !amount.IsPositive() {
		return 0, apperror.InsufficientFunds(fmt.Sprintf(
			"insufficient SOL: balance %s, fee buffer %s",
			decimal.NewFromFloat(balance).String(), decimal.NewFromFloat(feeBuffer).String(),
		))
	}
	return amount.InexactFloat64(), nil
}

// ResolveSellAmount turns a sell AmountSpec into a token quantity.
func ResolveSellAmount(spec domain.AmountSpec, tokenBalance float64) (float64, error) {
	var amount decimal.Decimal
	switch spec.Kind {
	case domain.AmountTokens:
		amount = decimal.NewFromFloat(spec.Value)
	case domain.AmountPercent:
		amount = decimal.NewFromFloat(spec.Value).Div(hundred).Mul(decimal.NewFromFloat(tokenBalance))
	default:
		return 0, apperror.Validation(fmt.Sprintf("amount kind %q is not valid for sells", spec.Kind))
	}

	if !amount.IsPositive() {
		return 0, apperror.InsufficientFunds("no tokens to sell")
	}
	return amount.InexactFloat64(), nil
}

// SOLToLamports converts a SOL amount, truncating below one lamport.
func SOLToLamports(sol float64) uint64 {
	l := decimal.NewFromFloat(sol).Mul(decimal.NewFromInt(lamportsPerSOL)).Truncate(0)
	if l.IsNegative() {
		return 0
	}
	return uint64(l.IntPart())
}

// LamportsToSOL converts lamports to SOL.
func LamportsToSOL(lamports uint64) float64 {
	return decimal.NewFromInt(int64(lamports)).Div(decimal.NewFromInt(lamportsPerSOL)).InexactFloat64()
}

// BuyPlan carries the inputs of buy amount precedence for one wallet.
type BuyPlan struct {
	OverridePercent *float64
	OverrideFixed   *float64
	GlobalPercent   *float64
	GlobalFixed     *float64
	DefaultBuy      float64
}

// Spec picks the buy amount for w. Precedence, highest first: request override percent,
// request override fixed, global percent, global fixed, stored percent, stored fixed,
// configured default.
func (p BuyPlan) Spec(w domain.WalletRecord) domain.AmountSpec {
	switch {
	case positivePtr(p.OverridePercent):
		return domain.PercentAmount(*p.OverridePercent)
	case positivePtr(p.OverrideFixed):
		return domain.FixedAmount(*p.OverrideFixed)
	case positivePtr(p.GlobalPercent):
		return domain.PercentAmount(*p.GlobalPercent)
	case positivePtr(p.GlobalFixed):
		return domain.FixedAmount(*p.GlobalFixed)
	case w.BuyAmountPercent > 0:
		return domain.PercentAmount(w.BuyAmountPercent)
	case w.BuyAmountFixed > 0:
		return domain.FixedAmount(w.BuyAmountFixed)
	default:
		return domain.FixedAmount(p.DefaultBuy)
	}
}

// SellPlan carries the inputs of sell amount precedence for one wallet.
type SellPlan struct {
	Tokens          *float64
	OverridePercent *float64
	GlobalPercent   *float64
}

// Spec picks the sell amount for w. Precedence, highest first: explicit tokens, request
// override percent, global percent, stored sell percent. ok is false when nothing applies.
func (p SellPlan) Spec(w domain.WalletRecord) (spec domain.AmountSpec, ok bool) {
	switch {
	case positivePtr(p.Tokens):
		return domain.TokenAmount(*p.Tokens), true
	case positivePtr(p.OverridePercent):
		return domain.PercentAmount(*p.OverridePercent), true
	case positivePtr(p.GlobalPercent):
		return domain.PercentAmount(*p.GlobalPercent), true
	case w.SellPercent > 0:
		return domain.PercentAmount(w.SellPercent), true
	default:
		return domain.AmountSpec{}, false
	}
}

func positivePtr(v *float64) bool {
	return v != nil && *v > 0
}
