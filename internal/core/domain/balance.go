package domain

import "time"

// WalletBalance is one row of a balance snapshot.
type WalletBalance struct {
	PublicKey string     `json:"public_key"`
	Name      string     `json:"name"`
	Role      WalletRole `json:"role"`
	Native    float64    `json:"sol"`
	Token     float64    `json:"token"`
	Error     string     `json:"error,omitempty"`
}

// BalanceTotals aggregates a snapshot.
type BalanceTotals struct {
	Native float64 `json:"sol"`
	Token  float64 `json:"token"`
}

// BalanceSnapshot holds balances of every registry wallet for one token.
type BalanceSnapshot struct {
	Token     string          `json:"mint"`
	Wallets   []WalletBalance `json:"data"`
	Totals    BalanceTotals   `json:"totals"`
	FetchedAt time.Time       `json:"fetched_at"`
	Stale     bool            `json:"stale,omitempty"`
}

// NewBalanceSnapshot builds a snapshot and computes its totals.
func NewBalanceSnapshot(token string, rows []WalletBalance, at time.Time) BalanceSnapshot {
	s := BalanceSnapshot{Token: token, Wallets: rows, FetchedAt: at}
	for _, r := range rows {
		s.Totals.Native += r.Native
		s.Totals.Token += r.Token
	}
	if s.Wallets == nil {
		s.Wallets = []WalletBalance{}
	}
	return s
}

// Age returns how old the snapshot is at now.
func (s BalanceSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}
