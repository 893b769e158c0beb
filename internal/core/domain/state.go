package domain

import (
	"strings"
	"time"
)

// MaxRecentMints bounds the recent token history.
const MaxRecentMints = 12

// RecentMint is one entry of the recent token history.
type RecentMint struct {
	Mint      string    `json:"mint"`
	Name      string    `json:"name,omitempty"`
	Symbol    string    `json:"symbol,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AppState is the small persisted state document.
type AppState struct {
	Mint         string           `json:"mint,omitempty"`
	RecentMints  []RecentMint     `json:"recent_mints"`
	LastBalances *BalanceSnapshot `json:"last_balances,omitempty"`
}

// StatePatch changes part of the state. A nil field is left untouched; an empty Mint
// clears the active token.
type StatePatch struct {
	Mint       *string     `json:"mint"`
	RecentMint *RecentMint `json:"recent_mint"`
}

// Apply merges p into s.
func (s *AppState) Apply(p StatePatch) {
	if p.Mint != nil {
		s.Mint = strings.TrimSpace(*p.Mint)
	}
	if p.RecentMint != nil {
		s.PushRecent(*p.RecentMint)
	}
}

// PushRecent puts m at the front of the history, dropping older duplicates and
// anything past MaxRecentMints.
func (s *AppState) PushRecent(m RecentMint) {
	if m.Mint == "" {
		return
	}
	next := make([]RecentMint, 0, MaxRecentMints)
	next = append(next, m)
	for _, r := range s.RecentMints {
		if len(next) == MaxRecentMints {
			break
		}
		if r.Mint != m.Mint {
			next = append(next, r)
		}
	}
	s.RecentMints = next
}
