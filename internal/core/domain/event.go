package domain

import "time"

// Event categories used across the service.
const (
	CategoryNet      = "net"
	CategoryBuy      = "buy"
	CategorySell     = "sell"
	CategoryWallets  = "wallets"
	CategoryBalances = "balances"
	CategoryCreate   = "create"
	CategoryFees     = "fees"
	CategoryTransfer = "transfer"
	CategorySweep    = "sweep"
	CategoryState    = "state"
	CategoryUI       = "ui"
	CategoryAPI      = "api"
)

// LogEntry is one record of the operational event log.
type LogEntry struct {
	ID       uint64      `json:"id"`
	Time     time.Time   `json:"ts"`
	Category string      `json:"category"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
}
