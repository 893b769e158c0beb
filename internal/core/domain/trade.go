package domain

// TradeSide is the direction of a trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// TradeAction is the action requested from the trade-building backend.
type TradeAction string

const (
	TradeActionCreate      TradeAction = "create"
	TradeActionBuy         TradeAction = "buy"
	TradeActionSell        TradeAction = "sell"
	TradeActionCollectFees TradeAction = "collectCreatorFee"
)

// AmountKind selects how an AmountSpec value is interpreted.
type AmountKind string

const (
	AmountFixed   AmountKind = "fixed"   // SOL to spend
	AmountPercent AmountKind = "percent" // percent of the live balance
	AmountTokens  AmountKind = "tokens"  // explicit token quantity to sell
)

// AmountSpec describes the amount of one trade before it is resolved against balances.
type AmountSpec struct {
	Kind  AmountKind `json:"kind"`
	Value float64    `json:"value"`
}

func FixedAmount(sol float64) AmountSpec { return AmountSpec{Kind: AmountFixed, Value: sol} }

func PercentAmount(pct float64) AmountSpec { return AmountSpec{Kind: AmountPercent, Value: pct} }

func TokenAmount(tokens float64) AmountSpec { return AmountSpec{Kind: AmountTokens, Value: tokens} }

// TradeRequest is one per-wallet item of a batch.
type TradeRequest struct {
	Wallet      WalletRecord
	Token       string
	Side        TradeSide
	Amount      AmountSpec
	Slippage    float64
	PriorityFee float64
	Pool        string
	// Err short-circuits the item with a failure decided before admission.
	Err error
}

// Confirmation is how far a submitted transaction was observed.
type Confirmation string

const (
	ConfirmationConfirmed Confirmation = "confirmed"
	ConfirmationPending   Confirmation = "pending"
)

// TradeResult is the outcome of one batch item. Results keep the order of their requests.
type TradeResult struct {
	OK           bool         `json:"ok"`
	Wallet       string       `json:"wallet"`
	Name         string       `json:"name,omitempty"`
	Signature    string       `json:"signature,omitempty"`
	Error        string       `json:"error,omitempty"`
	ErrorKind    string       `json:"error_kind,omitempty"`
	Amount       float64      `json:"amount"`
	Confirmation Confirmation `json:"confirmation,omitempty"`
}

// Progress counters of a running batch.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
	OK    int `json:"ok"`
	Fail  int `json:"fail"`
}

// Summarize counts successes and failures in results.
func Summarize(results []TradeResult) (ok, fail int) {
	for _, r := range results {
		if r.OK {
			ok++
		} else {
			fail++
		}
	}
	return ok, fail
}

// TokenMetadata is sent with create actions.
type TokenMetadata struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
}

// BuildRequest is the input of the trade-building backend.
type BuildRequest struct {
	PublicKey        string
	Action           TradeAction
	Mint             string
	DenominatedInSol bool
	Amount           float64
	Slippage         float64
	PriorityFee      float64
	Pool             string
	Metadata         *TokenMetadata
}

// TokenTransfer describes an SPL transfer between owners. Amount is in token units;
// zero moves the whole balance. CloseSource closes the emptied source account and
// sends its rent to the destination owner.
type TokenTransfer struct {
	From        string
	To          string
	Mint        string
	FeePayer    string
	Amount      float64
	CloseSource bool
}

// TokenInfo is the name and symbol an indexer reports for a mint.
type TokenInfo struct {
	Mint     string `json:"mint"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals *int   `json:"decimals,omitempty"`
	Source   string `json:"source"`
}

// TxStatus is the chain's view of a signature.
type TxStatus struct {
	Signature     string      `json:"signature"`
	Status        string      `json:"status,omitempty"`
	Confirmations *uint64     `json:"confirmations"`
	Slot          uint64      `json:"slot,omitempty"`
	Err           interface{} `json:"err"`
}

// Found reports whether the chain knows the signature at all.
func (s *TxStatus) Found() bool {
	return s.Status != "" || s.Slot != 0
}
