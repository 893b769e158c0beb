package domain

// WalletRole distinguishes the single dev wallet from buyer wallets.
type WalletRole string

const (
	WalletRoleDev   WalletRole = "dev"
	WalletRoleBuyer WalletRole = "buyer"
)

// WalletRecord is one wallet of the registry with its trade overrides.
// Amounts are in SOL, percents in 0..100.
type WalletRecord struct {
	Name             string     `json:"name"`
	PublicKey        string     `json:"public_key"`
	SecretKey        string     `json:"-"` // base58 secret key, never serialized to clients
	BuyAmountFixed   float64    `json:"buy_amount_fixed"`
	BuyAmountPercent float64    `json:"buy_amount_percent"`
	SellPercent      float64    `json:"sell_percent"`
	Role             WalletRole `json:"role"`
}

// OverrideUpdate sets the per-wallet trade overrides of one wallet.
type OverrideUpdate struct {
	PublicKey        string  `json:"public_key"`
	BuyAmountFixed   float64 `json:"buy_amount_fixed"`
	BuyAmountPercent float64 `json:"buy_amount_percent"`
	SellPercent      float64 `json:"sell_percent"`
}

// ApplyOverrides replaces the wallet's overrides with u.
// A fixed and a percent buy amount never coexist: when both are positive the
// percent is kept and the fixed amount cleared.
func (w *WalletRecord) ApplyOverrides(u OverrideUpdate) {
	fixed := positive(u.BuyAmountFixed)
	percent := positive(u.BuyAmountPercent)

	switch {
	case percent > 0:
		w.BuyAmountPercent = percent
		w.BuyAmountFixed = 0
	default:
		w.BuyAmountFixed = fixed
		w.BuyAmountPercent = 0
	}
	w.SellPercent = positive(u.SellPercent)
}

// RegistryDocument is the whole persisted wallet registry.
type RegistryDocument struct {
	Dev    *WalletRecord  `json:"dev,omitempty"`
	Buyers []WalletRecord `json:"buyers"`
}

// Normalize stamps roles onto the records.
func (d *RegistryDocument) Normalize() {
	if d.Dev != nil {
		d.Dev.Role = WalletRoleDev
	}
	for i := range d.Buyers {
		d.Buyers[i].Role = WalletRoleBuyer
	}
}

// BuyerIndex returns the position of the buyer with publicKey, or -1.
func (d *RegistryDocument) BuyerIndex(publicKey string) int {
	for i := range d.Buyers {
		if d.Buyers[i].PublicKey == publicKey {
			return i
		}
	}
	return -1
}

// Find looks the wallet up in the dev slot and the buyer list.
func (d *RegistryDocument) Find(publicKey string) (WalletRecord, bool) {
	if d.Dev != nil && d.Dev.PublicKey == publicKey {
		return *d.Dev, true
	}
	if i := d.BuyerIndex(publicKey); i >= 0 {
		return d.Buyers[i], true
	}
	return WalletRecord{}, false
}

// Contains reports whether publicKey is already registered in any role.
func (d *RegistryDocument) Contains(publicKey string) bool {
	_, ok := d.Find(publicKey)
	return ok
}

// All returns the dev wallet first, followed by the buyers in order.
func (d *RegistryDocument) All() []WalletRecord {
	out := make([]WalletRecord, 0, len(d.Buyers)+1)
	if d.Dev != nil {
		out = append(out, *d.Dev)
	}
	return append(out, d.Buyers...)
}

// PromoteToDev moves the buyer publicKey into the dev slot. A previous dev that is not
// also a buyer is put back into the buyer list at the vacated position with cleared
// overrides. It returns false when publicKey is not a buyer.
func (d *RegistryDocument) PromoteToDev(publicKey string) bool {
	idx := d.BuyerIndex(publicKey)
	if idx < 0 {
		return false
	}

	selected := d.Buyers[idx]
	d.Buyers = append(d.Buyers[:idx:idx], d.Buyers[idx+1:]...)

	if prev := d.Dev; prev != nil && prev.PublicKey != publicKey && d.BuyerIndex(prev.PublicKey) < 0 {
		demoted := WalletRecord{
			Name:      "dev",
			PublicKey: prev.PublicKey,
			SecretKey: prev.SecretKey,
			Role:      WalletRoleBuyer,
		}
		d.Buyers = append(d.Buyers[:idx:idx], append([]WalletRecord{demoted}, d.Buyers[idx:]...)...)
	}

	selected.Role = WalletRoleDev
	d.Dev = &selected
	return true
}

func positive(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
