package chain

import (
	"fmt"
	"strings"

	"multiwallet-trader/pkg/apperror"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// Signer implements ports.TxSigner for serialized Solana transactions.
type Signer struct{}

// NewSigner creates a Signer.
func NewSigner() *Signer { return &Signer{} }

// Sign decodes unsigned, signs it with every required key found among secretKeys and
// re-serializes it. A required signer without a key is a validation error.
func (s *Signer) Sign(unsigned []byte, secretKeys ...string) ([]byte, error) {
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(unsigned))
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("decode transaction: %v", err))
	}

	keys := make(map[solana.PublicKey]solana.PrivateKey, len(secretKeys))
	for _, secret := range secretKeys {
		priv, err := solana.PrivateKeyFromBase58(strings.TrimSpace(secret))
		if err != nil {
			return nil, apperror.Validation("invalid secret key")
		}
		keys[priv.PublicKey()] = priv
	}

	// Gateway transactions arrive with zeroed placeholder signatures.
	tx.Signatures = nil
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if priv, ok := keys[key]; ok {
			return &priv
		}
		return nil
	}); err != nil {
		return nil, apperror.Validation(fmt.Sprintf("sign transaction: %v", err))
	}

	out, err := tx.MarshalBinary()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode signed transaction: %w", err))
	}
	return out, nil
}
