package chain

import (
	"crypto/ed25519"
	"encoding/json"
	"strings"

	"multiwallet-trader/pkg/apperror"

	solana "github.com/gagliardetto/solana-go"
)

// Keyring implements ports.Keyring with ed25519 Solana keypairs.
type Keyring struct{}

// NewKeyring creates a Keyring.
func NewKeyring() *Keyring { return &Keyring{} }

// Generate creates a new keypair and returns its base58 public and secret keys.
func (k *Keyring) Generate() (string, string, error) {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		return "", "", apperror.InternalError(err)
	}
	return priv.PublicKey().String(), priv.String(), nil
}

// Parse accepts a base58 secret key or a JSON array of its 64 bytes, as written by
// solana-keygen, and returns the public key and the base58 secret.
func (k *Keyring) Parse(secret string) (string, string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", "", apperror.Validation("secret key is required")
	}

	var raw []byte
	if strings.HasPrefix(secret, "[") {
		var ints []int
		if err := json.Unmarshal([]byte(secret), &ints); err != nil {
			return "", "", apperror.Validation("secret key array is not valid JSON")
		}
		raw = make([]byte, 0, len(ints))
		for _, v := range ints {
			if v < 0 || v > 255 {
				return "", "", apperror.Validation("secret key array holds a value outside 0-255")
			}
			raw = append(raw, byte(v))
		}
	} else {
		priv, err := solana.PrivateKeyFromBase58(secret)
		if err != nil {
			return "", "", apperror.Validation("secret key is not valid base58")
		}
		raw = priv
	}

	if len(raw) != ed25519.PrivateKeySize {
		return "", "", apperror.Validation("secret key must be 64 bytes")
	}
	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !derived.Equal(ed25519.PrivateKey(raw)) {
		return "", "", apperror.Validation("secret key does not match its public half")
	}

	priv := solana.PrivateKey(raw)
	return priv.PublicKey().String(), priv.String(), nil
}
