package chain

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"testing"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/pkg/apperror"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ixTransferChecked = 12
	ixCloseAccount    = 9
)

type tokenFixture struct {
	owner, dest, payer solana.PublicKey
	mint               solana.PublicKey
	srcATA, dstATA     solana.PublicKey
}

func newTokenFixture(t *testing.T) tokenFixture {
	f := tokenFixture{
		owner: solana.NewWallet().PublicKey(),
		dest:  solana.NewWallet().PublicKey(),
		payer: solana.NewWallet().PublicKey(),
		mint:  solana.NewWallet().PublicKey(),
	}
	var err error
	f.srcATA, _, err = solana.FindAssociatedTokenAddress(f.owner, f.mint)
	require.NoError(t, err)
	f.dstATA, _, err = solana.FindAssociatedTokenAddress(f.dest, f.mint)
	require.NoError(t, err)
	return f
}

// serve answers account lookups for the accounts in existing and reports amount
// base units of a 6-decimal mint in the source account.
func (f tokenFixture) serve(node *fakeNode, amount string, existing ...solana.PublicKey) {
	node.handle("getAccountInfo", func(_ int, params json.RawMessage) (interface{}, *rpcError) {
		var args []json.RawMessage
		if err := json.Unmarshal(params, &args); err != nil || len(args) == 0 {
			return nil, &rpcError{Code: -32602, Message: "bad params"}
		}
		var key string
		_ = json.Unmarshal(args[0], &key)
		for _, e := range existing {
			if e.String() == key {
				return withContext(map[string]interface{}{
					"data":       []string{"", "base64"},
					"executable": false,
					"lamports":   2039280,
					"owner":      solana.TokenProgramID.String(),
					"rentEpoch":  0,
					"space":      165,
				}), nil
			}
		}
		return withContext(nil), nil
	})
	node.handle("getTokenAccountBalance", func(int, json.RawMessage) (interface{}, *rpcError) {
		return withContext(map[string]interface{}{
			"amount":         amount,
			"decimals":       6,
			"uiAmountString": amount,
		}), nil
	})
	node.handle("getLatestBlockhash", func(int, json.RawMessage) (interface{}, *rpcError) {
		return withContext(map[string]interface{}{"blockhash": solana.Hash{7}.String(), "lastValidBlockHeight": 100}), nil
	})
}

func decodeUnsigned(t *testing.T, raw []byte) *solana.Transaction {
	t.Helper()
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	require.NoError(t, err)
	return tx
}

func programOf(tx *solana.Transaction, ix solana.CompiledInstruction) solana.PublicKey {
	return tx.Message.AccountKeys[ix.ProgramIDIndex]
}

func TestClient_BuildTokenTransferCreatesMissingDestination(t *testing.T) {
	node, c := newFakeNode(t)
	f := newTokenFixture(t)
	f.serve(node, "2500000", f.srcATA)

	unsigned, moved, err := c.BuildTokenTransfer(context.Background(), domain.TokenTransfer{
		From:     f.owner.String(),
		To:       f.dest.String(),
		Mint:     f.mint.String(),
		FeePayer: f.owner.String(),
		Amount:   1.25,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.25, moved, 1e-12)

	tx := decodeUnsigned(t, unsigned)
	assert.Equal(t, f.owner, tx.Message.AccountKeys[0])
	require.Len(t, tx.Message.Instructions, 2)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, programOf(tx, tx.Message.Instructions[0]))

	transfer := tx.Message.Instructions[1]
	assert.Equal(t, solana.TokenProgramID, programOf(tx, transfer))
	require.Len(t, transfer.Data, 10)
	assert.Equal(t, byte(ixTransferChecked), transfer.Data[0])
	assert.Equal(t, uint64(1_250_000), binary.LittleEndian.Uint64(transfer.Data[1:9]))
	assert.Equal(t, byte(6), transfer.Data[9])
}

func TestClient_BuildTokenTransferWholeBalanceClosesSource(t *testing.T) {
	node, c := newFakeNode(t)
	f := newTokenFixture(t)
	f.serve(node, "2500000", f.srcATA, f.dstATA)

	unsigned, moved, err := c.BuildTokenTransfer(context.Background(), domain.TokenTransfer{
		From:        f.owner.String(),
		To:          f.dest.String(),
		Mint:        f.mint.String(),
		FeePayer:    f.payer.String(),
		CloseSource: true,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, moved, 1e-12)

	tx := decodeUnsigned(t, unsigned)
	assert.Equal(t, f.payer, tx.Message.AccountKeys[0])
	require.Len(t, tx.Message.Instructions, 2)
	assert.Equal(t, byte(ixTransferChecked), tx.Message.Instructions[0].Data[0])
	assert.Equal(t, uint64(2_500_000), binary.LittleEndian.Uint64(tx.Message.Instructions[0].Data[1:9]))
	assert.Equal(t, byte(ixCloseAccount), tx.Message.Instructions[1].Data[0])
	assert.Equal(t, solana.TokenProgramID, programOf(tx, tx.Message.Instructions[1]))
}

func TestClient_BuildTokenTransferFailures(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		existing func(f tokenFixture) []solana.PublicKey
		request  float64
		wantKind apperror.Kind
	}{
		{
			name:     "no source account",
			amount:   "0",
			existing: func(tokenFixture) []solana.PublicKey { return nil },
			wantKind: apperror.KindInsufficientFunds,
		},
		{
			name:     "empty source account",
			amount:   "0",
			existing: func(f tokenFixture) []solana.PublicKey { return []solana.PublicKey{f.srcATA} },
			wantKind: apperror.KindInsufficientFunds,
		},
		{
			name:     "more than held",
			amount:   "1000000",
			existing: func(f tokenFixture) []solana.PublicKey { return []solana.PublicKey{f.srcATA} },
			request:  2,
			wantKind: apperror.KindInsufficientFunds,
		},
		{
			name:     "below one base unit",
			amount:   "1000000",
			existing: func(f tokenFixture) []solana.PublicKey { return []solana.PublicKey{f.srcATA} },
			request:  0.0000001,
			wantKind: apperror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, c := newFakeNode(t)
			f := newTokenFixture(t)
			f.serve(node, tt.amount, tt.existing(f)...)

			_, _, err := c.BuildTokenTransfer(context.Background(), domain.TokenTransfer{
				From:     f.owner.String(),
				To:       f.dest.String(),
				Mint:     f.mint.String(),
				FeePayer: f.owner.String(),
				Amount:   tt.request,
			})
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
			assert.Zero(t, node.count("getLatestBlockhash"))
		})
	}
}

func TestClient_TokenInfo(t *testing.T) {
	node, c := newFakeNode(t)
	mint := solana.NewWallet().PublicKey()
	missing := solana.NewWallet().PublicKey()

	node.handle("getAsset", func(_ int, params json.RawMessage) (interface{}, *rpcError) {
		// DAS takes {"id": ...} or the positional ["..."] form.
		var args struct {
			ID string `json:"id"`
		}
		if json.Unmarshal(params, &args) != nil {
			var positional []string
			if err := json.Unmarshal(params, &positional); err != nil || len(positional) != 1 {
				return nil, &rpcError{Code: -32602, Message: "invalid params"}
			}
			args.ID = positional[0]
		}
		if args.ID != mint.String() {
			return nil, &rpcError{Code: -32000, Message: "Asset Not Found"}
		}
		return map[string]interface{}{
			"id":         args.ID,
			"content":    map[string]interface{}{"metadata": map[string]string{"name": " Moon ", "symbol": "MOON"}},
			"token_info": map[string]interface{}{"decimals": 6},
		}, nil
	})

	info, err := c.TokenInfo(context.Background(), mint.String())
	require.NoError(t, err)
	assert.Equal(t, "Moon", info.Name)
	assert.Equal(t, "MOON", info.Symbol)
	require.NotNil(t, info.Decimals)
	assert.Equal(t, 6, *info.Decimals)

	_, err = c.TokenInfo(context.Background(), missing.String())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = c.TokenInfo(context.Background(), "not-a-mint")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestClient_TokenInfoWithoutDASIsABackendError(t *testing.T) {
	_, c := newFakeNode(t)

	_, err := c.TokenInfo(context.Background(), solana.NewWallet().PublicKey().String())
	require.Error(t, err)
	assert.NotEqual(t, apperror.KindNotFound, apperror.KindOf(err))
}
