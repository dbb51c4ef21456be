package txbuild

import (
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
)

// Outpoint references the prior output an input spends. Immutable once the
// input is constructed.
type Outpoint struct {
	TxID     chainhash.Hash // internal byte order
	Vout     uint32
	Sequence uint32
}

// PrevOutput is the prior output being spent: its value and locking script.
type PrevOutput struct {
	Satoshis      uint64
	LockingScript *script.Script
}

// Input pairs an outpoint and its prior output with the unlocker that will
// produce the unlocking script.
type Input struct {
	Outpoint Outpoint
	Prev     PrevOutput
	Unlocker Unlocker
}

// NewInput constructs an input from an explicit unlocker.
func NewInput(op Outpoint, prev PrevOutput, u Unlocker) (*Input, error) {
	if prev.LockingScript == nil {
		return nil, fmt.Errorf("%w: prior output locking script", ErrConstruction)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: unlocker", ErrConstruction)
	}
	return &Input{Outpoint: op, Prev: prev, Unlocker: u}, nil
}

// InputParams is the raw construction shape for a default pay-to-key-hash
// input: txid in display hex, output index, the prior output's locking
// script in hex, its value, and an optional sequence number.
type InputParams struct {
	TxID     string
	Vout     uint32
	Script   string
	Satoshis uint64
	Sequence *uint32
}

// NewP2PKHInput constructs an input from raw parameters, inferring the
// default P2PKH unlocker.
func NewP2PKHInput(p InputParams) (*Input, error) {
	txidDisplay, err := hex.DecodeString(p.TxID)
	if err != nil {
		return nil, fmt.Errorf("%w: txid hex: %w", ErrConstruction, err)
	}
	// Display txid is big-endian; chainhash wants internal byte order.
	hash, err := chainhash.NewHash(reverseBytesCopy(txidDisplay))
	if err != nil {
		return nil, fmt.Errorf("%w: txid: %w", ErrConstruction, err)
	}

	scriptBytes, err := hex.DecodeString(p.Script)
	if err != nil {
		return nil, fmt.Errorf("%w: locking script hex: %w", ErrConstruction, err)
	}
	if len(scriptBytes) == 0 {
		return nil, fmt.Errorf("%w: empty locking script", ErrConstruction)
	}

	seq := uint32(transaction.DefaultSequenceNumber)
	if p.Sequence != nil {
		seq = *p.Sequence
	}

	return &Input{
		Outpoint: Outpoint{TxID: *hash, Vout: p.Vout, Sequence: seq},
		Prev: PrevOutput{
			Satoshis:      p.Satoshis,
			LockingScript: script.NewFromBytes(scriptBytes),
		},
		Unlocker: P2PKHUnlocker{},
	}, nil
}

// Size returns the estimated serialized size of the input:
// prevhash(32) + previndex(4) + scriptlen varint + script + sequence(4).
func (in *Input) Size() int {
	n := in.Unlocker.Size()
	return 32 + 4 + varIntLen(uint64(n)) + n + 4
}

// reverseBytesCopy returns a reversed copy of a byte slice.
func reverseBytesCopy(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
