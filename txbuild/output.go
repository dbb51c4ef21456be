package txbuild

import (
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
)

// Output is a normalized destination: a value and a locking script.
type Output struct {
	Satoshis      uint64
	LockingScript *script.Script
}

// NewScriptOutput constructs an output from explicit locking script hex.
func NewScriptOutput(scriptHex string, satoshis uint64) (*Output, error) {
	b, err := hex.DecodeString(scriptHex)
	if err != nil {
		return nil, fmt.Errorf("%w: locking script hex: %w", ErrConstruction, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty locking script", ErrConstruction)
	}
	return &Output{Satoshis: satoshis, LockingScript: script.NewFromBytes(b)}, nil
}

// NewAddressOutput constructs a standard P2PKH output paying to addr.
func NewAddressOutput(addr string, satoshis uint64) (*Output, error) {
	a, err := script.NewAddressFromString(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: address %q: %w", ErrConstruction, addr, err)
	}
	lock, err := p2pkh.Lock(a)
	if err != nil {
		return nil, fmt.Errorf("%w: P2PKH lock script: %w", ErrConstruction, err)
	}
	return &Output{Satoshis: satoshis, LockingScript: lock}, nil
}

// IsData reports whether the output's locking script is provably
// unspendable: an OP_RETURN script, optionally preceded by OP_FALSE.
// Such outputs are exempt from the dust check.
func (o *Output) IsData() bool {
	s := *o.LockingScript
	if len(s) > 0 && s[0] == script.OpRETURN {
		return true
	}
	return len(s) > 1 && s[0] == script.OpFALSE && s[1] == script.OpRETURN
}
