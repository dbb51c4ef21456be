package txbuild

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bsv-blockchain/go-sdk/script"
)

// DataItem is one push in a null-data output's payload: either raw bytes
// pushed as data, or a single opcode. Construct via DataBytes, DataHex,
// DataString or DataOp.
type DataItem struct {
	data []byte
	op   byte
	isOp bool
}

// DataBytes is a payload item pushed as raw bytes.
func DataBytes(b []byte) DataItem { return DataItem{data: b} }

// DataHex parses a hex payload item, with or without a "0x" prefix.
func DataHex(s string) (DataItem, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return DataItem{}, fmt.Errorf("%w: data item hex: %w", ErrConstruction, err)
	}
	return DataItem{data: b}, nil
}

// DataString is a payload item carrying the raw bytes of its text.
func DataString(s string) DataItem { return DataItem{data: []byte(s)} }

// DataOp is a payload item emitted as a single opcode. Use
// DataOp(script.Op0) for a zero/null item.
func DataOp(op byte) DataItem { return DataItem{op: op, isOp: true} }

// NewDataOutput constructs a null-data output: OP_FALSE OP_RETURN followed
// by one push (or opcode) per payload item. The script is provably
// unspendable, so the output is exempt from the dust check and satoshis is
// normally zero.
func NewDataOutput(items []DataItem, satoshis uint64) (*Output, error) {
	s := &script.Script{}
	*s = append(*s, script.Op0, script.OpRETURN)

	for i, item := range items {
		if item.isOp {
			if err := s.AppendOpcodes(item.op); err != nil {
				return nil, fmt.Errorf("%w: data item %d opcode: %w", ErrConstruction, i, err)
			}
			continue
		}
		if err := s.AppendPushData(item.data); err != nil {
			return nil, fmt.Errorf("%w: data item %d push: %w", ErrConstruction, i, err)
		}
	}

	return &Output{Satoshis: satoshis, LockingScript: s}, nil
}
