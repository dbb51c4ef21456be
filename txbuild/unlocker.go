package txbuild

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	sighash "github.com/bsv-blockchain/go-sdk/transaction/sighash"
)

// Unlocker produces the unlocking script for one input.
//
// Size and Placeholder are used during Build so the draft carries a stand-in
// of the exact final length, which makes the fee estimate accurate before any
// signature exists. ScriptSig is called during signing with the builder as
// context, giving the implementation access to the full draft (all outputs
// and attached source output values) for sighash computation.
type Unlocker interface {
	// Size returns the estimated byte length of the unlocking script.
	Size() int

	// Placeholder returns a script of exactly Size() bytes with all dynamic
	// data zeroed.
	Placeholder() (*script.Script, error)

	// ScriptSig returns the final unlocking script for the input at index in
	// the builder's draft. The result must have the same byte length as the
	// placeholder.
	ScriptSig(b *Builder, index int, params UnlockParams) (*script.Script, error)
}

// UnlockParams carries caller-supplied signing material.
type UnlockParams struct {
	PrivateKey *ec.PrivateKey

	// SigHashFlag selects the signature hash flag. Zero means
	// sighash.AllForkID.
	SigHashFlag sighash.Flag
}

const (
	// p2pkhSigLen is the assumed length of a DER signature plus the trailing
	// sighash flag byte. Real signatures are occasionally one byte shorter.
	p2pkhSigLen = 72

	compressedPubKeyLen = 33

	// p2pkhScriptSigSize: push(1)+sig(72) + push(1)+pubkey(33).
	p2pkhScriptSigSize = 1 + p2pkhSigLen + 1 + compressedPubKeyLen
)

// P2PKHUnlocker unlocks standard pay-to-pubkey-hash outputs with an ECDSA
// signature over the ForkID sighash. It is the default unlocker for inputs
// constructed from raw parameters.
type P2PKHUnlocker struct{}

// Compile-time interface check.
var _ Unlocker = P2PKHUnlocker{}

// Size returns the estimated unlocking script length for a P2PKH spend.
func (P2PKHUnlocker) Size() int { return p2pkhScriptSigSize }

// Placeholder returns a zeroed <sig> <pubkey> script of the final length.
func (P2PKHUnlocker) Placeholder() (*script.Script, error) {
	s := &script.Script{}
	if err := s.AppendPushData(make([]byte, p2pkhSigLen)); err != nil {
		return nil, fmt.Errorf("%w: placeholder signature push: %w", ErrConstruction, err)
	}
	if err := s.AppendPushData(make([]byte, compressedPubKeyLen)); err != nil {
		return nil, fmt.Errorf("%w: placeholder pubkey push: %w", ErrConstruction, err)
	}
	return s, nil
}

// ScriptSig computes the ForkID sighash over the builder's draft for the
// given input and returns <sig+flag> <pubkey>.
func (P2PKHUnlocker) ScriptSig(b *Builder, index int, params UnlockParams) (*script.Script, error) {
	if params.PrivateKey == nil {
		return nil, fmt.Errorf("%w: private key", ErrSigning)
	}

	flag := params.SigHashFlag
	if flag == 0 {
		flag = sighash.AllForkID
	}

	sigHash, err := b.tx.CalcInputSignatureHash(uint32(index), flag)
	if err != nil {
		return nil, fmt.Errorf("%w: sighash for input %d: %w", ErrSigning, index, err)
	}

	sig, err := params.PrivateKey.Sign(sigHash)
	if err != nil {
		return nil, fmt.Errorf("%w: input %d: %w", ErrSigning, index, err)
	}

	sigBytes := append(sig.Serialize(), byte(flag))

	s := &script.Script{}
	if err := s.AppendPushData(sigBytes); err != nil {
		return nil, fmt.Errorf("%w: push signature: %w", ErrSigning, err)
	}
	if err := s.AppendPushData(params.PrivateKey.PubKey().Compressed()); err != nil {
		return nil, fmt.Errorf("%w: push pubkey: %w", ErrSigning, err)
	}
	return s, nil
}
