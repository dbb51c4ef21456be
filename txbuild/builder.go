// Package txbuild assembles fee-correct, signable transactions from
// spendable prior outputs and desired destinations.
//
// The builder runs a two-phase protocol. Build produces a draft whose inputs
// carry placeholder unlocking scripts of the exact final length, which makes
// the byte-weighted fee estimate accurate before any signature exists.
// SignInput and Sign then replace the placeholders with final unlocking
// scripts produced by each input's Unlocker.
package txbuild

import (
	"fmt"
	"os"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
	"github.com/rs/zerolog"
)

// Options configures a Builder. Supplied at construction, immutable after.
type Options struct {
	// Debug enables build and sign logging. Without it the builder is silent.
	Debug bool

	// Rates are the fee rates per byte class. Nil means DefaultRates.
	Rates FeeRates

	// Logger receives debug output. Nil with Debug set falls back to a
	// console logger on stderr.
	Logger *zerolog.Logger
}

// Builder owns the input list, output list and change configuration, and
// assembles the transaction draft.
//
// A Builder is not safe for concurrent use: Build replaces the draft
// wholesale and Sign assumes the draft of the immediately preceding Build.
type Builder struct {
	rates FeeRates
	log   zerolog.Logger

	inputs       []*Input
	outputs      []*Output
	changeScript *script.Script

	// Latest draft, replaced wholesale on every Build. Nil until built.
	tx *transaction.Transaction
}

// New creates a Builder with the given options.
func New(opts Options) *Builder {
	rates := opts.Rates
	if rates == nil {
		rates = DefaultRates()
	}

	log := zerolog.Nop()
	if opts.Debug {
		if opts.Logger != nil {
			log = *opts.Logger
		} else {
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(zerolog.DebugLevel).
				With().Timestamp().Logger()
		}
	}

	return &Builder{rates: rates, log: log}
}

// AddInput appends constructed inputs in order.
func (b *Builder) AddInput(ins ...*Input) {
	b.inputs = append(b.inputs, ins...)
}

// AddInputParams constructs a default P2PKH input per parameter set and
// appends each in order. Elements are applied independently: inputs
// constructed before a failing element stay appended, and the error reports
// the failing index.
func (b *Builder) AddInputParams(params ...InputParams) error {
	for i, p := range params {
		in, err := NewP2PKHInput(p)
		if err != nil {
			return fmt.Errorf("txbuild: input params %d: %w", i, err)
		}
		b.inputs = append(b.inputs, in)
	}
	return nil
}

// AddOutput appends constructed outputs in order.
func (b *Builder) AddOutput(outs ...*Output) {
	b.outputs = append(b.outputs, outs...)
}

// Inputs returns the declared input list.
func (b *Builder) Inputs() []*Input { return b.inputs }

// Outputs returns the declared output list.
func (b *Builder) Outputs() []*Output { return b.outputs }

// SetChangeAddress derives a P2PKH change script from addr, replacing any
// previously configured change destination.
func (b *Builder) SetChangeAddress(addr string) error {
	a, err := script.NewAddressFromString(addr)
	if err != nil {
		return fmt.Errorf("%w: change address %q: %w", ErrConstruction, addr, err)
	}
	lock, err := p2pkh.Lock(a)
	if err != nil {
		return fmt.Errorf("%w: change lock script: %w", ErrConstruction, err)
	}
	b.changeScript = lock
	return nil
}

// SetChangeScript configures an explicit change locking script, replacing
// any previously configured change destination. Nil clears it.
func (b *Builder) SetChangeScript(s *script.Script) {
	b.changeScript = s
}

// ChangeScript returns the configured change locking script, or nil.
func (b *Builder) ChangeScript() *script.Script { return b.changeScript }

// ChangeAddress recovers the change destination as an address string. It
// reports false when no change destination is configured or the stored
// script is not the standard P2PKH shape.
func (b *Builder) ChangeAddress() (string, bool) {
	if b.changeScript == nil {
		return "", false
	}
	pkh, err := b.changeScript.PublicKeyHash()
	if err != nil {
		return "", false
	}
	a, err := script.NewAddressFromPublicKeyHash(pkh, true)
	if err != nil {
		return "", false
	}
	return a.AddressString, true
}

// Tx returns the latest draft, or nil before the first Build.
func (b *Builder) Tx() *transaction.Transaction { return b.tx }

// Build assembles a fresh draft transaction from the current inputs, outputs
// and change configuration. Any previous draft is discarded, so the draft is
// always a pure function of the builder's declared state and Build can be
// re-run at any time.
//
// Inputs carry placeholder unlocking scripts and their source outputs, so a
// later SignInput can compute the sighash. Spendable outputs at or below the
// dust threshold abort the build. If a change destination is configured and
// the remainder after fee clears the dust threshold, a change output is
// appended; otherwise the remainder is left to the fee.
func (b *Builder) Build() (*transaction.Transaction, error) {
	tx := transaction.NewTransaction()

	for i, in := range b.inputs {
		placeholder, err := in.Unlocker.Placeholder()
		if err != nil {
			return nil, fmt.Errorf("txbuild: input %d placeholder: %w", i, err)
		}
		txid := in.Outpoint.TxID
		txIn := &transaction.TransactionInput{
			SourceTXID:       &txid,
			SourceTxOutIndex: in.Outpoint.Vout,
			UnlockingScript:  placeholder,
			SequenceNumber:   in.Outpoint.Sequence,
		}
		txIn.SetSourceTxOutput(&transaction.TransactionOutput{
			Satoshis:      in.Prev.Satoshis,
			LockingScript: in.Prev.LockingScript,
		})
		tx.AddInput(txIn)
	}

	for i, out := range b.outputs {
		if !out.IsData() && out.Satoshis <= DustLimit {
			return nil, fmt.Errorf("%w: output %d value %d sat", ErrDustOutput, i, out.Satoshis)
		}
		tx.AddOutput(&transaction.TransactionOutput{
			Satoshis:      out.Satoshis,
			LockingScript: out.LockingScript,
		})
	}

	if b.changeScript != nil {
		change := b.changeValue()
		if change > int64(DustLimit) {
			tx.AddOutput(&transaction.TransactionOutput{
				Satoshis:      uint64(change),
				LockingScript: b.changeScript,
			})
			b.log.Debug().Int64("satoshis", change).Msg("change output appended")
		} else {
			// Remainder at or below dust goes to the fee.
			b.log.Debug().Int64("satoshis", change).Msg("change below dust, dropped")
		}
	}

	b.tx = tx
	b.log.Debug().
		Int("inputs", len(tx.Inputs)).
		Int("outputs", len(tx.Outputs)).
		Uint64("fee", b.EstimateFee(nil)).
		Msg("draft built")
	return tx, nil
}

// changeValue computes input sum minus output sum minus the estimated fee.
// When declared outputs exist, the change output's own marginal size is not
// yet reflected in the estimate, so a fixed overhead is subtracted.
func (b *Builder) changeValue() int64 {
	var inSum, outSum int64
	for _, in := range b.inputs {
		inSum += int64(in.Prev.Satoshis)
	}
	for _, out := range b.outputs {
		outSum += int64(out.Satoshis)
	}
	change := inSum - outSum - int64(b.EstimateFee(nil))
	if len(b.outputs) > 0 {
		change -= changeOutputOverhead
	}
	return change
}

// SignInput replaces the placeholder unlocking script of draft input i with
// the final script produced by the input's Unlocker.
//
// It fails with ErrNotBuilt when no draft exists, the draft's input count
// diverged from the declared inputs, or the draft input's outpoint no longer
// matches the declared input (integrity check across the two build phases).
// Unlocker failures are propagated unmodified.
func (b *Builder) SignInput(i int, params UnlockParams) error {
	if b.tx == nil || len(b.tx.Inputs) != len(b.inputs) {
		return fmt.Errorf("%w: call Build first", ErrNotBuilt)
	}
	if i < 0 || i >= len(b.inputs) {
		return fmt.Errorf("%w: input index %d out of range", ErrNotBuilt, i)
	}

	txIn := b.tx.Inputs[i]
	want := b.inputs[i].Outpoint.TxID
	if txIn.SourceTXID == nil || !txIn.SourceTXID.IsEqual(&want) {
		return fmt.Errorf("%w: draft input %d outpoint mismatch", ErrNotBuilt, i)
	}

	scriptSig, err := b.inputs[i].Unlocker.ScriptSig(b, i, params)
	if err != nil {
		return err
	}
	txIn.UnlockingScript = scriptSig
	return nil
}

// InputResult records the outcome of signing one input during Sign.
type InputResult struct {
	Index int
	Err   error
}

// Sign signs every draft input with the given params, best-effort: a failing
// input is recorded in its result and logged, not propagated, and signing
// continues with the next input. Callers needing all-or-nothing semantics
// must inspect the results.
//
// The precondition that the draft matches the declared inputs is still
// checked up front and returns ErrNotBuilt.
func (b *Builder) Sign(params UnlockParams) ([]InputResult, error) {
	if b.tx == nil || len(b.tx.Inputs) != len(b.inputs) {
		return nil, fmt.Errorf("%w: call Build first", ErrNotBuilt)
	}

	results := make([]InputResult, len(b.inputs))
	for i := range b.inputs {
		err := b.SignInput(i, params)
		results[i] = InputResult{Index: i, Err: err}
		if err != nil {
			b.log.Debug().Int("input", i).Err(err).Msg("sign input failed")
		}
	}
	return results, nil
}
