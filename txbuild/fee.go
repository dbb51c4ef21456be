package txbuild

import "math"

// ByteClass names a fee class for a slice of estimated transaction bytes.
type ByteClass string

const (
	// ClassStandard covers fixed overhead, inputs and spendable outputs.
	ClassStandard ByteClass = "standard"
	// ClassData covers null-data (OP_RETURN) output bytes.
	ClassData ByteClass = "data"
)

// FeeRates maps a byte class to its rate in satoshis per byte.
type FeeRates map[ByteClass]float64

// DefaultRates returns the builder's default fee rates.
func DefaultRates() FeeRates {
	return FeeRates{
		ClassStandard: 0.5,
		ClassData:     0.25,
	}
}

const (
	// DustLimit is the minimum spendable output value in satoshis.
	DustLimit = uint64(546)

	// defaultInputSize is the assumed serialized size of one input when no
	// inputs are attached yet:
	// prevhash(32) + previndex(4) + scriptlen varint(1) + script(107) + sequence(4).
	defaultInputSize = 148

	// changeOutputOverhead approximates half the byte cost of a change
	// output at the standard rate. Subtracted from the change value when at
	// least one declared output exists, since the fee estimate taken before
	// the change output is appended does not cover its own bytes.
	changeOutputOverhead = 16
)

// varIntLen returns the serialized length of n as a Bitcoin varint.
func varIntLen(n uint64) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// estimateSizes computes the estimated transaction size broken down by byte
// class for the builder's current inputs, outputs and change configuration.
func (b *Builder) estimateSizes() map[ByteClass]int {
	sizes := map[ByteClass]int{
		ClassStandard: 0,
		ClassData:     0,
	}

	// Fixed overhead: version(4) + locktime(4) + input and output count varints.
	sizes[ClassStandard] += 4 + 4 +
		varIntLen(uint64(len(b.inputs))) + varIntLen(uint64(len(b.outputs)))

	// Inputs: each input's own size estimate, or one assumed default input so
	// the fee can be estimated before any input is attached.
	if len(b.inputs) == 0 {
		sizes[ClassStandard] += defaultInputSize
	} else {
		for _, in := range b.inputs {
			sizes[ClassStandard] += in.Size()
		}
	}

	// Outputs: value(8) + scriptlen varint + script, classed by script kind.
	for _, out := range b.outputs {
		n := len(*out.LockingScript)
		sz := 8 + varIntLen(uint64(n)) + n
		if out.IsData() {
			sizes[ClassData] += sz
		} else {
			sizes[ClassStandard] += sz
		}
	}

	// No declared outputs but a change destination configured: assume one
	// standard output of the destination's size.
	if len(b.outputs) == 0 && b.changeScript != nil {
		n := len(*b.changeScript)
		sizes[ClassStandard] += 8 + varIntLen(uint64(n)) + n
	}

	return sizes
}

// EstimateFee returns the estimated fee in satoshis for the current inputs,
// outputs and change configuration: each byte class multiplied by its rate,
// summed, rounded up to the next integer.
//
// A nil rates argument uses the builder's configured rates. Passing rates
// overrides them for this call only without mutating the builder.
func (b *Builder) EstimateFee(rates FeeRates) uint64 {
	if rates == nil {
		rates = b.rates
	}

	total := 0.0
	for class, n := range b.estimateSizes() {
		rate, ok := rates[class]
		if !ok {
			rate = rates[ClassStandard]
		}
		total += float64(n) * rate
	}
	return uint64(math.Ceil(total))
}
