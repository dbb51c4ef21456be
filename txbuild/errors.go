package txbuild

import "errors"

var (
	// ErrConstruction indicates malformed input or output parameters.
	ErrConstruction = errors.New("txbuild: invalid construction parameters")

	// ErrDustOutput indicates a spendable output at or below the dust threshold.
	ErrDustOutput = errors.New("txbuild: output below dust threshold")

	// ErrNotBuilt indicates signing was attempted before Build, or the draft
	// no longer corresponds to the declared input list.
	ErrNotBuilt = errors.New("txbuild: transaction not built")

	// ErrSigning indicates an unlocking script could not be produced.
	ErrSigning = errors.New("txbuild: signing failed")
)
