package utxostore

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("utxostore: required parameter is nil")

	// ErrInvalidUTXO indicates a malformed UTXO record.
	ErrInvalidUTXO = errors.New("utxostore: invalid utxo")

	// ErrNotFound indicates no UTXO exists for the given outpoint.
	ErrNotFound = errors.New("utxostore: utxo not found")

	// ErrInsufficientFunds indicates the stored UTXOs cannot cover a
	// selection target.
	ErrInsufficientFunds = errors.New("utxostore: insufficient funds")
)
