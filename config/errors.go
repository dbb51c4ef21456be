package config

import "errors"

var (
	// ErrNoRates indicates the rates table is empty.
	ErrNoRates = errors.New("config: at least one fee rate is required")

	// ErrMissingStandardRate indicates the mandatory standard class rate is absent.
	ErrMissingStandardRate = errors.New("config: missing \"standard\" fee rate")

	// ErrInvalidRate indicates a fee rate is zero, negative, or not finite.
	ErrInvalidRate = errors.New("config: fee rates must be positive and finite")

	// ErrUnknownClass indicates a rate names an unrecognized byte class.
	ErrUnknownClass = errors.New("config: unknown byte class (must be \"standard\" or \"data\")")
)
