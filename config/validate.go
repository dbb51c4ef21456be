package config

import (
	"fmt"
	"math"

	"github.com/bitfsorg/txbuild-go/txbuild"
)

// validClasses lists the accepted byte class names.
var validClasses = map[string]bool{
	string(txbuild.ClassStandard): true,
	string(txbuild.ClassData):     true,
}

// Validate checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func Validate(cfg Config) error {
	if len(cfg.Rates) == 0 {
		return ErrNoRates
	}

	if _, ok := cfg.Rates[string(txbuild.ClassStandard)]; !ok {
		return ErrMissingStandardRate
	}

	for class, rate := range cfg.Rates {
		if !validClasses[class] {
			return fmt.Errorf("%w: %q", ErrUnknownClass, class)
		}
		if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidRate, class, rate)
		}
	}

	return nil
}
