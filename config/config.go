// Package config loads and validates builder configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/bitfsorg/txbuild-go/txbuild"
)

// Config holds the builder's construction-time settings: a debug flag and
// fee rates per byte class.
type Config struct {
	Debug bool               `yaml:"debug"`
	Rates map[string]float64 `yaml:"rates"`
}

// Default returns the configuration matching the builder's built-in rates.
func Default() Config {
	rates := map[string]float64{}
	for class, rate := range txbuild.DefaultRates() {
		rates[string(class)] = rate
	}
	return Config{Rates: rates}
}

// Load reads a YAML configuration file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Options converts the configuration into builder options.
func (c Config) Options() txbuild.Options {
	rates := txbuild.FeeRates{}
	for class, rate := range c.Rates {
		rates[txbuild.ByteClass(class)] = rate
	}
	return txbuild.Options{
		Debug: c.Debug,
		Rates: rates,
	}
}
