package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/txbuild-go/txbuild"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "txbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.False(t, cfg.Debug)
	assert.Equal(t, 0.5, cfg.Rates["standard"])
	assert.Equal(t, 0.25, cfg.Rates["data"])
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	path := writeTestConfig(t, `
debug: true
rates:
  standard: 1.0
  data: 0.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 1.0, cfg.Rates["standard"])
	assert.Equal(t, 0.5, cfg.Rates["data"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeTestConfig(t, "rates: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rates   map[string]float64
		wantErr error
	}{
		{"valid", map[string]float64{"standard": 0.5, "data": 0.25}, nil},
		{"standard only", map[string]float64{"standard": 0.5}, nil},
		{"empty", nil, ErrNoRates},
		{"no standard", map[string]float64{"data": 0.25}, ErrMissingStandardRate},
		{"unknown class", map[string]float64{"standard": 0.5, "premium": 1.0}, ErrUnknownClass},
		{"zero rate", map[string]float64{"standard": 0}, ErrInvalidRate},
		{"negative rate", map[string]float64{"standard": -1}, ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Config{Rates: tt.rates})
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Config{
		Debug: true,
		Rates: map[string]float64{"standard": 2.0, "data": 1.0},
	}

	opts := cfg.Options()
	assert.True(t, opts.Debug)
	assert.Equal(t, 2.0, opts.Rates[txbuild.ClassStandard])
	assert.Equal(t, 1.0, opts.Rates[txbuild.ClassData])

	// The converted rates drive the builder.
	b := txbuild.New(opts)
	assert.Equal(t, uint64(316), b.EstimateFee(nil),
		"(4+4+1+1+148) bytes at 2 sat/byte")
}
