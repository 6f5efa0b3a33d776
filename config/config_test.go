package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/trade"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "MES", cfg.Instrument.Symbol)
	assert.Equal(t, 0.62, cfg.Commission.PerUnit)
	assert.Equal(t, trade.DefaultCosts, cfg.Costs())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func(mut func(c *Config)) *Config {
		c := Default()
		mut(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name:    "missing symbol",
			config:  valid(func(c *Config) { c.Instrument.Symbol = "" }),
			wantErr: true,
			errMsg:  "instrument.symbol is required",
		},
		{
			name:    "zero point value",
			config:  valid(func(c *Config) { c.Instrument.PointValue = 0 }),
			wantErr: true,
			errMsg:  "instrument.point_value must be positive",
		},
		{
			name:    "negative tick size",
			config:  valid(func(c *Config) { c.Instrument.TickSize = -0.25 }),
			wantErr: true,
			errMsg:  "instrument.tick_size must be positive",
		},
		{
			name:    "negative commission",
			config:  valid(func(c *Config) { c.Commission.PerUnit = -1 }),
			wantErr: true,
			errMsg:  "commission.per_unit must not be negative",
		},
		{
			name:    "zero commission is fine",
			config:  valid(func(c *Config) { c.Commission.PerUnit = 0 }),
			wantErr: false,
		},
		{
			name:    "missing db path",
			config:  valid(func(c *Config) { c.Journal.DBPath = "" }),
			wantErr: true,
			errMsg:  "journal.db_path is required",
		},
		{
			name:    "bad log format",
			config:  valid(func(c *Config) { c.Log.Format = "xml" }),
			wantErr: true,
			errMsg:  "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Commission.PerUnit = 1.1
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Instrument, loaded.Instrument)
			assert.Equal(t, cfg.Commission.PerUnit, loaded.Commission.PerUnit)
			assert.Equal(t, cfg.Journal.DBPath, loaded.Journal.DBPath)
		})
	}
}

func TestLoadFillsKnownInstrument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "es.yaml")
	data := []byte("instrument:\n  symbol: es\ncommission:\n  per_unit: 2.5\njournal:\n  db_path: ./es.sqlite\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ES", cfg.Instrument.Symbol)
	assert.Equal(t, trade.Costs{CommissionPerUnit: 2.5, PointValue: 50, TickSize: 0.25}, cfg.Costs())
}

func TestLoadUnknownInstrumentNeedsPricing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cl.yaml")
	data := []byte("instrument:\n  symbol: CL\njournal:\n  db_path: ./cl.sqlite\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "point_value")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/override.sqlite")
	t.Setenv(EnvCommission, "0.5")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvInstrument, "MNQ")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.sqlite", cfg.Journal.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, trade.Costs{CommissionPerUnit: 0.5, PointValue: 2, TickSize: 0.25}, cfg.Costs())
}

func TestLoadEnvBadCommission(t *testing.T) {
	t.Setenv(EnvCommission, "cheap")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvCommission)
}
