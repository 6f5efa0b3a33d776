package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradejournal/trade"
)

// Environment overrides, applied after the config file by Load.
const (
	EnvDBPath     = "TRADEJOURNAL_DB_PATH"
	EnvCommission = "TRADEJOURNAL_COMMISSION"
	EnvLogLevel   = "TRADEJOURNAL_LOG_LEVEL"
	EnvInstrument = "TRADEJOURNAL_INSTRUMENT"
)

// Config represents the complete journal configuration
type Config struct {
	Instrument InstrumentConfig `json:"instrument" yaml:"instrument"`
	Commission CommissionConfig `json:"commission" yaml:"commission"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// InstrumentConfig describes the traded contract. Zero values are filled
// from the instrument table when the symbol is known.
type InstrumentConfig struct {
	Symbol     string  `json:"symbol" yaml:"symbol"`
	PointValue float64 `json:"point_value" yaml:"point_value"`
	TickSize   float64 `json:"tick_size" yaml:"tick_size"`
}

// CommissionConfig is the round-trip commission charged per contract
type CommissionConfig struct {
	PerUnit float64 `json:"per_unit" yaml:"per_unit"`
}

// JournalConfig locates the trade store
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// LogConfig controls logging output
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // "console" or "json"
}

// Load reads path (or the defaults when path is empty), then applies a
// .env file and environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		cfg, err = readFile(path)
		if err != nil {
			return nil, err
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	cfg.fillInstrument()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg.fillInstrument()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from TRADEJOURNAL_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Journal.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvInstrument); v != "" && !strings.EqualFold(v, c.Instrument.Symbol) {
		// a different contract must not keep the old contract's pricing
		c.Instrument = InstrumentConfig{Symbol: v}
	}
	if v := os.Getenv(EnvCommission); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCommission, err)
		}
		c.Commission.PerUnit = f
	}
	return nil
}

func (c *Config) fillInstrument() {
	meta, ok := trade.LookupInstrument(c.Instrument.Symbol)
	if !ok {
		return
	}
	c.Instrument.Symbol = meta.Name
	if c.Instrument.PointValue == 0 {
		c.Instrument.PointValue = meta.PointValue
	}
	if c.Instrument.TickSize == 0 {
		c.Instrument.TickSize = meta.TickSize
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Instrument.Symbol == "" {
		return fmt.Errorf("instrument.symbol is required")
	}
	if c.Instrument.PointValue <= 0 {
		return fmt.Errorf("instrument.point_value must be positive")
	}
	if c.Instrument.TickSize <= 0 {
		return fmt.Errorf("instrument.tick_size must be positive")
	}
	if c.Commission.PerUnit < 0 {
		return fmt.Errorf("commission.per_unit must not be negative")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Log.Format != "" && c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Costs returns the commission model parameters
func (c *Config) Costs() trade.Costs {
	return trade.Costs{
		CommissionPerUnit: c.Commission.PerUnit,
		PointValue:        c.Instrument.PointValue,
		TickSize:          c.Instrument.TickSize,
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Instrument: InstrumentConfig{
			Symbol:     "MES",
			PointValue: trade.DefaultCosts.PointValue,
			TickSize:   trade.DefaultCosts.TickSize,
		},
		Commission: CommissionConfig{
			PerUnit: trade.DefaultCosts.CommissionPerUnit,
		},
		Journal: JournalConfig{
			DBPath: "./journal.sqlite",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
