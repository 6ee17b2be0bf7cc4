// Package config loads and validates the application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/portfolio/strategy"
)

// Config represents the complete application configuration.
type Config struct {
	Instruments []string        `json:"instruments" yaml:"instruments"`
	Strategy    strategy.Config `json:"strategy" yaml:"strategy"`
	Journal     JournalConfig   `json:"journal" yaml:"journal"`
	Data        DataConfig      `json:"data" yaml:"data"`
	Metrics     MetricsConfig   `json:"metrics" yaml:"metrics"`
}

// JournalConfig selects the decision-trail backend.
type JournalConfig struct {
	Type             string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	DBPath           string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	InstructionsFile string `json:"instructions_file,omitempty" yaml:"instructions_file,omitempty"`
	SignalsFile      string `json:"signals_file,omitempty" yaml:"signals_file,omitempty"`
}

// DataConfig points at the recorded bar data.
type DataConfig struct {
	// BarsFile is the bar-slice CSV (optionally .xz compressed) replayed
	// during a backtest.
	BarsFile string `json:"bars_file" yaml:"bars_file"`

	// WarmupFile optionally seeds indicator state before the run; when
	// empty, warmup happens naturally from the head of BarsFile.
	WarmupFile string `json:"warmup_file,omitempty" yaml:"warmup_file,omitempty"`
}

// MetricsConfig controls the Prometheus exposition endpoint.
type MetricsConfig struct {
	// Addr like ":9100"; empty disables the endpoint.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
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

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	seen := make(map[string]bool, len(c.Instruments))
	for _, inst := range c.Instruments {
		if inst == "" {
			return fmt.Errorf("instrument names must not be empty")
		}
		if seen[inst] {
			return fmt.Errorf("duplicate instrument: %s", inst)
		}
		seen[inst] = true
	}

	if err := c.Strategy.Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.InstructionsFile == "" || c.Journal.SignalsFile == "" {
			return fmt.Errorf("journal instructions_file and signals_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Instruments: []string{"IF888.CFFEX", "IH888.CFFEX"},
		Strategy:    strategy.Defaults(),
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./portfolio.db",
		},
		Data: DataConfig{
			BarsFile: "./bars.csv",
		},
	}
}
