// Package config loads the terminal's typed configuration: the account
// descriptor, the instrument universe with step metadata, and the replay
// source. The engine itself only ever sees the resulting typed values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Indemos/Terminal-sub004/market"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Account     AccountConfig      `json:"account" yaml:"account"`
	Instruments []InstrumentConfig `json:"instruments" yaml:"instruments"`
	Replay      ReplayConfig       `json:"replay" yaml:"replay"`
	Journal     JournalConfig      `json:"journal" yaml:"journal"`
	LogLevel    string             `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

type AccountConfig struct {
	ID       string  `json:"id" yaml:"id"`
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

type InstrumentConfig struct {
	Name       string  `json:"name" yaml:"name"`
	Exchange   string  `json:"exchange,omitempty" yaml:"exchange,omitempty"`
	Class      string  `json:"class" yaml:"class"`
	StepSize   float64 `json:"step_size,omitempty" yaml:"step_size,omitempty"`
	StepValue  float64 `json:"step_value,omitempty" yaml:"step_value,omitempty"`
	Leverage   float64 `json:"leverage,omitempty" yaml:"leverage,omitempty"`
	Commission float64 `json:"commission,omitempty" yaml:"commission,omitempty"`

	Strike     float64 `json:"strike,omitempty" yaml:"strike,omitempty"`
	Right      string  `json:"right,omitempty" yaml:"right,omitempty"`
	Expiration string  `json:"expiration,omitempty" yaml:"expiration,omitempty"`
	Underlying string  `json:"underlying,omitempty" yaml:"underlying,omitempty"`
}

type ReplayConfig struct {
	Source string `json:"source" yaml:"source"`
	Speed  int    `json:"speed,omitempty" yaml:"speed,omitempty"`
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"` // e.g. "1m", "5s"
}

type JournalConfig struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty"` // "csv", "sqlite" or "none"
	FillsFile  string `json:"fills_file,omitempty" yaml:"fills_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration before any session is built.
func (c *Config) Validate() error {
	if c.Account.ID == "" {
		return fmt.Errorf("account.id is required")
	}
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}

	seen := make(map[string]bool, len(c.Instruments))
	for _, i := range c.Instruments {
		if i.Name == "" {
			return fmt.Errorf("instrument name is required")
		}
		if seen[i.Name] {
			return fmt.Errorf("duplicate instrument %q", i.Name)
		}
		seen[i.Name] = true

		if market.ParseAssetClass(i.Class) == market.ClassNone {
			return fmt.Errorf("instrument %q: unknown class %q", i.Name, i.Class)
		}
		if i.Expiration != "" {
			if _, err := time.Parse("2006-01-02", i.Expiration); err != nil {
				return fmt.Errorf("instrument %q: bad expiration: %w", i.Name, err)
			}
		}
	}

	if c.Replay.Speed < 0 {
		return fmt.Errorf("replay.speed must not be negative")
	}
	if c.Replay.Bucket != "" {
		if _, err := time.ParseDuration(c.Replay.Bucket); err != nil {
			return fmt.Errorf("bad replay.bucket: %w", err)
		}
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.FillsFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal fills_file and equity_file required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	default:
		return fmt.Errorf("journal.type must be csv, sqlite or none")
	}

	if c.LogLevel != "" {
		switch strings.ToLower(c.LogLevel) {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("log_level must be debug, info, warn or error")
		}
	}

	return nil
}

// Bucket returns the parsed aggregation period.
func (c *Config) Bucket() time.Duration {
	if c.Replay.Bucket == "" {
		return market.DefaultBucket
	}
	d, err := time.ParseDuration(c.Replay.Bucket)
	if err != nil {
		return market.DefaultBucket
	}
	return d
}

// BuildAccount builds the typed account with its instrument universe.
func (c *Config) BuildAccount() market.Account {
	acct := market.Account{
		Descriptor:  c.Account.ID,
		Currency:    c.Account.Currency,
		Balance:     c.Account.Balance,
		Instruments: make(map[string]market.Instrument, len(c.Instruments)),
	}

	for _, ic := range c.Instruments {
		i := market.Instrument{
			Name:       ic.Name,
			Exchange:   ic.Exchange,
			Class:      market.ParseAssetClass(ic.Class),
			StepSize:   ic.StepSize,
			StepValue:  ic.StepValue,
			Leverage:   ic.Leverage,
			Commission: ic.Commission,
		}
		if ic.Strike != 0 || ic.Right != "" || ic.Underlying != "" {
			d := &market.Derivative{
				Strike:     ic.Strike,
				Underlying: ic.Underlying,
			}
			switch strings.ToLower(ic.Right) {
			case "call":
				d.Right = market.RightCall
			case "put":
				d.Right = market.RightPut
			}
			if ic.Expiration != "" {
				if t, err := time.Parse("2006-01-02", ic.Expiration); err == nil {
					d.Expiration = t
				}
			}
			i.Derivative = d
		}
		acct.Instruments[i.Name] = i
	}

	return acct
}

// Default returns a runnable configuration for the simulator.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:       "SIM-001",
			Currency: "USD",
			Balance:  100000,
		},
		Instruments: []InstrumentConfig{
			{Name: "ESU25", Exchange: "CME", Class: "futures", StepSize: 0.25, StepValue: 12.5},
		},
		Replay: ReplayConfig{
			Source: "./ticks.csv",
			Speed:  1,
			Bucket: "1m",
		},
		LogLevel: "info",
	}
}
