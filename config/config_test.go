package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Indemos/Terminal-sub004/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const yamlConfig = `
account:
  id: SIM-001
  currency: USD
  balance: 50000
instruments:
  - name: ESU25
    exchange: CME
    class: futures
    step_size: 0.25
    step_value: 12.5
  - name: SPY-C-450
    class: options
    strike: 450
    right: call
    expiration: 2025-12-19
    underlying: SPY
replay:
  source: ./ticks.csv
  speed: 2
  bucket: 5s
journal:
  type: sqlite
  db_path: ./journal.db
log_level: debug
`

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "terminal.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, "SIM-001", cfg.Account.ID)
	assert.Equal(t, 2, cfg.Replay.Speed)
	assert.Equal(t, 5*time.Second, cfg.Bucket())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadJSON(t *testing.T) {
	body := `{
		"account": {"id": "SIM-002", "currency": "USD", "balance": 1000},
		"instruments": [{"name": "AAPL", "class": "shares"}],
		"replay": {"source": "./ticks.csv"}
	}`
	cfg, err := LoadFromFile(writeConfig(t, "terminal.json", body))
	require.NoError(t, err)
	assert.Equal(t, "SIM-002", cfg.Account.ID)
	assert.Equal(t, market.DefaultBucket, cfg.Bucket(), "unset bucket uses the default period")
}

func TestValidateRejects(t *testing.T) {
	base := func() *Config {
		cfg := Default()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing account id", func(c *Config) { c.Account.ID = "" }},
		{"zero balance", func(c *Config) { c.Account.Balance = 0 }},
		{"no instruments", func(c *Config) { c.Instruments = nil }},
		{"unknown class", func(c *Config) { c.Instruments[0].Class = "widgets" }},
		{"duplicate instrument", func(c *Config) {
			c.Instruments = append(c.Instruments, c.Instruments[0])
		}},
		{"bad expiration", func(c *Config) { c.Instruments[0].Expiration = "next-friday" }},
		{"negative speed", func(c *Config) { c.Replay.Speed = -1 }},
		{"bad bucket", func(c *Config) { c.Replay.Bucket = "five minutes" }},
		{"csv journal without files", func(c *Config) { c.Journal.Type = "csv" }},
		{"unknown journal", func(c *Config) { c.Journal.Type = "parquet" }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestBuildAccount(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "terminal.yaml", yamlConfig))
	require.NoError(t, err)

	acct := cfg.BuildAccount()
	assert.Equal(t, "SIM-001", acct.Descriptor)
	assert.Equal(t, 50000.0, acct.Balance)
	require.Len(t, acct.Instruments, 2)

	es := acct.Instruments["ESU25"]
	assert.Equal(t, market.ClassFutures, es.Class)
	assert.Equal(t, 50.0, es.PointValue())
	assert.Nil(t, es.Derivative)

	opt := acct.Instruments["SPY-C-450"]
	require.NotNil(t, opt.Derivative)
	assert.Equal(t, market.RightCall, opt.Derivative.Right)
	assert.Equal(t, 450.0, opt.Derivative.Strike)
	assert.Equal(t, "SPY", opt.Derivative.Underlying)
	assert.Equal(t, time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC), opt.Derivative.Expiration)
}
