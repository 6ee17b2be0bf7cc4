package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	buy, sell := cfg.rsiThresholds()
	assert.InDelta(t, 60, buy, 1e-9)
	assert.InDelta(t, 40, sell, 1e-9)
}

func TestRSIThresholdsFollowBounds(t *testing.T) {
	cfg := Defaults()
	cfg.EntryLBound = 0.1
	cfg.EntryUBound = 0.9

	buy, sell := cfg.rsiThresholds()
	assert.InDelta(t, 70, buy, 1e-9)
	assert.InDelta(t, 30, sell, 1e-9)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fast span", func(c *Config) { c.FastSpan = 0 }},
		{"fast not shorter than slow", func(c *Config) { c.FastSpan = c.SlowSpan }},
		{"zero rsi window", func(c *Config) { c.RSIWindow = 0 }},
		{"zero atr window", func(c *Config) { c.ATRWindow = 0 }},
		{"zero atr ma window", func(c *Config) { c.ATRMAWindow = 0 }},
		{"zero trailing percent", func(c *Config) { c.TrailingPercent = 0 }},
		{"trailing percent too large", func(c *Config) { c.TrailingPercent = 100 }},
		{"negative lower bound", func(c *Config) { c.EntryLBound = -0.1 }},
		{"upper bound above one", func(c *Config) { c.EntryUBound = 1.1 }},
		{"inverted bounds", func(c *Config) { c.EntryLBound, c.EntryUBound = 0.7, 0.3 }},
		{"short var lookback", func(c *Config) { c.VaRLookback = 1 }},
		{"zero fixed size", func(c *Config) { c.FixedSize = 0 }},
		{"negative max size", func(c *Config) { c.MaxSize = -1 }},
		{"negative price add", func(c *Config) { c.PriceAdd = -1 }},
		{"negative warmup bars", func(c *Config) { c.WarmupBars = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
