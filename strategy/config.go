package strategy

import "fmt"

// Config is the strategy parameter surface. It is fixed at construction and
// immutable thereafter.
type Config struct {
	FastSpan        int `json:"fast_span" yaml:"fast_span"`
	SlowSpan        int `json:"slow_span" yaml:"slow_span"`
	SignalVolWindow int `json:"signal_vol_window" yaml:"signal_vol_window"`
	RSIWindow       int `json:"rsi_window" yaml:"rsi_window"`
	ATRWindow       int `json:"atr_window" yaml:"atr_window"`
	ATRMAWindow     int `json:"atr_ma_window" yaml:"atr_ma_window"`

	// TrailingPercent is the trailing-stop distance from the best price
	// reached since entry, in percent.
	TrailingPercent float64 `json:"trailing_percent" yaml:"trailing_percent"`

	// PortfolioVaR is the portfolio risk budget used to scale position
	// sizes. Zero or negative disables VaR budgeting: entries are then
	// taken at FixedSize.
	PortfolioVaR float64 `json:"portfolio_var" yaml:"portfolio_var"`

	// EntryLBound and EntryUBound place the RSI entry thresholds as unit
	// fractions of the half-range around the RSI midline: a bound of 0.7
	// puts the buy threshold at 50 + 50*(0.7-0.5) = 60.
	EntryLBound float64 `json:"entry_lbound" yaml:"entry_lbound"`
	EntryUBound float64 `json:"entry_ubound" yaml:"entry_ubound"`

	// VaRLookback is the return-series length and EWM span used for the
	// portfolio risk estimate.
	VaRLookback int `json:"var_lookback" yaml:"var_lookback"`

	// FixedSize is the entry size used when VaR budgeting is disabled.
	FixedSize int `json:"fixed_size" yaml:"fixed_size"`

	// MaxSize caps the magnitude of any single sized position. Zero means
	// no cap.
	MaxSize int `json:"max_size" yaml:"max_size"`

	// PriceAdd is the fixed offset applied to the reference price of each
	// rebalance instruction; large enough in practice to behave as a
	// marketable order.
	PriceAdd float64 `json:"price_add" yaml:"price_add"`

	// WarmupBars is how many historical bars Init loads per instrument.
	WarmupBars int `json:"warmup_bars" yaml:"warmup_bars"`
}

// Defaults returns the reference parameter set.
func Defaults() Config {
	return Config{
		FastSpan:        5,
		SlowSpan:        60,
		SignalVolWindow: 30,
		RSIWindow:       14,
		ATRWindow:       22,
		ATRMAWindow:     10,
		TrailingPercent: 0.8,
		PortfolioVaR:    5000,
		EntryLBound:     0.3,
		EntryUBound:     0.7,
		VaRLookback:     30,
		FixedSize:       1,
		MaxSize:         100,
		PriceAdd:        10,
		WarmupBars:      100,
	}
}

// Validate checks the parameter surface for internal consistency.
func (c Config) Validate() error {
	if c.FastSpan <= 0 || c.SlowSpan <= 0 {
		return fmt.Errorf("ema spans must be positive (fast=%d slow=%d)", c.FastSpan, c.SlowSpan)
	}
	if c.FastSpan >= c.SlowSpan {
		return fmt.Errorf("fast_span %d must be shorter than slow_span %d", c.FastSpan, c.SlowSpan)
	}
	if c.RSIWindow <= 0 {
		return fmt.Errorf("rsi_window must be positive, got %d", c.RSIWindow)
	}
	if c.ATRWindow <= 0 || c.ATRMAWindow <= 0 {
		return fmt.Errorf("atr windows must be positive (atr=%d atr_ma=%d)", c.ATRWindow, c.ATRMAWindow)
	}
	if c.TrailingPercent <= 0 || c.TrailingPercent >= 100 {
		return fmt.Errorf("trailing_percent must be in (0, 100), got %v", c.TrailingPercent)
	}
	if c.EntryLBound < 0 || c.EntryUBound > 1 || c.EntryLBound >= c.EntryUBound {
		return fmt.Errorf("entry bounds must satisfy 0 <= lbound < ubound <= 1, got [%v, %v]",
			c.EntryLBound, c.EntryUBound)
	}
	if c.VaRLookback <= 1 {
		return fmt.Errorf("var_lookback must be at least 2, got %d", c.VaRLookback)
	}
	if c.FixedSize <= 0 {
		return fmt.Errorf("fixed_size must be positive, got %d", c.FixedSize)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("max_size must not be negative, got %d", c.MaxSize)
	}
	if c.PriceAdd < 0 {
		return fmt.Errorf("price_add must not be negative, got %v", c.PriceAdd)
	}
	if c.WarmupBars < 0 {
		return fmt.Errorf("warmup_bars must not be negative, got %d", c.WarmupBars)
	}
	return nil
}

// rsiThresholds maps the entry bounds onto the RSI scale.
func (c Config) rsiThresholds() (buy, sell float64) {
	buy = 50 + 50*(c.EntryUBound-0.5)
	sell = 50 + 50*(c.EntryLBound-0.5)
	return buy, sell
}
