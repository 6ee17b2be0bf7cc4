package strategy

// signalInputs is the Signal Engine's decision surface for one flat
// instrument.
type signalInputs struct {
	rsi   float64
	atr   float64
	atrMA float64
}

// classify produces the entry signal strength for a flat instrument:
// +1 long entry, -1 short entry, 0 stay flat.
//
// The volatility regime gate passes first: unless the current ATR exceeds its
// own moving average the signal is forced to 0 regardless of RSI. Range-bound
// markets produce no entries.
func classify(in signalInputs, rsiBuy, rsiSell float64) float64 {
	if in.atr <= in.atrMA {
		return 0
	}
	switch {
	case in.rsi > rsiBuy:
		return 1
	case in.rsi < rsiSell:
		return -1
	}
	return 0
}
