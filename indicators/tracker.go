package indicators

import "github.com/rustyeddy/portfolio/market"

// TrackerConfig sets the lookbacks for one instrument's derived series.
type TrackerConfig struct {
	FastSpan    int
	SlowSpan    int
	RSIWindow   int
	ATRWindow   int
	ATRMAWindow int

	// ReturnCap bounds how many close-to-close returns are retained for
	// portfolio risk estimation.
	ReturnCap int
}

// Tracker bundles the per-instrument indicator state the strategy consumes:
// fast/slow EMA and their convergence-divergence, RSI, ATR and its moving
// average, plus a bounded close-to-close return history.
//
// Values are undefined until Inited() reports true; callers must not read
// them before then.
type Tracker struct {
	fast  *EMA
	slow  *EMA
	rsi   *RSI
	atr   *ATR
	atrMA *Window

	lastClose float64
	returns   []float64
	returnCap int
}

// NewTracker creates a Tracker for one instrument.
func NewTracker(cfg TrackerConfig) *Tracker {
	return &Tracker{
		fast:      NewEMA(cfg.FastSpan),
		slow:      NewEMA(cfg.SlowSpan),
		rsi:       NewRSI(cfg.RSIWindow),
		atr:       NewATR(cfg.ATRWindow),
		atrMA:     NewWindow(cfg.ATRMAWindow),
		returnCap: cfg.ReturnCap,
		returns:   make([]float64, 0, cfg.ReturnCap),
	}
}

// Update consumes the next closed bar for this instrument.
func (t *Tracker) Update(b market.Bar) {
	t.fast.Update(b)
	t.slow.Update(b)
	t.rsi.Update(b)
	t.atr.Update(b)
	if t.atr.Ready() {
		t.atrMA.Push(t.atr.Value())
	}

	if t.lastClose > 0 {
		t.returns = append(t.returns, (b.Close-t.lastClose)/t.lastClose)
		if len(t.returns) > t.returnCap {
			t.returns = t.returns[1:]
		}
	}
	t.lastClose = b.Close
}

// Inited reports whether every derived series has completed warmup.
func (t *Tracker) Inited() bool {
	return t.fast.Ready() &&
		t.slow.Ready() &&
		t.rsi.Ready() &&
		t.atr.Ready() &&
		t.atrMA.Ready()
}

func (t *Tracker) EmaFast() float64 { return t.fast.Value() }
func (t *Tracker) EmaSlow() float64 { return t.slow.Value() }

// Emacd is the fast-minus-slow EMA convergence-divergence value.
func (t *Tracker) Emacd() float64 { return t.fast.Value() - t.slow.Value() }

func (t *Tracker) RSI() float64   { return t.rsi.Value() }
func (t *Tracker) ATR() float64   { return t.atr.Value() }
func (t *Tracker) ATRMA() float64 { return t.atrMA.Mean() }

// Returns reports the last n close-to-close returns, oldest first. ok is
// false when fewer than n returns have been observed.
func (t *Tracker) Returns(n int) ([]float64, bool) {
	if len(t.returns) < n {
		return nil, false
	}
	return t.returns[len(t.returns)-n:], true
}

// Reset clears all internal state.
func (t *Tracker) Reset() {
	t.fast.Reset()
	t.slow.Reset()
	t.rsi.Reset()
	t.atr.Reset()
	t.atrMA.Reset()
	t.lastClose = 0
	t.returns = t.returns[:0]
}
