package strategy

import (
	"time"

	"github.com/rustyeddy/portfolio/market"
)

// PositionBook is the execution collaborator. Position is the authoritative
// current position for an instrument; SetTarget hands off a desired position
// and is idempotent — diffing targets against fills is the collaborator's
// responsibility, not the strategy's.
type PositionBook interface {
	Position(instrument string) int
	SetTarget(instrument string, target int)
}

// BarLoader supplies historical bars, oldest first, used once at startup to
// warm up indicator state.
type BarLoader interface {
	HistoricalBars(instrument string, count int) ([]market.Bar, error)
}

// Recorder receives the strategy's decision trail: every emitted rebalance
// instruction and a per-instrument signal snapshot each processed slice.
// Implementations must not block; recording errors are logged, never fatal.
type Recorder interface {
	RecordInstruction(Instruction) error
	RecordSignal(SignalRecord) error
}

// SignalRecord is one instrument's decision snapshot for one bar slice.
type SignalRecord struct {
	Time       time.Time
	Instrument string
	Strength   float64
	Weight     float64
	EmaFast    float64
	EmaSlow    float64
	Emacd      float64
	RSI        float64
	ATR        float64
	ATRMA      float64
	Position   int
	Target     int
}
