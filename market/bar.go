// Package market defines the bar data consumed by the strategy core.
package market

import "time"

// Bar represents OHLCV (Open, High, Low, Close, Volume) data for one
// instrument over one fixed interval. Bars are immutable once delivered.
type Bar struct {
	Instrument string
	Open       float64
	High       float64
	Low        float64
	Close      float64
	time.Time
	Volume float64
}

// Slice is one synchronized set of bars, one per portfolio instrument,
// all covering the same interval.
type Slice map[string]Bar
