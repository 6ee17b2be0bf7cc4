package indicators

import (
	"fmt"

	"github.com/rustyeddy/portfolio/market"
)

// EMA is a streaming Exponential Moving Average over bar closes.
type EMA struct {
	span       int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

// NewEMA creates an Exponential Moving Average indicator with the given span.
func NewEMA(span int) *EMA {
	return &EMA{
		span:       span,
		multiplier: 2.0 / float64(span+1),
	}
}

func (e *EMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.span)
}

func (e *EMA) Warmup() int {
	return e.span
}

func (e *EMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *EMA) Update(b market.Bar) {
	if e.count < e.span {
		// During warmup, accumulate sum for initial SMA
		e.warmupSum += b.Close
		e.count++
		if e.count == e.span {
			// Initialize EMA with SMA
			e.ema = e.warmupSum / float64(e.span)
		}
	} else {
		e.ema = (b.Close-e.ema)*e.multiplier + e.ema
	}
}

func (e *EMA) Ready() bool {
	return e.count >= e.span
}

func (e *EMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}
