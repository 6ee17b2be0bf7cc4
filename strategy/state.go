package strategy

import (
	"math"

	"github.com/rustyeddy/portfolio/market"
)

// positionState tracks one instrument's open-position extremes and target.
// pos mirrors the execution collaborator's authoritative position; the
// strategy never writes it directly.
type positionState struct {
	pos       int
	intraHigh float64
	intraLow  float64
	target    int
}

// resetExtremes pins both extremes to the current bar. Runs every bar while
// the position is flat, so a new entry starts its trailing stop from the
// entry bar's range.
func (p *positionState) resetExtremes(b market.Bar) {
	p.intraHigh = b.High
	p.intraLow = b.Low
}

// holdLong updates extremes while long and reports whether the trailing stop
// fired. The high is a running maximum; the low tracks only the most recent
// bar, matching the trailing-stop reference point.
func (p *positionState) holdLong(b market.Bar, trailingPercent float64) bool {
	p.intraHigh = math.Max(p.intraHigh, b.High)
	p.intraLow = b.Low

	stop := p.intraHigh * (1 - trailingPercent/100)
	return b.Close <= stop
}

// holdShort is the mirror of holdLong: running minimum low, most recent high.
func (p *positionState) holdShort(b market.Bar, trailingPercent float64) bool {
	p.intraLow = math.Min(p.intraLow, b.Low)
	p.intraHigh = b.High

	stop := p.intraLow * (1 + trailingPercent/100)
	return b.Close >= stop
}
