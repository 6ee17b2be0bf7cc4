// Package sim provides a paper position book for backtests: it accepts
// target positions from the strategy and fills them immediately, tracking
// average cost and realized P/L per instrument.
package sim

import (
	"time"

	"github.com/rustyeddy/portfolio/market"
)

// Fill records one simulated position change.
type Fill struct {
	Instrument string
	Delta      int
	Price      float64
	Time       time.Time
}

// Book is an in-memory position book. It implements the strategy's
// PositionBook collaborator: Position is authoritative, SetTarget is
// idempotent, and the pending target is applied on the next Settle.
type Book struct {
	positions map[string]int
	targets   map[string]int
	avgPrice  map[string]float64
	realized  map[string]float64
	fills     []Fill
}

// NewBook creates an empty position book.
func NewBook() *Book {
	return &Book{
		positions: make(map[string]int),
		targets:   make(map[string]int),
		avgPrice:  make(map[string]float64),
		realized:  make(map[string]float64),
	}
}

// Position returns the current position for an instrument.
func (b *Book) Position(instrument string) int {
	return b.positions[instrument]
}

// SetTarget records the desired position for an instrument. Calling it
// repeatedly with the same target is a no-op.
func (b *Book) SetTarget(instrument string, target int) {
	b.targets[instrument] = target
}

// Settle fills every pending target at its instrument's bar close and
// returns the number of fills applied.
func (b *Book) Settle(bars market.Slice) int {
	n := 0
	for inst, target := range b.targets {
		bar, ok := bars[inst]
		if !ok {
			continue
		}
		if b.fill(inst, target, bar.Close, bar.Time) {
			n++
		}
	}
	return n
}

// fill moves an instrument's position to target at price, maintaining
// average cost and realizing P/L on the closed quantity. Returns false when
// the position already matches the target.
func (b *Book) fill(inst string, target int, price float64, t time.Time) bool {
	pos := b.positions[inst]
	if pos == target {
		return false
	}

	// A sign flip closes the whole old position first, then opens the rest.
	if pos != 0 && target != 0 && (pos > 0) != (target > 0) {
		b.close(inst, pos, price)
		b.open(inst, target, price)
	} else if pos == 0 || abs(target) > abs(pos) {
		b.open(inst, target-pos, price)
	} else {
		b.close(inst, pos-target, price)
	}

	b.positions[inst] = target
	b.fills = append(b.fills, Fill{
		Instrument: inst,
		Delta:      target - pos,
		Price:      price,
		Time:       t,
	})
	return true
}

// open adds delta units at price, blending the average cost.
func (b *Book) open(inst string, delta int, price float64) {
	pos := b.positions[inst]
	newAbs := abs(pos) + abs(delta)
	if abs(pos) == 0 || (pos > 0) != (delta > 0) {
		b.avgPrice[inst] = price
		return
	}
	b.avgPrice[inst] = (b.avgPrice[inst]*float64(abs(pos)) + price*float64(abs(delta))) / float64(newAbs)
}

// close realizes P/L on qty units closed at price. qty carries the sign of
// the position being reduced.
func (b *Book) close(inst string, qty int, price float64) {
	avg := b.avgPrice[inst]
	if qty > 0 {
		b.realized[inst] += (price - avg) * float64(qty)
	} else {
		b.realized[inst] += (avg - price) * float64(-qty)
	}
}

// Realized returns the realized P/L for one instrument.
func (b *Book) Realized(instrument string) float64 {
	return b.realized[instrument]
}

// TotalRealized returns the realized P/L across the whole book.
func (b *Book) TotalRealized() float64 {
	total := 0.0
	for _, pl := range b.realized {
		total += pl
	}
	return total
}

// Positions returns a copy of every nonzero position.
func (b *Book) Positions() map[string]int {
	out := make(map[string]int, len(b.positions))
	for inst, pos := range b.positions {
		if pos != 0 {
			out[inst] = pos
		}
	}
	return out
}

// Fills returns every simulated fill in application order.
func (b *Book) Fills() []Fill {
	return b.fills
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
