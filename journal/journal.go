// Package journal persists the strategy's decision trail: emitted rebalance
// instructions and per-slice signal snapshots. The strategy never reads the
// journal back; it exists for research and post-trade review.
package journal

import "github.com/rustyeddy/portfolio/strategy"

// Journal records the strategy's decision trail. Both backends implement
// strategy.Recorder.
type Journal interface {
	RecordInstruction(strategy.Instruction) error
	RecordSignal(strategy.SignalRecord) error
	Close() error
}
