package strategy

import "time"

// Direction is the side of a rebalance adjustment: Long when the target
// position is above the current position, Short when below.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Instruction is one target-position change handed off to the execution
// collaborator. Instructions are derived and stateless: produced and consumed
// within a single bar-slice cycle, never read back by the strategy.
type Instruction struct {
	ID         string
	Instrument string
	Direction  Direction
	Target     int
	LimitPrice float64
	Time       time.Time
}
