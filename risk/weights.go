// Package risk converts per-instrument signal strengths into normalized
// capital weights and a portfolio risk estimate, and sizes positions under a
// shared VaR budget.
package risk

import "errors"

// ErrNoSignal is returned when the aggregate signal strength is zero and
// normalization is undefined. It is an expected steady-state condition in
// flat or offsetting markets, not a fault.
var ErrNoSignal = errors.New("risk: zero aggregate signal strength")

// UnitWeights normalizes signal strengths into capital weights summing to 1.
// Instruments with zero strength receive weight 0.
func UnitWeights(strength map[string]float64) (map[string]float64, error) {
	total := 0.0
	for _, s := range strength {
		total += s
	}
	if total == 0 {
		return nil, ErrNoSignal
	}

	weights := make(map[string]float64, len(strength))
	for inst, s := range strength {
		weights[inst] = s / total
	}
	return weights, nil
}
