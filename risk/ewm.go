package risk

import (
	"errors"
	"math"
)

// ErrShortHistory is returned when an instrument lacks a return series of
// sufficient length for the risk lookback window.
var ErrShortHistory = errors.New("risk: insufficient return history")

// EWMStd returns the exponentially weighted standard deviation of the series
// at its most recent point, with smoothing span semantics
// (alpha = 2/(span+1)). Returns 0 for series shorter than two points.
func EWMStd(series []float64, span int) float64 {
	if len(series) < 2 || span <= 0 {
		return 0
	}

	alpha := 2.0 / float64(span+1)

	mean := series[0]
	variance := 0.0
	for _, x := range series[1:] {
		delta := x - mean
		mean += alpha * delta
		variance = (1 - alpha) * (variance + alpha*delta*delta)
	}
	return math.Sqrt(variance)
}

// PortfolioRisk combines each instrument's return series, scaled by its unit
// weight, into one portfolio return series and reads its exponentially
// weighted standard deviation at the latest point. The result is the risk
// carried if total portfolio weight sums to 1.
//
// Every instrument with a nonzero weight must supply at least lookback
// returns, otherwise ErrShortHistory is returned.
func PortfolioRisk(weights map[string]float64, returns map[string][]float64, lookback int) (float64, error) {
	combined := make([]float64, lookback)

	for inst, w := range weights {
		if w == 0 {
			continue
		}
		series, ok := returns[inst]
		if !ok || len(series) < lookback {
			return 0, ErrShortHistory
		}
		series = series[len(series)-lookback:]
		for i, r := range series {
			combined[i] += w * r
		}
	}

	return EWMStd(combined, lookback), nil
}
