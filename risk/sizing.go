package risk

import "math"

// SizingInputs carries everything needed to scale unit weights into target
// position sizes.
type SizingInputs struct {
	// Budget is the portfolio VaR budget: the target loss magnitude the
	// whole book is sized against.
	Budget float64

	// PortfolioRisk is the unit-weight portfolio risk estimate from
	// PortfolioRisk.
	PortfolioRisk float64

	// Weights are the normalized unit weights from UnitWeights.
	Weights map[string]float64

	// Strength preserves each instrument's signal direction; sizing takes
	// its magnitude from the weight and its sign from the strength.
	Strength map[string]float64

	// MaxSize caps the magnitude of any single position. Zero means no cap.
	MaxSize int
}

// Size converts unit weights into integer target positions: budget divided
// by portfolio risk, scaled by each instrument's weight magnitude, signed by
// its signal direction, floored to whole contracts and clamped to MaxSize.
func Size(in SizingInputs) map[string]int {
	targets := make(map[string]int, len(in.Weights))
	if in.PortfolioRisk <= 0 {
		return targets
	}

	scale := in.Budget / in.PortfolioRisk
	for inst, w := range in.Weights {
		size := int(math.Floor(scale * math.Abs(w)))
		if in.MaxSize > 0 && size > in.MaxSize {
			size = in.MaxSize
		}
		if in.Strength[inst] < 0 {
			size = -size
		}
		targets[inst] = size
	}
	return targets
}
