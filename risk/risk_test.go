package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitWeights(t *testing.T) {
	t.Run("weights sum to one", func(t *testing.T) {
		weights, err := UnitWeights(map[string]float64{
			"A": 1,
			"B": 1,
			"C": 0,
		})
		require.NoError(t, err)

		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
		assert.InDelta(t, 0.5, weights["A"], 1e-9)
		assert.InDelta(t, 0.5, weights["B"], 1e-9)
		assert.Equal(t, 0.0, weights["C"])
	})

	t.Run("offsetting strengths are degenerate", func(t *testing.T) {
		_, err := UnitWeights(map[string]float64{"A": 1, "B": -1})
		assert.ErrorIs(t, err, ErrNoSignal)
	})

	t.Run("all flat is degenerate", func(t *testing.T) {
		_, err := UnitWeights(map[string]float64{"A": 0, "B": 0})
		assert.ErrorIs(t, err, ErrNoSignal)
	})
}

func TestEWMStd(t *testing.T) {
	t.Run("constant series has zero deviation", func(t *testing.T) {
		series := []float64{0.01, 0.01, 0.01, 0.01, 0.01}
		assert.Equal(t, 0.0, EWMStd(series, 5))
	})

	t.Run("short or invalid input", func(t *testing.T) {
		assert.Equal(t, 0.0, EWMStd(nil, 5))
		assert.Equal(t, 0.0, EWMStd([]float64{0.01}, 5))
		assert.Equal(t, 0.0, EWMStd([]float64{0.01, 0.02}, 0))
	})

	t.Run("wider swings carry more risk", func(t *testing.T) {
		calm := []float64{0.001, -0.001, 0.001, -0.001, 0.001, -0.001}
		wild := []float64{0.05, -0.05, 0.05, -0.05, 0.05, -0.05}
		assert.Greater(t, EWMStd(wild, 6), EWMStd(calm, 6))
	})

	t.Run("recent observations dominate", func(t *testing.T) {
		quietThenWild := []float64{0.001, 0.001, 0.001, 0.05, -0.05, 0.05}
		wildThenQuiet := []float64{0.05, -0.05, 0.05, 0.001, 0.001, 0.001}
		assert.Greater(t, EWMStd(quietThenWild, 3), EWMStd(wildThenQuiet, 3))
	})
}

func TestPortfolioRisk(t *testing.T) {
	t.Run("combines weighted series", func(t *testing.T) {
		weights := map[string]float64{"A": 0.5, "B": 0.5}
		returns := map[string][]float64{
			"A": {0.02, -0.02, 0.02, -0.02},
			"B": {-0.02, 0.02, -0.02, 0.02},
		}
		// Perfectly offsetting legs cancel: combined series is zero.
		got, err := PortfolioRisk(weights, returns, 4)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, got, 1e-12)
	})

	t.Run("short history fails", func(t *testing.T) {
		weights := map[string]float64{"A": 1}
		returns := map[string][]float64{"A": {0.01, 0.02}}
		_, err := PortfolioRisk(weights, returns, 5)
		assert.ErrorIs(t, err, ErrShortHistory)
	})

	t.Run("missing series fails", func(t *testing.T) {
		weights := map[string]float64{"A": 1}
		_, err := PortfolioRisk(weights, map[string][]float64{}, 3)
		assert.ErrorIs(t, err, ErrShortHistory)
	})

	t.Run("zero weight needs no history", func(t *testing.T) {
		weights := map[string]float64{"A": 1, "B": 0}
		returns := map[string][]float64{
			"A": {0.01, -0.01, 0.01},
		}
		_, err := PortfolioRisk(weights, returns, 3)
		assert.NoError(t, err)
	})
}

func TestSize(t *testing.T) {
	t.Run("scales budget by weight and risk", func(t *testing.T) {
		targets := Size(SizingInputs{
			Budget:        5000,
			PortfolioRisk: 50,
			Weights:       map[string]float64{"A": 0.75, "B": 0.25},
			Strength:      map[string]float64{"A": 1, "B": 1},
		})
		assert.Equal(t, 75, targets["A"])
		assert.Equal(t, 25, targets["B"])
	})

	t.Run("keeps signal direction", func(t *testing.T) {
		targets := Size(SizingInputs{
			Budget:        1000,
			PortfolioRisk: 10,
			Weights:       map[string]float64{"A": -1},
			Strength:      map[string]float64{"A": -1},
		})
		assert.Equal(t, -100, targets["A"])
	})

	t.Run("clamps to max size", func(t *testing.T) {
		targets := Size(SizingInputs{
			Budget:        100000,
			PortfolioRisk: 1,
			Weights:       map[string]float64{"A": 1},
			Strength:      map[string]float64{"A": 1},
			MaxSize:       20,
		})
		assert.Equal(t, 20, targets["A"])
	})

	t.Run("no sizes without a risk estimate", func(t *testing.T) {
		targets := Size(SizingInputs{
			Budget:        5000,
			PortfolioRisk: 0,
			Weights:       map[string]float64{"A": 1},
			Strength:      map[string]float64{"A": 1},
		})
		assert.Empty(t, targets)
	})
}
