package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/portfolio/market"
)

func trackerBars(n int) []market.Bar {
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, n)
	for i := range bars {
		close := 100.0 + float64(i)
		bars[i] = market.Bar{
			Instrument: "IF888.CFFEX",
			Open:       close - 0.5,
			High:       close + 1,
			Low:        close - 1,
			Close:      close,
			Time:       baseTime.Add(time.Duration(i) * time.Hour),
			Volume:     1000,
		}
	}
	return bars
}

func testTrackerConfig() TrackerConfig {
	return TrackerConfig{
		FastSpan:    2,
		SlowSpan:    3,
		RSIWindow:   2,
		ATRWindow:   2,
		ATRMAWindow: 2,
		ReturnCap:   4,
	}
}

func TestTrackerInited(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	bars := trackerBars(6)

	// Slowest series: ATR needs 3 bars, its moving average one more.
	for i := 0; i < 3; i++ {
		tr.Update(bars[i])
		assert.False(t, tr.Inited(), "bar %d", i)
	}
	tr.Update(bars[3])
	assert.True(t, tr.Inited())
}

func TestTrackerValues(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	for _, b := range trackerBars(6) {
		tr.Update(b)
	}
	require.True(t, tr.Inited())

	// Monotonic uptrend: fast EMA leads slow, EMACD positive, RSI pegged high.
	assert.Greater(t, tr.EmaFast(), tr.EmaSlow())
	assert.InDelta(t, tr.EmaFast()-tr.EmaSlow(), tr.Emacd(), 1e-9)
	assert.Equal(t, 100.0, tr.RSI())
	assert.Greater(t, tr.ATR(), 0.0)
	assert.Greater(t, tr.ATRMA(), 0.0)
}

func TestTrackerReturns(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	bars := trackerBars(6)

	_, ok := tr.Returns(1)
	assert.False(t, ok)

	for _, b := range bars {
		tr.Update(b)
	}

	// 6 bars produce 5 returns, capped at 4
	_, ok = tr.Returns(5)
	assert.False(t, ok, "history is bounded by the return cap")

	got, ok := tr.Returns(2)
	require.True(t, ok)
	require.Len(t, got, 2)
	// last two returns: 104->105 after 103->104
	assert.InDelta(t, 1.0/103.0, got[0], 1e-9)
	assert.InDelta(t, 1.0/104.0, got[1], 1e-9)
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	for _, b := range trackerBars(6) {
		tr.Update(b)
	}
	require.True(t, tr.Inited())

	tr.Reset()
	assert.False(t, tr.Inited())
	_, ok := tr.Returns(1)
	assert.False(t, ok)
}
