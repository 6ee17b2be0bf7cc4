package backtest

import (
	"github.com/rustyeddy/portfolio/market"
)

// CSVBarLoader serves historical bars from a bar CSV file, for indicator
// warmup before a live or replay run. It satisfies strategy.BarLoader.
type CSVBarLoader struct {
	path string
}

func NewCSVBarLoader(path string) *CSVBarLoader {
	return &CSVBarLoader{path: path}
}

// HistoricalBars returns up to count most recent bars for one instrument,
// oldest first. Fewer bars than requested is not an error; the strategy's
// warmup gate handles short history.
func (l *CSVBarLoader) HistoricalBars(instrument string, count int) ([]market.Bar, error) {
	feed, err := NewCSVBarsFeed(l.path)
	if err != nil {
		return nil, err
	}
	defer feed.Close()

	var bars []market.Bar
	for {
		slice, ok, err := feed.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if b, ok := slice[instrument]; ok {
			bars = append(bars, b)
		}
	}

	if len(bars) > count {
		bars = bars[len(bars)-count:]
	}
	return bars, nil
}
