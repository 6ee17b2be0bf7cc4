// Package backtest drives the strategy over recorded bar slices with a
// paper position book.
package backtest

import (
	"fmt"
	"time"

	"github.com/rustyeddy/portfolio/sim"
	"github.com/rustyeddy/portfolio/strategy"
)

// Runner replays a bar feed through the strategy, settling targets against
// the paper book after each slice.
type Runner struct {
	Strategy *strategy.Strategy
	Feed     BarFeed
	Book     *sim.Book
}

// Run executes the backtest loop:
//  1. read next bar slice
//  2. strategy.OnBars(slice)
//  3. book.Settle(slice)
func (r *Runner) Run() (Result, error) {
	if r.Strategy == nil {
		return Result{}, fmt.Errorf("backtest: Strategy is required")
	}
	if r.Feed == nil {
		return Result{}, fmt.Errorf("backtest: Feed is required")
	}
	if r.Book == nil {
		return Result{}, fmt.Errorf("backtest: Book is required")
	}
	defer r.Feed.Close()

	var res Result

	for {
		slice, ok, err := r.Feed.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}

		var sliceTime time.Time
		for _, b := range slice {
			sliceTime = b.Time
			break
		}
		if res.Start.IsZero() || sliceTime.Before(res.Start) {
			res.Start = sliceTime
		}
		if res.End.IsZero() || sliceTime.After(res.End) {
			res.End = sliceTime
		}

		if err := r.Strategy.OnBars(slice); err != nil {
			return Result{}, err
		}
		res.Fills += r.Book.Settle(slice)
		res.Slices++
	}

	res.RealizedPL = r.Book.TotalRealized()
	res.OpenPositions = r.Book.Positions()
	return res, nil
}
