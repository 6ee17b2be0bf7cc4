package backtest

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Result summarizes one backtest run.
type Result struct {
	Start time.Time
	End   time.Time

	Slices int
	Fills  int

	RealizedPL    float64
	OpenPositions map[string]int
}

// Summary renders a human-readable run report.
func (r Result) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Backtest %s -> %s\n",
		r.Start.UTC().Format(time.RFC3339), r.End.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "  slices:      %d\n", r.Slices)
	fmt.Fprintf(&b, "  fills:       %d\n", r.Fills)
	fmt.Fprintf(&b, "  realized PL: %.2f\n", r.RealizedPL)

	if len(r.OpenPositions) > 0 {
		insts := make([]string, 0, len(r.OpenPositions))
		for inst := range r.OpenPositions {
			insts = append(insts, inst)
		}
		sort.Strings(insts)

		b.WriteString("  open positions:\n")
		for _, inst := range insts {
			fmt.Fprintf(&b, "    %-12s %+d\n", inst, r.OpenPositions[inst])
		}
	}
	return b.String()
}
