package strategy

import "github.com/prometheus/client_golang/prometheus"

var (
	mtxSlices = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_bar_slices_total",
			Help: "Bar slices delivered to the strategy",
		},
	)

	// Skips are expected steady-state conditions (warmup, flat markets),
	// not faults; reasons: warmup, no_signal, short_history.
	mtxSkips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_rebalance_skips_total",
			Help: "Slices where the rebalance step was skipped, by reason",
		},
		[]string{"reason"},
	)

	mtxInstructions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_instructions_total",
			Help: "Rebalance instructions emitted, by direction",
		},
		[]string{"direction"},
	)

	mtxStops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_trailing_stops_total",
			Help: "Trailing-stop exits triggered, by side",
		},
		[]string{"side"},
	)

	mtxRisk = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_unit_risk",
			Help: "Latest unit-weight portfolio risk estimate",
		},
	)
)

func init() {
	prometheus.MustRegister(
		mtxSlices,
		mtxSkips,
		mtxInstructions,
		mtxStops,
		mtxRisk,
	)
}
