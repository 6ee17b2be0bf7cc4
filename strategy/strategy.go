// Package strategy implements the decision core of a multi-instrument
// trading strategy: per-instrument trend/mean-reversion signals gated by a
// volatility regime test, portfolio-level VaR budgeting, trailing-stop exit
// management, and target-position rebalance instructions.
//
// The core is single-threaded and event-driven: the aggregation collaborator
// invokes OnBars once per synchronized bar slice, strictly sequentially. All
// state is transient and rebuilt from replayed history at startup via Init.
package strategy

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/portfolio/indicators"
	"github.com/rustyeddy/portfolio/market"
	"github.com/rustyeddy/portfolio/pkg/id"
	"github.com/rustyeddy/portfolio/risk"
)

// Strategy owns all per-instrument state for a fixed, closed set of
// instruments supplied at construction. It is not safe for concurrent use;
// the delivery contract guarantees non-overlapping OnBars invocations.
type Strategy struct {
	cfg     Config
	rsiBuy  float64
	rsiSell float64

	instruments []string
	index       map[string]int
	trackers    []*indicators.Tracker
	states      []positionState

	book     PositionBook
	loader   BarLoader
	recorder Recorder
	log      *zap.Logger
}

// Option configures optional collaborators on a Strategy.
type Option func(*Strategy)

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Strategy) { s.log = l }
}

// WithBarLoader attaches the historical-bar collaborator used by Init.
func WithBarLoader(l BarLoader) Option {
	return func(s *Strategy) { s.loader = l }
}

// WithRecorder attaches a decision-trail recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Strategy) { s.recorder = r }
}

// New builds a Strategy over the given instrument set. The set is fixed for
// the strategy's lifetime; every per-instrument state record is created here
// with neutral defaults.
func New(cfg Config, instruments []string, book PositionBook, opts ...Option) (*Strategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("strategy config: %w", err)
	}
	if len(instruments) == 0 {
		return nil, errors.New("strategy: at least one instrument required")
	}
	if book == nil {
		return nil, errors.New("strategy: position book required")
	}

	returnCap := cfg.VaRLookback
	if cfg.SignalVolWindow > returnCap {
		returnCap = cfg.SignalVolWindow
	}

	s := &Strategy{
		cfg:         cfg,
		instruments: make([]string, len(instruments)),
		index:       make(map[string]int, len(instruments)),
		trackers:    make([]*indicators.Tracker, len(instruments)),
		states:      make([]positionState, len(instruments)),
		book:        book,
		log:         zap.NewNop(),
	}
	s.rsiBuy, s.rsiSell = cfg.rsiThresholds()

	copy(s.instruments, instruments)
	for i, inst := range s.instruments {
		if _, dup := s.index[inst]; dup {
			return nil, fmt.Errorf("strategy: duplicate instrument %q", inst)
		}
		s.index[inst] = i
		s.trackers[i] = indicators.NewTracker(indicators.TrackerConfig{
			FastSpan:    cfg.FastSpan,
			SlowSpan:    cfg.SlowSpan,
			RSIWindow:   cfg.RSIWindow,
			ATRWindow:   cfg.ATRWindow,
			ATRMAWindow: cfg.ATRMAWindow,
			ReturnCap:   returnCap,
		})
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Instruments returns the configured instrument set.
func (s *Strategy) Instruments() []string {
	out := make([]string, len(s.instruments))
	copy(out, s.instruments)
	return out
}

// Init warms up indicator state by replaying historical bars from the
// attached BarLoader. It is a no-op without a loader or with WarmupBars 0.
func (s *Strategy) Init() error {
	if s.loader == nil || s.cfg.WarmupBars == 0 {
		return nil
	}
	for i, inst := range s.instruments {
		bars, err := s.loader.HistoricalBars(inst, s.cfg.WarmupBars)
		if err != nil {
			return fmt.Errorf("load history for %s: %w", inst, err)
		}
		for _, b := range bars {
			s.trackers[i].Update(b)
		}
		s.log.Debug("warmed up instrument",
			zap.String("instrument", inst),
			zap.Int("bars", len(bars)),
			zap.Bool("inited", s.trackers[i].Inited()),
		)
	}
	return nil
}

// OnBars is the single entry point, invoked once per synchronized bar slice.
// The slice must contain exactly the configured instruments; partial or
// over-full slices are a contract violation and return an error. All other
// failure conditions (warmup, degenerate weighting, short return history)
// are steady-state skips resolved by early return.
func (s *Strategy) OnBars(bars market.Slice) error {
	if err := bars.Complete(s.instruments); err != nil {
		return err
	}
	for inst := range bars {
		if _, ok := s.index[inst]; !ok {
			return fmt.Errorf("bar slice contains unconfigured instrument %q", inst)
		}
	}

	mtxSlices.Inc()

	// Indicator state for every instrument updates before any instrument's
	// signal or stop logic runs.
	for i, inst := range s.instruments {
		s.trackers[i].Update(bars[inst])
	}

	// Insufficient warmup for ANY instrument aborts the whole cycle:
	// partial computation would leave the portfolio snapshot inconsistent.
	for i, inst := range s.instruments {
		if !s.trackers[i].Inited() {
			mtxSkips.WithLabelValues("warmup").Inc()
			s.log.Debug("slice skipped: indicator warmup incomplete",
				zap.String("instrument", inst))
			return nil
		}
	}

	// The cycle state is produced fresh each slice and threaded explicitly
	// through the phases; nothing portfolio-wide survives across slices.
	cy := &cycleState{strength: s.decide(bars)}
	s.budget(cy)
	if cy.sized {
		s.applyEntries(cy.targets)
	}
	s.emit(bars)
	s.record(bars, cy)

	return nil
}

// cycleState is one slice's portfolio-wide signal snapshot: per-instrument
// strengths, their normalized unit weights, the unit-weight risk estimate,
// and the sized targets. Recomputed in full every cycle, never partially
// stale across instruments.
type cycleState struct {
	strength map[string]float64
	weights  map[string]float64
	unitRisk float64
	targets  map[string]int
	sized    bool
}

// decide runs the per-instrument phase: flat instruments go through the
// signal engine, open positions through the stop state machine. The stop
// machine takes strict precedence — entry signals are not evaluated until
// the position returns to flat.
func (s *Strategy) decide(bars market.Slice) map[string]float64 {
	strength := make(map[string]float64, len(s.instruments))

	for i, inst := range s.instruments {
		b := bars[inst]
		st := &s.states[i]
		tr := s.trackers[i]

		st.pos = s.book.Position(inst)
		st.target = st.pos
		strength[inst] = 0

		switch {
		case st.pos == 0:
			st.resetExtremes(b)
			strength[inst] = classify(signalInputs{
				rsi:   tr.RSI(),
				atr:   tr.ATR(),
				atrMA: tr.ATRMA(),
			}, s.rsiBuy, s.rsiSell)

		case st.pos > 0:
			if st.holdLong(b, s.cfg.TrailingPercent) {
				s.setTarget(i, inst, 0)
				mtxStops.WithLabelValues("long").Inc()
				s.log.Info("trailing stop hit",
					zap.String("instrument", inst),
					zap.String("side", "long"),
					zap.Float64("intra_trade_high", st.intraHigh),
					zap.Float64("close", b.Close),
				)
			}

		default:
			if st.holdShort(b, s.cfg.TrailingPercent) {
				s.setTarget(i, inst, 0)
				mtxStops.WithLabelValues("short").Inc()
				s.log.Info("trailing stop hit",
					zap.String("instrument", inst),
					zap.String("side", "short"),
					zap.Float64("intra_trade_low", st.intraLow),
					zap.Float64("close", b.Close),
				)
			}
		}
	}

	return strength
}

// budget runs the portfolio-wide phase once per slice, after every
// instrument's decision: normalize strengths into unit weights, estimate
// unit-weight portfolio risk, and scale into integer targets. cy.sized stays
// false when the cycle's weighting is degenerate or history is short;
// stop-driven targets from the decision phase stand either way.
func (s *Strategy) budget(cy *cycleState) {
	weights, err := risk.UnitWeights(cy.strength)
	if errors.Is(err, risk.ErrNoSignal) {
		mtxSkips.WithLabelValues("no_signal").Inc()
		s.log.Debug("rebalance skipped: zero aggregate signal strength")
		return
	}
	cy.weights = weights

	if s.cfg.PortfolioVaR <= 0 {
		// VaR budgeting disabled: fixed-size entries.
		cy.targets = make(map[string]int, len(cy.strength))
		for inst, str := range cy.strength {
			switch {
			case str > 0:
				cy.targets[inst] = s.cfg.FixedSize
			case str < 0:
				cy.targets[inst] = -s.cfg.FixedSize
			default:
				cy.targets[inst] = 0
			}
		}
		cy.sized = true
		return
	}

	returns := make(map[string][]float64, len(weights))
	for inst, w := range weights {
		if w == 0 {
			continue
		}
		series, ok := s.trackers[s.index[inst]].Returns(s.cfg.VaRLookback)
		if !ok {
			mtxSkips.WithLabelValues("short_history").Inc()
			s.log.Debug("rebalance skipped: insufficient return history",
				zap.String("instrument", inst))
			return
		}
		returns[inst] = series
	}

	unitRisk, err := risk.PortfolioRisk(weights, returns, s.cfg.VaRLookback)
	if err != nil {
		mtxSkips.WithLabelValues("short_history").Inc()
		s.log.Debug("rebalance skipped", zap.Error(err))
		return
	}
	cy.unitRisk = unitRisk
	mtxRisk.Set(unitRisk)

	cy.targets = risk.Size(risk.SizingInputs{
		Budget:        s.cfg.PortfolioVaR,
		PortfolioRisk: unitRisk,
		Weights:       weights,
		Strength:      cy.strength,
		MaxSize:       s.cfg.MaxSize,
	})
	cy.sized = true
}

// applyEntries pushes sized targets for flat instruments. Open positions are
// owned by the stop machine and are never re-sized here.
func (s *Strategy) applyEntries(targets map[string]int) {
	for i, inst := range s.instruments {
		if s.states[i].pos != 0 {
			continue
		}
		s.setTarget(i, inst, targets[inst])
	}
}

// emit produces one instruction per instrument whose target moved away from
// its current position, with a deterministic directional limit price. No
// retry logic lives here; partial fills belong to the execution collaborator.
func (s *Strategy) emit(bars market.Slice) {
	for i, inst := range s.instruments {
		st := &s.states[i]
		if st.target == st.pos {
			continue
		}

		dir := DirectionLong
		if st.target < st.pos {
			dir = DirectionShort
		}
		b := bars[inst]

		ins := Instruction{
			ID:         id.New(),
			Instrument: inst,
			Direction:  dir,
			Target:     st.target,
			LimitPrice: s.calculatePrice(dir, b.Close),
			Time:       b.Time,
		}

		mtxInstructions.WithLabelValues(string(dir)).Inc()
		s.log.Info("rebalance instruction",
			zap.String("id", ins.ID),
			zap.String("instrument", inst),
			zap.String("direction", string(dir)),
			zap.Int("target", st.target),
			zap.Int("position", st.pos),
			zap.Float64("limit", ins.LimitPrice),
		)

		if s.recorder != nil {
			if err := s.recorder.RecordInstruction(ins); err != nil {
				s.log.Warn("record instruction", zap.Error(err))
			}
		}
	}
}

// record writes the per-instrument signal snapshot for this slice.
func (s *Strategy) record(bars market.Slice, cy *cycleState) {
	if s.recorder == nil {
		return
	}

	for i, inst := range s.instruments {
		tr := s.trackers[i]
		rec := SignalRecord{
			Time:       bars[inst].Time,
			Instrument: inst,
			Strength:   cy.strength[inst],
			Weight:     cy.weights[inst],
			EmaFast:    tr.EmaFast(),
			EmaSlow:    tr.EmaSlow(),
			Emacd:      tr.Emacd(),
			RSI:        tr.RSI(),
			ATR:        tr.ATR(),
			ATRMA:      tr.ATRMA(),
			Position:   s.states[i].pos,
			Target:     s.states[i].target,
		}
		if err := s.recorder.RecordSignal(rec); err != nil {
			s.log.Warn("record signal", zap.Error(err))
		}
	}
}

// setTarget records the instrument's target and hands it to the execution
// collaborator. SetTarget is idempotent on the collaborator side.
func (s *Strategy) setTarget(i int, inst string, target int) {
	s.states[i].target = target
	s.book.SetTarget(inst, target)
}

// calculatePrice computes the directional limit price for a rebalance
// adjustment: reference plus the fixed offset for long, minus for short.
func (s *Strategy) calculatePrice(dir Direction, reference float64) float64 {
	if dir == DirectionLong {
		return reference + s.cfg.PriceAdd
	}
	return reference - s.cfg.PriceAdd
}
