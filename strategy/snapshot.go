package strategy

// InstrumentState is a read-only view of one instrument's current strategy
// state, for hosts that publish state to a UI or monitoring layer.
type InstrumentState struct {
	Instrument     string
	Position       int
	Target         int
	IntraTradeHigh float64
	IntraTradeLow  float64

	Inited  bool
	EmaFast float64
	EmaSlow float64
	Emacd   float64
	RSI     float64
	ATR     float64
	ATRMA   float64
}

// Snapshot returns the current state of every configured instrument, in
// construction order. Indicator values are zero until Inited.
func (s *Strategy) Snapshot() []InstrumentState {
	out := make([]InstrumentState, len(s.instruments))
	for i, inst := range s.instruments {
		st := s.states[i]
		tr := s.trackers[i]
		out[i] = InstrumentState{
			Instrument:     inst,
			Position:       st.pos,
			Target:         st.target,
			IntraTradeHigh: st.intraHigh,
			IntraTradeLow:  st.intraLow,
			Inited:         tr.Inited(),
		}
		if out[i].Inited {
			out[i].EmaFast = tr.EmaFast()
			out[i].EmaSlow = tr.EmaSlow()
			out[i].Emacd = tr.Emacd()
			out[i].RSI = tr.RSI()
			out[i].ATR = tr.ATR()
			out[i].ATRMA = tr.ATRMA()
		}
	}
	return out
}
