package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/portfolio/strategy"
)

type CSVJournal struct {
	instructions *csv.Writer
	signals      *csv.Writer
	inf, sf      *os.File
}

func NewCSV(instructionsPath, signalsPath string) (*CSVJournal, error) {
	inf, err := os.Create(instructionsPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(signalsPath)
	if err != nil {
		inf.Close()
		return nil, err
	}

	iw := csv.NewWriter(inf)
	sw := csv.NewWriter(sf)

	if err := iw.Write([]string{"id", "time", "instrument", "direction", "target", "limit_price"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"time", "instrument", "strength", "weight", "ema_fast", "ema_slow", "emacd", "rsi", "atr", "atr_ma", "position", "target"}); err != nil {
		return nil, err
	}

	iw.Flush()
	if err := iw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{iw, sw, inf, sf}, nil
}

func (j *CSVJournal) RecordInstruction(ins strategy.Instruction) error {
	err := j.instructions.Write([]string{
		ins.ID,
		ins.Time.Format(time.RFC3339),
		ins.Instrument,
		string(ins.Direction),
		strconv.Itoa(ins.Target),
		f(ins.LimitPrice),
	})
	if err != nil {
		return err
	}

	j.instructions.Flush()
	return j.instructions.Error()
}

func (j *CSVJournal) RecordSignal(sig strategy.SignalRecord) error {
	err := j.signals.Write([]string{
		sig.Time.Format(time.RFC3339),
		sig.Instrument,
		f(sig.Strength),
		f(sig.Weight),
		f(sig.EmaFast),
		f(sig.EmaSlow),
		f(sig.Emacd),
		f(sig.RSI),
		f(sig.ATR),
		f(sig.ATRMA),
		strconv.Itoa(sig.Position),
		strconv.Itoa(sig.Target),
	})
	if err != nil {
		return err
	}

	j.signals.Flush()
	return j.signals.Error()
}

func (j *CSVJournal) Close() error {
	j.instructions.Flush()
	j.signals.Flush()
	if err := j.inf.Close(); err != nil {
		j.sf.Close()
		return err
	}
	return j.sf.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
