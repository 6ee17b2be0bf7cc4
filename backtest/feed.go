package backtest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/rustyeddy/portfolio/market"
)

// BarFeed yields synchronized bar slices one at a time. Implementations
// should be deterministic and return (ok=false, err=nil) at EOF.
type BarFeed interface {
	Next() (s market.Slice, ok bool, err error)
	Close() error
}

// CSVBarsFeed reads canonical bar CSV rows:
//
//	time,instrument,open,high,low,close,volume
//
// where time is RFC3339 or RFC3339Nano. Consecutive rows sharing a timestamp
// form one slice; rows must be time-ordered. A header row ("time,...") is
// allowed. Files ending in .xz are decompressed transparently.
type CSVBarsFeed struct {
	f *os.File
	r *csv.Reader

	pending  []string
	sawFirst bool
}

func NewCSVBarsFeed(path string) (*CSVBarsFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var src io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open xz bars %s: %w", path, err)
		}
		src = xr
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	return &CSVBarsFeed{f: f, r: r}, nil
}

func (f *CSVBarsFeed) Close() error {
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

// Next reads rows until the timestamp changes and returns them as one slice.
func (f *CSVBarsFeed) Next() (market.Slice, bool, error) {
	slice := market.Slice{}
	var sliceTime time.Time

	for {
		row, err := f.readRow()
		if err == io.EOF {
			if len(slice) > 0 {
				return slice, true, nil
			}
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		if row == nil {
			continue
		}

		b, err := parseBarRow(row)
		if err != nil {
			return nil, false, err
		}

		if len(slice) == 0 {
			sliceTime = b.Time
		} else if !b.Time.Equal(sliceTime) {
			// Belongs to the next slice; hold it back.
			f.pending = row
			return slice, true, nil
		}
		slice[b.Instrument] = b
	}
}

// readRow returns the next raw row, honoring a held-back row and skipping
// blank lines and a single header. A nil row with nil error means "skip".
func (f *CSVBarsFeed) readRow() ([]string, error) {
	if f.pending != nil {
		row := f.pending
		f.pending = nil
		return row, nil
	}

	row, err := f.r.Read()
	if err != nil {
		return nil, err
	}
	if len(row) == 0 {
		return nil, nil
	}
	if !f.sawFirst {
		f.sawFirst = true
		if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
			return nil, nil
		}
	}
	return row, nil
}

func parseBarRow(row []string) (market.Bar, error) {
	if len(row) < 6 {
		return market.Bar{}, fmt.Errorf("bar row needs at least 6 fields, got %d", len(row))
	}

	ts, err := parseTime(strings.TrimSpace(row[0]))
	if err != nil {
		return market.Bar{}, fmt.Errorf("bad bar time %q: %w", row[0], err)
	}

	vals := make([]float64, 0, 5)
	for _, s := range row[2:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return market.Bar{}, fmt.Errorf("bad bar field %q: %w", s, err)
		}
		vals = append(vals, v)
	}

	b := market.Bar{
		Instrument: strings.TrimSpace(row[1]),
		Open:       vals[0],
		High:       vals[1],
		Low:        vals[2],
		Close:      vals[3],
		Time:       ts,
	}
	if len(vals) > 4 {
		b.Volume = vals[4]
	}
	return b, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
