package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/portfolio/strategy"
)

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	t1 := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	first := strategy.Instruction{
		ID:         "01HRA0000000000000000000A1",
		Instrument: "IF888.CFFEX",
		Direction:  strategy.DirectionLong,
		Target:     3,
		LimitPrice: 3915.2,
		Time:       t1,
	}
	second := strategy.Instruction{
		ID:         "01HRA0000000000000000000A2",
		Instrument: "IH888.CFFEX",
		Direction:  strategy.DirectionShort,
		Target:     -2,
		LimitPrice: 2490.8,
		Time:       t2,
	}

	require.NoError(t, j.RecordInstruction(second))
	require.NoError(t, j.RecordInstruction(first))

	got, err := j.ListInstructions()
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Listed in time order regardless of insertion order.
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	assert.Equal(t, first.Instrument, got[0].Instrument)
	assert.Equal(t, strategy.DirectionLong, got[0].Direction)
	assert.Equal(t, 3, got[0].Target)
	assert.InDelta(t, 3915.2, got[0].LimitPrice, 1e-9)
	assert.True(t, got[0].Time.Equal(t1))
}

func TestSQLiteDuplicateIDRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	ins := strategy.Instruction{
		ID:         "01HRA0000000000000000000B1",
		Instrument: "IF888.CFFEX",
		Direction:  strategy.DirectionLong,
		Target:     1,
		LimitPrice: 3900,
		Time:       time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	require.NoError(t, j.RecordInstruction(ins))
	assert.Error(t, j.RecordInstruction(ins))
}

func TestSQLiteRecordsSignals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	sig := strategy.SignalRecord{
		Time:       time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Instrument: "IF888.CFFEX",
		Strength:   1,
		Weight:     0.5,
		EmaFast:    3910.4,
		EmaSlow:    3880.1,
		Emacd:      30.3,
		RSI:        65.2,
		ATR:        18.4,
		ATRMA:      15.1,
		Position:   0,
		Target:     3,
	}
	require.NoError(t, j.RecordSignal(sig))

	var n int
	require.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM signals`).Scan(&n))
	assert.Equal(t, 1, n)
}
