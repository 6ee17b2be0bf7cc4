package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/portfolio/strategy"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournal(t *testing.T) {
	dir := t.TempDir()
	insPath := filepath.Join(dir, "instructions.csv")
	sigPath := filepath.Join(dir, "signals.csv")

	j, err := NewCSV(insPath, sigPath)
	require.NoError(t, err)

	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, j.RecordInstruction(strategy.Instruction{
		ID:         "01HRA0000000000000000000C1",
		Instrument: "IF888.CFFEX",
		Direction:  strategy.DirectionLong,
		Target:     3,
		LimitPrice: 3915.5,
		Time:       ts,
	}))
	require.NoError(t, j.RecordSignal(strategy.SignalRecord{
		Time:       ts,
		Instrument: "IF888.CFFEX",
		Strength:   1,
		Weight:     0.5,
		RSI:        65.2,
		Position:   0,
		Target:     3,
	}))
	require.NoError(t, j.Close())

	ins := readCSV(t, insPath)
	require.Len(t, ins, 2)
	assert.Equal(t, []string{"id", "time", "instrument", "direction", "target", "limit_price"}, ins[0])
	assert.Equal(t, []string{
		"01HRA0000000000000000000C1",
		"2024-03-01T09:30:00Z",
		"IF888.CFFEX",
		"LONG",
		"3",
		"3915.5",
	}, ins[1])

	sig := readCSV(t, sigPath)
	require.Len(t, sig, 2)
	assert.Equal(t, "IF888.CFFEX", sig[1][1])
	assert.Equal(t, "1", sig[1][2])
	assert.Equal(t, "0.5", sig[1][3])
	assert.Equal(t, "65.2", sig[1][7])
	assert.Equal(t, "3", sig[1][11])
}

func TestCSVJournalFlushesPerRecord(t *testing.T) {
	dir := t.TempDir()
	insPath := filepath.Join(dir, "instructions.csv")
	sigPath := filepath.Join(dir, "signals.csv")

	j, err := NewCSV(insPath, sigPath)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordInstruction(strategy.Instruction{
		ID:         "01HRA0000000000000000000D1",
		Instrument: "IF888.CFFEX",
		Direction:  strategy.DirectionShort,
		Target:     0,
		LimitPrice: 3890,
		Time:       time.Date(2024, 3, 1, 9, 31, 0, 0, time.UTC),
	}))

	// Rows are visible on disk before Close.
	assert.Len(t, readCSV(t, insPath), 2)
}
