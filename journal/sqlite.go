package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/portfolio/strategy"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordInstruction(ins strategy.Instruction) error {
	_, err := j.db.Exec(`
		INSERT INTO instructions
		(id, time, instrument, direction, target, limit_price)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ins.ID, ins.Time, ins.Instrument, string(ins.Direction), ins.Target, ins.LimitPrice,
	)
	return err
}

func (j *SQLiteJournal) RecordSignal(sig strategy.SignalRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO signals
		(time, instrument, strength, weight, ema_fast, ema_slow, emacd, rsi, atr, atr_ma, position, target)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sig.Time, sig.Instrument, sig.Strength, sig.Weight,
		sig.EmaFast, sig.EmaSlow, sig.Emacd, sig.RSI, sig.ATR, sig.ATRMA,
		sig.Position, sig.Target,
	)
	return err
}

// ListInstructions returns every journaled instruction in time order.
func (j *SQLiteJournal) ListInstructions() ([]strategy.Instruction, error) {
	rows, err := j.db.Query(`
		SELECT id, time, instrument, direction, target, limit_price
		FROM instructions ORDER BY time, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []strategy.Instruction
	for rows.Next() {
		var ins strategy.Instruction
		var dir string
		if err := rows.Scan(&ins.ID, &ins.Time, &ins.Instrument, &dir, &ins.Target, &ins.LimitPrice); err != nil {
			return nil, err
		}
		ins.Direction = strategy.Direction(dir)
		out = append(out, ins)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
