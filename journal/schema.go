package journal

const Schema = `
CREATE TABLE IF NOT EXISTS instructions (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	direction TEXT NOT NULL,
	target INTEGER NOT NULL,
	limit_price REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS signals (
	time DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	strength REAL NOT NULL,
	weight REAL NOT NULL,
	ema_fast REAL NOT NULL,
	ema_slow REAL NOT NULL,
	emacd REAL NOT NULL,
	rsi REAL NOT NULL,
	atr REAL NOT NULL,
	atr_ma REAL NOT NULL,
	position INTEGER NOT NULL,
	target INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_instructions_time ON instructions(time);
CREATE INDEX IF NOT EXISTS idx_signals_time ON signals(time, instrument);
`
