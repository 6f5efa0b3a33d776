package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	direction TEXT NOT NULL CHECK (direction IN ('long', 'short')),
	size INTEGER NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	stop_price REAL,
	target_price REAL,
	trade_date TEXT NOT NULL,
	created_at DATETIME,
	note TEXT NOT NULL DEFAULT '',
	setup_tag TEXT NOT NULL DEFAULT '',
	attachment_ref TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(trade_date);
`

// tradeColumns must match the scan order in scanTrade.
const tradeColumns = `trade_id, direction, size, entry_price, exit_price, stop_price, target_price,
	trade_date, created_at, note, setup_tag, attachment_ref`
