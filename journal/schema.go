package journal

// Schema recreates the export tables. Amounts are TEXT so decimals
// round-trip exactly; dates are ISO strings.
const Schema = `
DROP TABLE IF EXISTS pnl;
DROP TABLE IF EXISTS cashflows;
DROP TABLE IF EXISTS runs;

CREATE TABLE runs (
	run_id TEXT PRIMARY KEY,
	as_of TEXT NOT NULL,
	created TEXT NOT NULL,
	trades_path TEXT NOT NULL,
	points_path TEXT NOT NULL,
	trades INTEGER NOT NULL,
	failures INTEGER NOT NULL,
	fallbacks INTEGER NOT NULL
);

CREATE TABLE cashflows (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	date TEXT NOT NULL,
	currency TEXT NOT NULL,
	amount TEXT NOT NULL,
	PRIMARY KEY (run_id, date, currency)
);

CREATE TABLE pnl (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	deal_id TEXT NOT NULL,
	currency TEXT NOT NULL,
	amount TEXT NOT NULL,
	source TEXT NOT NULL
);

CREATE INDEX idx_pnl_run ON pnl(run_id);
`
