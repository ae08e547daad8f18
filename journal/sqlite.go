package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS fills (
	order_id TEXT PRIMARY KEY,
	account TEXT NOT NULL,
	instrument TEXT NOT NULL,
	side TEXT NOT NULL,
	type TEXT NOT NULL,
	amount REAL NOT NULL,
	price REAL NOT NULL,
	realized_pl REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	time DATETIME NOT NULL,
	account TEXT NOT NULL,
	balance REAL NOT NULL,
	performance REAL NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_time ON fills(time);
CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(time);
`

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordFill(r FillRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO fills
		(order_id, account, instrument, side, type, amount, price, realized_pl, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.OrderID, r.Account, r.Instrument, r.Side, r.Type,
		r.Amount, r.Price, r.RealizedPL, r.Time,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (time, account, balance, performance, equity)
		VALUES (?, ?, ?, ?, ?)`,
		e.Time, e.Account, e.Balance, e.Performance, e.Equity,
	)
	return err
}

// Fills returns the recorded fills in time order, for reporting.
func (j *SQLiteJournal) Fills() ([]FillRecord, error) {
	rows, err := j.db.Query(`
		SELECT order_id, account, instrument, side, type, amount, price, realized_pl, time
		FROM fills ORDER BY time, order_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FillRecord
	for rows.Next() {
		var r FillRecord
		var ts time.Time
		if err := rows.Scan(&r.OrderID, &r.Account, &r.Instrument, &r.Side, &r.Type,
			&r.Amount, &r.Price, &r.RealizedPL, &ts); err != nil {
			return nil, err
		}
		r.Time = ts
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
