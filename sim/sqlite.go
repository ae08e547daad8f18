package sim

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const ticksSchema = `
CREATE TABLE IF NOT EXISTS ticks (
	time DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	bid REAL NOT NULL,
	ask REAL NOT NULL,
	last REAL NOT NULL DEFAULT 0,
	bid_size REAL NOT NULL DEFAULT 0,
	ask_size REAL NOT NULL DEFAULT 0,
	volume REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_ticks_time ON ticks(time);
`

// SQLiteDataset streams ticks from a ticks table in time order.
type SQLiteDataset struct {
	db   *sql.DB
	rows *sql.Rows
}

func OpenSQLite(path string) (*SQLiteDataset, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT time, instrument, bid, ask, last, bid_size, ask_size, volume
		FROM ticks ORDER BY time`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteDataset{db: db, rows: rows}, nil
}

func (d *SQLiteDataset) Next(ctx context.Context) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	if !d.rows.Next() {
		if err := d.rows.Err(); err != nil {
			return Record{}, err
		}
		return Record{}, ErrExhausted
	}

	var rec Record
	var ts time.Time
	err := d.rows.Scan(&ts, &rec.Instrument, &rec.Bid, &rec.Ask, &rec.Last,
		&rec.BidSize, &rec.AskSize, &rec.Volume)
	if err != nil {
		return Record{}, err
	}
	rec.Time = ts

	if rec.Last == 0 {
		rec.Last = (rec.Bid + rec.Ask) / 2
	}
	return rec, nil
}

func (d *SQLiteDataset) Close() error {
	d.rows.Close()
	return d.db.Close()
}

// WriteSQLite creates (or appends to) a tick database, for fixture tooling
// and tests.
func WriteSQLite(path string, records []Record) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(ticksSchema); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	for _, r := range records {
		_, err := tx.Exec(`
			INSERT INTO ticks (time, instrument, bid, ask, last, bid_size, ask_size, volume)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.Time, r.Instrument, r.Bid, r.Ask, r.Last, r.BidSize, r.AskSize, r.Volume)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
