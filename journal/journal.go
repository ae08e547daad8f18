// Package journal records fills and equity snapshots produced by a gateway
// session, for audit and post-run analysis.
package journal

import "time"

// FillRecord is one executed order.
type FillRecord struct {
	OrderID    string
	Account    string
	Instrument string
	Side       string
	Type       string
	Amount     float64
	Price      float64
	RealizedPL float64
	Time       time.Time
}

// EquitySnapshot is the account state after a fill or mark.
type EquitySnapshot struct {
	Time        time.Time
	Account     string
	Balance     float64
	Performance float64
	Equity      float64
}

type Journal interface {
	RecordFill(FillRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards everything; the default when no journal is configured.
type Nop struct{}

func (Nop) RecordFill(FillRecord) error       { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) Close() error                      { return nil }
