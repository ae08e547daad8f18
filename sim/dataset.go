// Package sim is the simulation gateway: it replays a historical dataset
// through the same pipeline a live broker session uses and simulates fills,
// so strategy code cannot tell the two apart.
package sim

import (
	"context"
	"errors"
	"time"

	"github.com/Indemos/Terminal-sub004/market"
)

// ErrExhausted signals the end of a historical dataset. It is a terminal,
// non-error condition, in the way io.EOF is: replay stops and subscribers
// get a terminal notification.
var ErrExhausted = errors.New("dataset exhausted")

// Dataset is an ordered source of historical ticks. Next returns
// ErrExhausted after the last record; any other error aborts the replay.
type Dataset interface {
	Next(ctx context.Context) (Record, error)
	Close() error
}

// Record is one historical tick row as stored: a storage-format DTO mapped
// into the shared data model by Tick(), the single conversion point.
type Record struct {
	Instrument string
	Bid        float64
	Ask        float64
	Last       float64
	BidSize    float64
	AskSize    float64
	Volume     float64
	Time       time.Time
}

func (r Record) Tick() market.Tick {
	return market.Tick{
		Instrument: r.Instrument,
		Bid:        r.Bid,
		Ask:        r.Ask,
		Last:       r.Last,
		BidSize:    r.BidSize,
		AskSize:    r.AskSize,
		Volume:     r.Volume,
		Time:       r.Time,
	}
}

// Memory is a slice-backed dataset for tests and scripted scenarios.
type Memory struct {
	records []Record
	at      int
}

func NewMemory(records []Record) *Memory {
	return &Memory{records: records}
}

func (m *Memory) Next(ctx context.Context) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	if m.at >= len(m.records) {
		return Record{}, ErrExhausted
	}
	r := m.records[m.at]
	m.at++
	return r, nil
}

func (m *Memory) Close() error { return nil }
