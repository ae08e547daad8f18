package market

import "time"

// Bar is the OHLC aggregate carried by a grouped Tick.
type Bar struct {
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Tick is one top-of-book update. A raw tick carries bid/ask/last and sizes;
// a grouped tick additionally carries the Bar of its time bucket and the
// aggregation Period it was built with. Ticks are values and are never
// mutated after emission; merges produce a new Tick.
type Tick struct {
	Instrument string
	Bid        float64
	Ask        float64
	Last       float64
	BidSize    float64
	AskSize    float64
	Volume     float64
	Time       time.Time
	Period     time.Duration
	Bar        Bar
}

// HasQuote reports whether the tick carries at least one side of the book.
// Quoteless ticks are dropped by the aggregation series.
func (t Tick) HasQuote() bool {
	return t.Bid != 0 || t.Ask != 0
}

func (t Tick) Mid() float64 {
	return (t.Bid + t.Ask) / 2
}

func (t Tick) Spread() float64 {
	return t.Ask - t.Bid
}
