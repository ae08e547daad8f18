package market

import "time"

// Series groups a tick stream into OHLC bars keyed by rounded time bucket,
// keeping the raw ticks alongside. Bars are stored in arrival order with a
// bucket-key index for O(1) merge-in-place.
//
// Series is deliberately unsynchronized: it is owned by a price store that
// serializes access (single writer per shard). Wrap it in a lock before
// using it outside that discipline.
type Series struct {
	bucket time.Duration
	ticks  []Tick
	bars   []Tick
	index  map[int64]int
}

// DefaultBucket is the aggregation period used when none is configured.
const DefaultBucket = time.Minute

func NewSeries(bucket time.Duration) *Series {
	if bucket <= 0 {
		bucket = DefaultBucket
	}
	return &Series{
		bucket: bucket,
		index:  make(map[int64]int),
	}
}

func (s *Series) Bucket() time.Duration {
	return s.bucket
}

// Append folds one tick into the series. Ticks without a quote are dropped:
// no bar is created or mutated. When the tick's bucket already has an open
// bar the bar is merged in place (high extends, low extends, close tracks
// last, sizes accumulate); otherwise a new bar is seeded whose open is the
// previous bar's close, or the tick itself when the series is empty.
func (s *Series) Append(t Tick) {
	if !t.HasQuote() {
		return
	}

	last := t.Last
	if last == 0 {
		// Quote-only feeds still produce bars; mid stands in for last.
		last = t.Mid()
		if t.Bid == 0 {
			last = t.Ask
		}
		if t.Ask == 0 {
			last = t.Bid
		}
		t.Last = last
	}

	s.ticks = append(s.ticks, t)

	key := t.Time.UnixNano() / int64(s.bucket)

	if at, ok := s.index[key]; ok {
		bar := s.bars[at]
		if last > bar.Bar.High {
			bar.Bar.High = last
		}
		if last < bar.Bar.Low {
			bar.Bar.Low = last
		}
		bar.Bar.Close = last
		bar.Last = last
		bar.Bid = t.Bid
		bar.Ask = t.Ask
		bar.BidSize += t.BidSize
		bar.AskSize += t.AskSize
		bar.Volume += t.Volume
		s.bars[at] = bar
		return
	}

	open := last
	if n := len(s.bars); n > 0 {
		open = s.bars[n-1].Bar.Close
	}

	bar := t
	bar.Period = s.bucket
	// Bucket-open instant, in the tick's own location.
	bar.Time = time.Unix(0, key*int64(s.bucket)).In(t.Time.Location())
	bar.Bar = Bar{Open: open, High: open, Low: open, Close: last}
	if last > open {
		bar.Bar.High = last
	}
	if last < open {
		bar.Bar.Low = last
	}

	s.index[key] = len(s.bars)
	s.bars = append(s.bars, bar)
}

// Last returns the most recent raw tick.
func (s *Series) Last() (Tick, bool) {
	if len(s.ticks) == 0 {
		return Tick{}, false
	}
	return s.ticks[len(s.ticks)-1], true
}

// Ticks returns raw tick history bounded by the criteria.
func (s *Series) Ticks(c Criteria) []Tick {
	return filterTicks(s.ticks, c)
}

// Bars returns aggregated bar history bounded by the criteria.
func (s *Series) Bars(c Criteria) []Tick {
	return filterTicks(s.bars, c)
}

func filterTicks(in []Tick, c Criteria) []Tick {
	out := make([]Tick, 0, len(in))
	for _, t := range in {
		if c.MatchTick(t) {
			out = append(out, t)
		}
	}
	return Tail(out, c.Count)
}
