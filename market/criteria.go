package market

import "time"

// Criteria bounds a gateway read. Zero values mean "unbounded"; pointer
// fields distinguish "unset" from a legitimate zero bound.
type Criteria struct {
	Instrument string
	Count      int
	MinTime    *time.Time
	MaxTime    *time.Time
	MinPrice   *float64
	MaxPrice   *float64
	MinStrike  *float64
	MaxStrike  *float64

	// Source selects where order/position reads come from: false reads the
	// local authoritative cache, true pulls from the broker and overwrites
	// the local cache.
	Source bool
}

// MatchTick reports whether a tick falls inside the time and price bounds.
func (c Criteria) MatchTick(t Tick) bool {
	if c.Instrument != "" && c.Instrument != t.Instrument {
		return false
	}
	if c.MinTime != nil && t.Time.Before(*c.MinTime) {
		return false
	}
	if c.MaxTime != nil && t.Time.After(*c.MaxTime) {
		return false
	}
	if c.MinPrice != nil && t.Last < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && t.Last > *c.MaxPrice {
		return false
	}
	return true
}

// MatchStrike reports whether a derivative falls inside the strike bounds.
// Instruments without derivative metadata never match a strike filter.
func (c Criteria) MatchStrike(i Instrument) bool {
	if c.MinStrike == nil && c.MaxStrike == nil {
		return true
	}
	if i.Derivative == nil {
		return false
	}
	if c.MinStrike != nil && i.Derivative.Strike < *c.MinStrike {
		return false
	}
	if c.MaxStrike != nil && i.Derivative.Strike > *c.MaxStrike {
		return false
	}
	return true
}

// Tail keeps the most recent Count elements when a count bound is set.
func Tail[T any](items []T, count int) []T {
	if count > 0 && len(items) > count {
		return items[len(items)-count:]
	}
	return items
}
