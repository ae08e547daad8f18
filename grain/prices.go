package grain

import (
	"sync"
	"time"

	"github.com/Indemos/Terminal-sub004/market"
)

// PriceStore owns one instrument's price history. It is the lock around a
// market.Series: the series itself is unsynchronized and this store is its
// single writer.
type PriceStore struct {
	mu     sync.Mutex
	series *market.Series
}

func NewPriceStore(bucket time.Duration) *PriceStore {
	return &PriceStore{series: market.NewSeries(bucket)}
}

// Append folds one tick into the history.
func (s *PriceStore) Append(t market.Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series.Append(t)
}

// Last returns the latest raw tick, if any.
func (s *PriceStore) Last() (market.Tick, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series.Last()
}

// Prices returns raw tick history bounded by the criteria.
func (s *PriceStore) Prices(c market.Criteria) []market.Tick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series.Ticks(c)
}

// PriceGroups returns aggregated bar history bounded by the criteria.
func (s *PriceStore) PriceGroups(c market.Criteria) []market.Tick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series.Bars(c)
}
