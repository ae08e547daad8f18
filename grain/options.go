package grain

import (
	"sort"
	"sync"

	"github.com/Indemos/Terminal-sub004/market"
)

// OptionStore owns one underlying's derivative chain.
type OptionStore struct {
	mu    sync.Mutex
	chain []market.Instrument
}

func NewOptionStore() *OptionStore {
	return &OptionStore{}
}

// Store replaces the chain.
func (s *OptionStore) Store(chain []market.Instrument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chain = append(s.chain[:0:0], chain...)
}

// Get returns the chain filtered by strike bounds, sorted by expiration then
// strike.
func (s *OptionStore) Get(c market.Criteria) []market.Instrument {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]market.Instrument, 0, len(s.chain))
	for _, i := range s.chain {
		if !c.MatchStrike(i) {
			continue
		}
		out = append(out, i)
	}

	sort.Slice(out, func(a, b int) bool {
		da, db := out[a].Derivative, out[b].Derivative
		if da == nil || db == nil {
			return out[a].Name < out[b].Name
		}
		if !da.Expiration.Equal(db.Expiration) {
			return da.Expiration.Before(db.Expiration)
		}
		return da.Strike < db.Strike
	})

	return out
}
