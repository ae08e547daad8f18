package grain

import (
	"sort"
	"sync"

	"github.com/Indemos/Terminal-sub004/market"
)

// PositionStore owns one account's open positions, keyed by the id of the
// order that opened them.
type PositionStore struct {
	mu        sync.Mutex
	positions map[string]market.Position
}

func NewPositionStore() *PositionStore {
	return &PositionStore{positions: make(map[string]market.Position)}
}

// Store replaces the whole shard with a broker-side snapshot.
func (s *PositionStore) Store(positions map[string]market.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions = make(map[string]market.Position, len(positions))
	for id, p := range positions {
		p.Order = p.Order.Clone()
		s.positions[id] = p
	}
}

// Send upserts a single position.
func (s *PositionStore) Send(p market.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Order = p.Order.Clone()
	s.positions[p.Order.ID] = p
}

// Remove drops a position by originating order id.
func (s *PositionStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.positions[id]
	delete(s.positions, id)
	return ok
}

func (s *PositionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = make(map[string]market.Position)
}

// Mark revalues every position on the tick's instrument and returns the
// updated copies.
func (s *PositionStore) Mark(t market.Tick) []market.Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]market.Position, 0)
	for id, p := range s.positions {
		if p.Order.Name() != t.Instrument {
			continue
		}
		p.Update(t)
		s.positions[id] = p
		out = append(out, p)
	}
	return out
}

// Get returns a filtered copy sorted by open time, then id.
func (s *PositionStore) Get(c market.Criteria) []market.Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]market.Position, 0, len(s.positions))
	for _, p := range s.positions {
		if c.Instrument != "" && c.Instrument != p.Order.Name() {
			continue
		}
		if c.MinTime != nil && p.Order.Operation.Time.Before(*c.MinTime) {
			continue
		}
		if c.MaxTime != nil && p.Order.Operation.Time.After(*c.MaxTime) {
			continue
		}
		p.Order = p.Order.Clone()
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].Order.Operation.Time, out[j].Order.Operation.Time
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return out[i].Order.ID < out[j].Order.ID
	})

	return market.Tail(out, c.Count)
}
