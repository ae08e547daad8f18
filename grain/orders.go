package grain

import (
	"sort"
	"sync"

	"github.com/Indemos/Terminal-sub004/market"
)

// OrderStore owns one account's working orders (or its transaction history,
// under a different descriptor kind). Mutations take the shard lock for the
// whole turn, so concurrent callers are serialized in arrival order while
// other shards proceed in parallel.
type OrderStore struct {
	mu     sync.Mutex
	orders map[string]market.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]market.Order)}
}

// Store replaces the whole shard with a broker-side snapshot
// (reconciliation path).
func (s *OrderStore) Store(orders map[string]market.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = make(map[string]market.Order, len(orders))
	for id, o := range orders {
		s.orders[id] = o.Clone()
	}
}

// Send upserts a single order.
func (s *OrderStore) Send(o market.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o.Clone()
}

// Remove drops an order by id, reporting whether it existed.
func (s *OrderStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.orders[id]
	delete(s.orders, id)
	return ok
}

func (s *OrderStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make(map[string]market.Order)
}

// Get returns a filtered copy sorted by operation time, then id, so reads
// are stable regardless of map iteration order.
func (s *OrderStore) Get(c market.Criteria) []market.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]market.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if c.Instrument != "" && c.Instrument != o.Name() {
			continue
		}
		if c.MinTime != nil && o.Operation.Time.Before(*c.MinTime) {
			continue
		}
		if c.MaxTime != nil && o.Operation.Time.After(*c.MaxTime) {
			continue
		}
		out = append(out, o.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Operation.Time.Equal(out[j].Operation.Time) {
			return out[i].Operation.Time.Before(out[j].Operation.Time)
		}
		return out[i].ID < out[j].ID
	})

	return market.Tail(out, c.Count)
}
