package grain

import (
	"sync"

	"github.com/Indemos/Terminal-sub004/market"
)

// DomStore owns one instrument's book snapshot.
type DomStore struct {
	mu  sync.Mutex
	dom market.Dom
}

func NewDomStore() *DomStore {
	return &DomStore{}
}

// Store replaces the snapshot.
func (s *DomStore) Store(d market.Dom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dom = market.Dom{
		Bids: append(d.Bids[:0:0], d.Bids...),
		Asks: append(d.Asks[:0:0], d.Asks...),
	}
}

// Get returns a copy of the current snapshot.
func (s *DomStore) Get() market.Dom {
	s.mu.Lock()
	defer s.mu.Unlock()
	return market.Dom{
		Bids: append(s.dom.Bids[:0:0], s.dom.Bids...),
		Asks: append(s.dom.Asks[:0:0], s.dom.Asks...),
	}
}
