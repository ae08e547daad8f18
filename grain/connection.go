package grain

import (
	"sync"

	"github.com/Indemos/Terminal-sub004/market"
)

// ConnectionParams carries whatever the adapter needs to open a session.
type ConnectionParams struct {
	Account string
	Source  string
}

// ConnectionStore owns one account's session state: whether a connection is
// up and which instruments are subscribed. Every call against a torn-down
// session answers with the no-connection fault rather than an error.
type ConnectionStore struct {
	mu     sync.Mutex
	active bool
	params ConnectionParams
	subs   map[string]bool
}

func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{subs: make(map[string]bool)}
}

// Setup marks the session live. Calling Setup on a live session resets the
// subscription set, matching the connect-is-idempotent contract.
func (s *ConnectionStore) Setup(p ConnectionParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.params = p
	s.subs = make(map[string]bool)
}

// Disconnect tears the session down. Safe on an already-down session.
func (s *ConnectionStore) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.subs = make(map[string]bool)
}

func (s *ConnectionStore) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *ConnectionStore) Params() ConnectionParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Subscribe starts tick delivery for one instrument.
func (s *ConnectionStore) Subscribe(instrument string) market.Faults {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return market.NoConnection()
	}
	s.subs[instrument] = true
	return nil
}

// Unsubscribe stops tick delivery. Unsubscribing an unknown instrument is a
// no-op, not a fault.
func (s *ConnectionStore) Unsubscribe(instrument string) market.Faults {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return market.NoConnection()
	}
	delete(s.subs, instrument)
	return nil
}

func (s *ConnectionStore) Subscribed(instrument string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active && s.subs[instrument]
}
