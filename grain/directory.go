package grain

import (
	"sync"
	"time"
)

// Directory resolves descriptors to store instances, creating empty shards
// lazily on first lookup. Exactly one instance exists per unique key for the
// directory's lifetime; the maps are guarded so lookups from concurrent
// sessions race safely while the stores themselves serialize their own
// mutations.
type Directory struct {
	bucket time.Duration

	mu          sync.RWMutex
	orders      map[string]*OrderStore
	positions   map[string]*PositionStore
	prices      map[string]*PriceStore
	options     map[string]*OptionStore
	doms        map[string]*DomStore
	connections map[string]*ConnectionStore
}

// NewDirectory builds an empty directory whose price shards aggregate at the
// given bucket size.
func NewDirectory(bucket time.Duration) *Directory {
	return &Directory{
		bucket:      bucket,
		orders:      make(map[string]*OrderStore),
		positions:   make(map[string]*PositionStore),
		prices:      make(map[string]*PriceStore),
		options:     make(map[string]*OptionStore),
		doms:        make(map[string]*DomStore),
		connections: make(map[string]*ConnectionStore),
	}
}

func (d *Directory) Orders(desc Descriptor) *OrderStore {
	key := desc.Key()

	d.mu.RLock()
	s, ok := d.orders[key]
	d.mu.RUnlock()
	if ok {
		return s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok = d.orders[key]; !ok {
		s = NewOrderStore()
		d.orders[key] = s
	}
	return s
}

func (d *Directory) Positions(desc Descriptor) *PositionStore {
	key := desc.Key()

	d.mu.RLock()
	s, ok := d.positions[key]
	d.mu.RUnlock()
	if ok {
		return s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok = d.positions[key]; !ok {
		s = NewPositionStore()
		d.positions[key] = s
	}
	return s
}

func (d *Directory) Prices(desc Descriptor) *PriceStore {
	key := desc.Key()

	d.mu.RLock()
	s, ok := d.prices[key]
	d.mu.RUnlock()
	if ok {
		return s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok = d.prices[key]; !ok {
		s = NewPriceStore(d.bucket)
		d.prices[key] = s
	}
	return s
}

func (d *Directory) Options(desc Descriptor) *OptionStore {
	key := desc.Key()

	d.mu.RLock()
	s, ok := d.options[key]
	d.mu.RUnlock()
	if ok {
		return s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok = d.options[key]; !ok {
		s = NewOptionStore()
		d.options[key] = s
	}
	return s
}

func (d *Directory) Dom(desc Descriptor) *DomStore {
	key := desc.Key()

	d.mu.RLock()
	s, ok := d.doms[key]
	d.mu.RUnlock()
	if ok {
		return s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok = d.doms[key]; !ok {
		s = NewDomStore()
		d.doms[key] = s
	}
	return s
}

func (d *Directory) Connection(desc Descriptor) *ConnectionStore {
	key := desc.Key()

	d.mu.RLock()
	s, ok := d.connections[key]
	d.mu.RUnlock()
	if ok {
		return s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok = d.connections[key]; !ok {
		s = NewConnectionStore()
		d.connections[key] = s
	}
	return s
}
