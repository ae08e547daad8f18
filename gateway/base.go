package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/Indemos/Terminal-sub004/grain"
	"github.com/Indemos/Terminal-sub004/market"
	"go.uber.org/zap"
)

// Syncer is the broker-side reconciliation hook a concrete gateway provides.
// It is consulted only for reads with Criteria.Source=true; the result
// overwrites the local shard.
type Syncer interface {
	SyncOrders(ctx context.Context) (map[string]market.Order, error)
	SyncPositions(ctx context.Context) (map[string]market.Position, error)
}

// Base carries the state routing every concrete gateway shares: the account,
// the shard directory, and descriptor construction. The gateway itself holds
// no business state; all of it lives behind descriptors in the directory.
type Base struct {
	mu      sync.Mutex
	account market.Account

	dir *grain.Directory
	log *zap.Logger
}

func NewBase(account market.Account, dir *grain.Directory, log *zap.Logger) *Base {
	if log == nil {
		log = zap.NewNop()
	}
	return &Base{account: account.Clone(), dir: dir, log: log}
}

func (b *Base) Log() *zap.Logger {
	return b.log
}

func (b *Base) Directory() *grain.Directory {
	return b.dir
}

// Descriptor builds the canonical shard key for this account.
func (b *Base) Descriptor(kind grain.Kind, name string) grain.Descriptor {
	b.mu.Lock()
	defer b.mu.Unlock()
	return grain.Descriptor{Account: b.account.Descriptor, Kind: kind, Name: name}
}

func (b *Base) Connection() *grain.ConnectionStore {
	return b.dir.Connection(b.Descriptor(grain.KindConnection, ""))
}

func (b *Base) OrderShard() *grain.OrderStore {
	return b.dir.Orders(b.Descriptor(grain.KindOrders, ""))
}

func (b *Base) TransactionShard() *grain.OrderStore {
	return b.dir.Orders(b.Descriptor(grain.KindTransactions, ""))
}

func (b *Base) PositionShard() *grain.PositionStore {
	return b.dir.Positions(b.Descriptor(grain.KindPositions, ""))
}

func (b *Base) PriceShard(instrument string) *grain.PriceStore {
	return b.dir.Prices(b.Descriptor(grain.KindPrices, instrument))
}

func (b *Base) OptionShard(instrument string) *grain.OptionStore {
	return b.dir.Options(b.Descriptor(grain.KindOptions, instrument))
}

func (b *Base) DomShard(instrument string) *grain.DomStore {
	return b.dir.Dom(b.Descriptor(grain.KindDom, instrument))
}

// Account returns the current account snapshot.
func (b *Base) Account() market.Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.account.Clone()
}

// Instrument resolves a configured instrument by name.
func (b *Base) Instrument(name string) (market.Instrument, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.account.Instruments[name]
	return i, ok
}

// SetQuote replaces an instrument's latest top-of-book.
func (b *Base) SetQuote(t market.Tick) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i, ok := b.account.Instruments[t.Instrument]; ok {
		i.Price = t
		b.account.Instruments[t.Instrument] = i
	}
}

// ApplyFill books realized profit-and-loss into cumulative performance.
// Balance stays the deposited cash; account value is balance plus
// performance plus unrealized.
func (b *Base) ApplyFill(pnl float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.account.Performance += pnl
}

// Quote serves the validator: latest shard tick first, configured instrument
// price as fallback before any tick arrived.
func (b *Base) Quote(name string) (market.Tick, bool) {
	if t, ok := b.PriceShard(name).Last(); ok {
		return t, true
	}
	i, ok := b.Instrument(name)
	if !ok {
		return market.Tick{}, false
	}
	return i.Price, i.Price.HasQuote()
}

// Validate runs the order rule table against current quotes.
func (b *Base) Validate(o market.Order) market.Faults {
	return ValidateOrder(o, b.Quote)
}

// Reads shared by every gateway implementation.

func (b *Base) GetAccount(ctx context.Context) (market.Account, error) {
	return b.Account(), nil
}

func (b *Base) GetDom(ctx context.Context, c market.Criteria) (market.Dom, error) {
	return b.DomShard(c.Instrument).Get(), nil
}

func (b *Base) GetPrices(ctx context.Context, c market.Criteria) ([]market.Tick, error) {
	return b.PriceShard(c.Instrument).Prices(c), nil
}

func (b *Base) GetPriceGroups(ctx context.Context, c market.Criteria) ([]market.Tick, error) {
	return b.PriceShard(c.Instrument).PriceGroups(c), nil
}

func (b *Base) GetOptions(ctx context.Context, c market.Criteria) ([]market.Instrument, error) {
	return b.OptionShard(c.Instrument).Get(c), nil
}

func (b *Base) GetTransactions(ctx context.Context, c market.Criteria) ([]market.Order, error) {
	return b.TransactionShard().Get(c), nil
}

// GetOrders serves the local cache, or reconciles it from the syncer when
// Criteria.Source is set.
func (b *Base) GetOrders(ctx context.Context, c market.Criteria, sync Syncer) ([]market.Order, error) {
	if c.Source && sync != nil {
		fresh, err := sync.SyncOrders(ctx)
		if err != nil {
			return nil, err
		}
		b.OrderShard().Store(fresh)
	}
	return b.OrderShard().Get(c), nil
}

func (b *Base) GetPositions(ctx context.Context, c market.Criteria, sync Syncer) ([]market.Position, error) {
	if c.Source && sync != nil {
		fresh, err := sync.SyncPositions(ctx)
		if err != nil {
			return nil, err
		}
		b.PositionShard().Store(fresh)
	}
	return b.PositionShard().Get(c), nil
}

// Retry runs fn up to attempts times with a doubling pause, for transient
// session setup failures (a locked dataset file, a slow broker handshake).
// Validation faults are never retried; this is only for the transient class.
func Retry(ctx context.Context, attempts int, pause time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(pause):
		}
		pause *= 2
	}
	return err
}
