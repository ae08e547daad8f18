package sim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Indemos/Terminal-sub004/gateway"
	"github.com/Indemos/Terminal-sub004/grain"
	"github.com/Indemos/Terminal-sub004/internal/id"
	"github.com/Indemos/Terminal-sub004/journal"
	"github.com/Indemos/Terminal-sub004/market"
	"go.uber.org/zap"
)

// Notification is the push event charting and strategy subscribers receive,
// keyed by instrument and series name. Done marks replay exhaustion: a
// terminal signal, not an error.
type Notification struct {
	Instrument string
	Series     string
	Tick       market.Tick
	Done       bool
}

const (
	SeriesTicks = "ticks"
	SeriesBars  = "bars"
)

// Settings configures one simulation session.
type Settings struct {
	Account market.Account

	// Dataset takes precedence; when nil, Source is opened by extension
	// (.db/.sqlite → SQLite, anything else → CSV, .xz handled).
	Dataset Dataset
	Source  string

	// Speed 1 consumes ticks as fast as possible; higher values throttle by
	// (Speed-1) milliseconds per tick.
	Speed int

	// Bucket is the bar aggregation period, DefaultBucket when zero.
	Bucket time.Duration

	Journal journal.Journal
	Log     *zap.Logger
}

// Gateway is the reference Gateway implementation: historical replay plus
// fill simulation, writing through the same shards a live session uses.
type Gateway struct {
	*gateway.Base

	journal journal.Journal
	source  string
	speed   int

	// fillMu serializes fill application between the replay loop and order
	// submission, so a tick and a SendOrder cannot both consume the same
	// position.
	fillMu sync.Mutex

	sessionMu sync.Mutex
	dataset   Dataset
	opened    bool // dataset was opened from source and is ours to close
	cancel    context.CancelFunc
	done      chan struct{}

	notes chan Notification
}

func New(s Settings) *Gateway {
	if s.Journal == nil {
		s.Journal = journal.Nop{}
	}
	if s.Speed < 1 {
		s.Speed = 1
	}
	bucket := s.Bucket
	if bucket <= 0 {
		bucket = market.DefaultBucket
	}

	return &Gateway{
		Base:    gateway.NewBase(s.Account, grain.NewDirectory(bucket), s.Log),
		journal: s.Journal,
		dataset: s.Dataset,
		source:  s.Source,
		speed:   s.Speed,
		notes:   make(chan Notification, 1024),
	}
}

// Notifications is the subscriber stream. Sends never block the replay loop;
// a full buffer drops the frame.
func (g *Gateway) Notifications() <-chan Notification {
	return g.notes
}

// Done reports replay completion for the current session.
func (g *Gateway) Done() <-chan struct{} {
	g.sessionMu.Lock()
	defer g.sessionMu.Unlock()
	return g.done
}

// Connect opens the session: tears down any prior one, opens the dataset,
// initializes the connection shard and starts the replay loop. Failures
// surface in the response envelope, never as a log-and-continue.
func (g *Gateway) Connect(ctx context.Context) market.StatusResponse {
	g.disconnect()

	g.sessionMu.Lock()
	defer g.sessionMu.Unlock()

	if g.dataset == nil {
		err := gateway.Retry(ctx, 3, 50*time.Millisecond, func() error {
			ds, err := openSource(g.source)
			if err != nil {
				return err
			}
			g.dataset = ds
			g.opened = true
			return nil
		})
		if err != nil {
			g.Log().Warn("connect failed", zap.String("source", g.source), zap.Error(err))
			return market.StatusResponse{
				Status: market.ConnectionError,
				Errors: market.Errorf("connection", "open dataset: %v", err),
			}
		}
	}

	g.Connection().Setup(grain.ConnectionParams{
		Account: g.Account().Descriptor,
		Source:  g.source,
	})

	loopCtx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.done = make(chan struct{})

	go g.replay(loopCtx, g.dataset, g.done)

	g.Log().Info("session connected", zap.String("account", g.Account().Descriptor))
	return market.StatusResponse{Status: market.ConnectionActive}
}

// Disconnect stops the replay loop and tears down the connection shard.
// Quiet on an already-disconnected session.
func (g *Gateway) Disconnect(ctx context.Context) market.StatusResponse {
	g.disconnect()
	return market.StatusResponse{Status: market.ConnectionInactive}
}

func (g *Gateway) disconnect() {
	g.sessionMu.Lock()
	cancel, done := g.cancel, g.done
	g.cancel = nil
	g.sessionMu.Unlock()

	// Stop delivery before the loop unwinds, so an order send racing the
	// disconnect already sees a dead session.
	g.Connection().Disconnect()

	if cancel != nil {
		cancel()
		<-done
	}

	// A dataset we opened ourselves is released so a later Connect starts
	// the replay over from the beginning.
	g.sessionMu.Lock()
	if g.opened && g.dataset != nil {
		g.dataset.Close()
		g.dataset = nil
		g.opened = false
	}
	g.sessionMu.Unlock()
}

func (g *Gateway) Subscribe(ctx context.Context, instrument string) market.StatusResponse {
	if fs := g.Connection().Subscribe(instrument); fs != nil {
		return market.StatusResponse{Status: market.ConnectionError, Errors: fs}
	}
	return market.StatusResponse{Status: market.ConnectionActive}
}

func (g *Gateway) Unsubscribe(ctx context.Context, instrument string) market.StatusResponse {
	if fs := g.Connection().Unsubscribe(instrument); fs != nil {
		return market.StatusResponse{Status: market.ConnectionError, Errors: fs}
	}
	return market.StatusResponse{Status: market.ConnectionActive}
}

func (g *Gateway) GetOrders(ctx context.Context, c market.Criteria) ([]market.Order, error) {
	return g.Base.GetOrders(ctx, c, g)
}

func (g *Gateway) GetPositions(ctx context.Context, c market.Criteria) ([]market.Position, error) {
	return g.Base.GetPositions(ctx, c, g)
}

// SyncOrders implements the reconciliation hook. The simulated broker's
// authoritative book is the local shard itself.
func (g *Gateway) SyncOrders(ctx context.Context) (map[string]market.Order, error) {
	out := make(map[string]market.Order)
	for _, o := range g.OrderShard().Get(market.Criteria{}) {
		out[o.ID] = o
	}
	return out, nil
}

func (g *Gateway) SyncPositions(ctx context.Context) (map[string]market.Position, error) {
	out := make(map[string]market.Position)
	for _, p := range g.PositionShard().Get(market.Criteria{}) {
		out[p.Order.ID] = p
	}
	return out, nil
}

// SendOrder validates and accepts an order. Market orders against a live
// quote fill immediately; everything else is parked on the order shard until
// a replayed tick crosses its trigger.
func (g *Gateway) SendOrder(ctx context.Context, o market.Order) market.OrderResponse {
	if !g.Connection().Active() {
		return market.OrderResponse{Errors: market.NoConnection()}
	}

	if fs := g.Validate(o); len(fs) > 0 {
		return market.OrderResponse{Errors: fs}
	}

	o = o.Clone()
	if o.ID == "" {
		o.ID = id.New()
	}
	if i, ok := g.Instrument(o.Name()); ok {
		o.Operation.Instrument = i
	}
	o.Operation.Status = market.StatusPending
	if o.Operation.Time.IsZero() {
		o.Operation.Time = g.now(o.Name())
	}

	g.fillMu.Lock()
	defer g.fillMu.Unlock()

	if o.Type == market.TypeMarket {
		if q, ok := g.Quote(o.Name()); ok {
			price := q.Ask
			if o.Side == market.SideShort {
				price = q.Bid
			}
			g.OrderShard().Send(o)
			filled := g.applyFill(o, price, q.Time)
			return market.OrderResponse{Data: &filled, Transaction: filled.ID}
		}
	}

	g.OrderShard().Send(o)
	g.Log().Debug("order accepted",
		zap.String("id", o.ID),
		zap.String("instrument", o.Name()),
		zap.Stringer("side", o.Side),
		zap.Stringer("type", o.Type))

	return market.OrderResponse{Data: &o, Transaction: o.ID}
}

// ClearOrder cancels a working order.
func (g *Gateway) ClearOrder(ctx context.Context, o market.Order) market.OrderResponse {
	if !g.Connection().Active() {
		return market.OrderResponse{Errors: market.NoConnection()}
	}

	g.fillMu.Lock()
	defer g.fillMu.Unlock()

	if !g.OrderShard().Remove(o.ID) {
		return market.OrderResponse{Errors: market.Faults{{Field: "ID", Code: market.CodeUnknownOrder}}}
	}

	o = o.Clone()
	o.Operation.Status = market.StatusCanceled
	g.TransactionShard().Send(o)

	return market.OrderResponse{Data: &o, Transaction: o.ID}
}

func (g *Gateway) replay(ctx context.Context, ds Dataset, done chan struct{}) {
	defer close(done)

	for {
		rec, err := ds.Next(ctx)
		if errors.Is(err, ErrExhausted) {
			g.Log().Info("replay exhausted")
			g.notify(Notification{Done: true})
			return
		}
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			g.Log().Error("replay aborted", zap.Error(err))
			g.notify(Notification{Done: true})
			return
		}

		g.Deliver(rec.Tick())

		if g.speed > 1 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(g.speed-1) * time.Millisecond):
			}
		}
	}
}

// Deliver pushes one tick through the pipeline: quote update, price history,
// book snapshot, pending-order triggers, position marks, equity snapshot.
// Exported so scripted tests can feed ticks without a dataset.
func (g *Gateway) Deliver(t market.Tick) {
	g.SetQuote(t)

	g.PriceShard(t.Instrument).Append(t)
	g.DomShard(t.Instrument).Store(market.Dom{
		Bids: []market.Tick{t},
		Asks: []market.Tick{t},
	})

	// Subscription gates the push stream only; the session's own state is
	// updated regardless, so a subscriber joining mid-replay sees history.
	if g.Connection().Subscribed(t.Instrument) {
		g.notify(Notification{Instrument: t.Instrument, Series: SeriesTicks, Tick: t})
		if bars := g.PriceShard(t.Instrument).PriceGroups(market.Criteria{Count: 1}); len(bars) > 0 {
			g.notify(Notification{Instrument: t.Instrument, Series: SeriesBars, Tick: bars[0]})
		}
	}

	g.fillMu.Lock()
	for _, o := range g.OrderShard().Get(market.Criteria{Instrument: t.Instrument}) {
		if price, ok := crossed(o, t); ok {
			g.applyFill(o, price, t.Time)
		}
	}
	g.fillMu.Unlock()

	g.PositionShard().Mark(t)
	g.snapshotEquity(t.Time)
}

// applyFill executes one order at the given price: the order leaves the
// order shard, lands in the transaction history, nets against opposite
// positions (realizing profit-and-loss) and opens a position with whatever
// amount remains. Bracket legs of the filled order are activated; a filled
// bracket leg cancels its siblings. Caller holds fillMu.
func (g *Gateway) applyFill(o market.Order, price float64, at time.Time) market.Order {
	// An order that already left the shard (a sibling leg canceled in this
	// same tick's trigger scan) must not fill again.
	if !g.OrderShard().Remove(o.ID) {
		return o
	}

	o.Operation.Status = market.StatusFilled
	o.Operation.AvgPrice = price
	o.Operation.Time = at
	g.TransactionShard().Send(o)

	meta, _ := g.Instrument(o.Name())
	pointValue := meta.PointValue()

	remaining := o.Operation.Amount
	realized := 0.0

	for _, p := range g.PositionShard().Get(market.Criteria{Instrument: o.Name()}) {
		if remaining <= 0 || p.Order.Side == o.Side {
			continue
		}

		amount := p.Order.Operation.Amount
		closed := amount
		if remaining < amount {
			closed = remaining
		}

		direction := 1.0
		if p.Order.Side == market.SideShort {
			direction = -1
		}
		realized += direction * (price - p.Order.Operation.AvgPrice) * closed * pointValue
		realized -= meta.Commission * closed

		if closed == amount {
			g.PositionShard().Remove(p.Order.ID)
		} else {
			p.Order.Operation.Amount = amount - closed
			g.PositionShard().Send(p)
		}
		remaining -= closed
	}

	if remaining > 0 {
		opened := o.Clone()
		opened.Orders = nil
		opened.Operation.Amount = remaining
		g.PositionShard().Send(market.Position{Order: opened})
	}

	if realized != 0 {
		g.ApplyFill(realized)
	}

	if err := g.journal.RecordFill(journal.FillRecord{
		OrderID:    o.ID,
		Account:    g.Account().Descriptor,
		Instrument: o.Name(),
		Side:       o.Side.String(),
		Type:       o.Type.String(),
		Amount:     o.Operation.Amount,
		Price:      price,
		RealizedPL: realized,
		Time:       at,
	}); err != nil {
		g.Log().Warn("journal fill", zap.Error(err))
	}

	// Activate bracket legs now that the parent is in the market.
	for _, child := range o.Orders {
		leg := child.Clone()
		if leg.ID == "" {
			leg.ID = id.New()
		}
		leg.Group = o.ID
		leg.Orders = nil
		if i, ok := g.Instrument(leg.Name()); ok {
			leg.Operation.Instrument = i
		}
		leg.Operation.Status = market.StatusPending
		leg.Operation.Time = at
		g.OrderShard().Send(leg)
	}

	// One bracket leg filling cancels the others in its group.
	if o.Instruction == market.InstructionBrace && o.Group != "" {
		for _, sibling := range g.OrderShard().Get(market.Criteria{}) {
			if sibling.Group != o.Group || sibling.ID == o.ID {
				continue
			}
			g.OrderShard().Remove(sibling.ID)
			sibling.Operation.Status = market.StatusCanceled
			g.TransactionShard().Send(sibling)
		}
	}

	return o
}

func (g *Gateway) snapshotEquity(at time.Time) {
	acct := g.Account()

	unrealized := 0.0
	for _, p := range g.PositionShard().Get(market.Criteria{}) {
		unrealized += p.GainLoss
	}

	if err := g.journal.RecordEquity(journal.EquitySnapshot{
		Time:        at,
		Account:     acct.Descriptor,
		Balance:     acct.Balance,
		Performance: acct.Performance,
		Equity:      acct.Balance + acct.Performance + unrealized,
	}); err != nil {
		g.Log().Warn("journal equity", zap.Error(err))
	}
}

func (g *Gateway) notify(n Notification) {
	select {
	case g.notes <- n:
	default:
		// Dashboards tolerate a missed frame; replay never blocks on them.
	}
}

func (g *Gateway) now(instrument string) time.Time {
	if q, ok := g.Quote(instrument); ok && !q.Time.IsZero() {
		return q.Time
	}
	return time.Now()
}

func openSource(path string) (Dataset, error) {
	if path == "" {
		return nil, fmt.Errorf("no dataset source configured")
	}
	if strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite") {
		return OpenSQLite(path)
	}
	return OpenCSV(path)
}
