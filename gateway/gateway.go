// Package gateway defines the uniform contract every execution venue
// adapter satisfies, plus the shared orchestration that routes calls to
// per-descriptor state shards.
package gateway

import (
	"context"

	"github.com/Indemos/Terminal-sub004/market"
)

// Gateway is the capability set of one broker session. Concrete brokers and
// the simulation variant implement it; strategy code never sees anything
// else. Expected failures (validation, lost connection) come back in the
// response envelopes; error returns are reserved for unexpected conditions.
type Gateway interface {
	// Connect establishes the session and initializes the account's shards.
	// Idempotent: an existing session is disconnected first.
	Connect(ctx context.Context) market.StatusResponse

	// Disconnect tears down subscriptions and session resources. Never
	// faults on an already-disconnected session.
	Disconnect(ctx context.Context) market.StatusResponse

	// Subscribe starts live tick delivery for one instrument.
	Subscribe(ctx context.Context, instrument string) market.StatusResponse

	// Unsubscribe stops live tick delivery for one instrument.
	Unsubscribe(ctx context.Context, instrument string) market.StatusResponse

	// GetAccount returns the account snapshot.
	GetAccount(ctx context.Context) (market.Account, error)

	// GetDom returns the current book snapshot.
	GetDom(ctx context.Context, c market.Criteria) (market.Dom, error)

	// GetPrices returns raw tick history bounded by the criteria.
	GetPrices(ctx context.Context, c market.Criteria) ([]market.Tick, error)

	// GetPriceGroups returns aggregated bar history.
	GetPriceGroups(ctx context.Context, c market.Criteria) ([]market.Tick, error)

	// GetOptions returns the derivative chain, optionally strike-filtered.
	GetOptions(ctx context.Context, c market.Criteria) ([]market.Instrument, error)

	// GetOrders returns working orders. Criteria.Source=true reconciles the
	// local cache from the broker first.
	GetOrders(ctx context.Context, c market.Criteria) ([]market.Order, error)

	// GetPositions returns open positions, with the same Source semantics.
	GetPositions(ctx context.Context, c market.Criteria) ([]market.Position, error)

	// GetTransactions returns the fill history.
	GetTransactions(ctx context.Context, c market.Criteria) ([]market.Order, error)

	// SendOrder validates and dispatches an order. On validation failure the
	// response carries the faults and no side effect takes place.
	SendOrder(ctx context.Context, o market.Order) market.OrderResponse

	// ClearOrder cancels a working order.
	ClearOrder(ctx context.Context, o market.Order) market.OrderResponse
}
