package indicators

import (
	"context"
	"sync"

	"github.com/Indemos/Terminal-sub004/gateway"
	"github.com/Indemos/Terminal-sub004/market"
)

// AggregatePerformance sums account value across every connected gateway:
// balance plus cumulative realized performance plus unrealized
// profit-and-loss of the open positions. It reads through the gateway
// contract only. Sessions register and drop out while dashboards poll, so
// the registry is guarded.
type AggregatePerformance struct {
	mu       sync.RWMutex
	gateways map[string]gateway.Gateway
}

func NewAggregatePerformance() *AggregatePerformance {
	return &AggregatePerformance{gateways: make(map[string]gateway.Gateway)}
}

func (a *AggregatePerformance) Name() string {
	return "AggregatePerformance"
}

func (a *AggregatePerformance) Register(name string, g gateway.Gateway) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gateways[name] = g
}

func (a *AggregatePerformance) Unregister(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.gateways, name)
}

// Value computes the aggregate across all registered gateways.
func (a *AggregatePerformance) Value(ctx context.Context) (float64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	total := 0.0

	for _, g := range a.gateways {
		acct, err := g.GetAccount(ctx)
		if err != nil {
			return 0, err
		}
		total += acct.Balance + acct.Performance

		positions, err := g.GetPositions(ctx, market.Criteria{})
		if err != nil {
			return 0, err
		}
		for _, p := range positions {
			total += p.GainLoss
		}
	}

	return total, nil
}
