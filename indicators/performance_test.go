package indicators_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Indemos/Terminal-sub004/indicators"
	"github.com/Indemos/Terminal-sub004/market"
	"github.com/Indemos/Terminal-sub004/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, descriptor string, balance float64) *sim.Gateway {
	t.Helper()

	g := sim.New(sim.Settings{
		Account: market.Account{
			Descriptor: descriptor,
			Currency:   "USD",
			Balance:    balance,
			Instruments: map[string]market.Instrument{
				"ESU25": {Name: "ESU25", Class: market.ClassFutures, StepSize: 0.25, StepValue: 0.25},
			},
		},
		Dataset: sim.NewMemory(nil),
	})

	require.True(t, g.Connect(context.Background()).Ok())
	<-g.Done()
	t.Cleanup(func() { g.Disconnect(context.Background()) })
	return g
}

func TestAggregatePerformanceAcrossGateways(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	active := newSession(t, "SIM-A", 100000)
	idle := newSession(t, "SIM-B", 50000)

	active.Deliver(market.Tick{Instrument: "ESU25", Bid: 100, Ask: 100, Time: t0})
	resp := active.SendOrder(ctx, market.Order{
		Side: market.SideLong,
		Type: market.TypeMarket,
		Operation: market.Operation{
			Instrument: market.Instrument{Name: "ESU25"},
			Amount:     1,
		},
	})
	require.True(t, resp.Ok(), "send: %v", resp.Errors)

	// Mark the open position ten points higher.
	active.Deliver(market.Tick{Instrument: "ESU25", Bid: 110, Ask: 110, Time: t0.Add(time.Minute)})

	agg := indicators.NewAggregatePerformance()
	agg.Register("active", active)
	agg.Register("idle", idle)

	total, err := agg.Value(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 150010.0, total, 1e-9, "balances plus unrealized gain")

	agg.Unregister("idle")
	total, err = agg.Value(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 100010.0, total, 1e-9)
}

func TestAggregatePerformanceConcurrentRegistry(t *testing.T) {
	ctx := context.Background()
	g := newSession(t, "SIM-C", 25000)

	agg := indicators.NewAggregatePerformance()
	agg.Register("base", g)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			agg.Register("churn", g)
			agg.Unregister("churn")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			total, err := agg.Value(ctx)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, total, 25000.0, "the stable session is always counted")
		}
	}()

	wg.Wait()
}
