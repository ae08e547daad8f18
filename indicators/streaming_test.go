package indicators

import (
	"math"
	"testing"

	"github.com/Indemos/Terminal-sub004/market"
	"github.com/stretchr/testify/assert"
)

func TestRunningStatsMatchesDirectComputation(t *testing.T) {
	xs := []float64{4101.25, 4100.50, 4105.75, 4099.00, 4102.25, 4108.50, 4097.75}

	s := NewRunningStats()
	for _, x := range xs {
		s.Update(x)
	}

	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, x := range xs {
		variance += (x - mean) * (x - mean)
	}
	variance /= float64(len(xs) - 1)

	assert.Equal(t, len(xs), s.Count())
	assert.InDelta(t, mean, s.Mean(), 1e-9)
	assert.InDelta(t, variance, s.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(variance), s.StdDev(), 1e-9)
}

func TestRunningStatsSmallSamples(t *testing.T) {
	s := NewRunningStats()
	assert.Equal(t, 0.0, s.Variance())

	s.Update(10)
	assert.Equal(t, 10.0, s.Mean())
	assert.Equal(t, 0.0, s.Variance(), "one sample has no variance")

	s.Update(14)
	assert.InDelta(t, 12.0, s.Mean(), 1e-9)
	assert.InDelta(t, 8.0, s.Variance(), 1e-9)
}

func TestMinMaxScaler(t *testing.T) {
	m := NewMinMaxScaler(0, 1)

	// Degenerate range answers with the midpoint.
	assert.InDelta(t, 0.5, m.Update(100), 1e-9)
	assert.InDelta(t, 0.5, m.Update(100), 1e-9)

	assert.InDelta(t, 1.0, m.Update(110), 1e-9)
	assert.InDelta(t, 0.0, m.Update(90), 1e-9)
	assert.InDelta(t, 0.5, m.Update(100), 1e-9)

	scaled := NewMinMaxScaler(-1, 1)
	scaled.Update(0)
	scaled.Update(10)
	assert.InDelta(t, 0.0, scaled.Update(5), 1e-9)
}

func TestMovingAveragesOverBars(t *testing.T) {
	bars := make([]market.Tick, 5)
	for i, c := range []float64{102, 105, 106, 108, 110} {
		bars[i] = market.Tick{Bar: market.Bar{Close: c}}
	}

	ma := NewMA(3)
	assert.Equal(t, "MA(3)", ma.Name())
	for _, b := range bars[:2] {
		ma.Update(b)
	}
	assert.False(t, ma.Ready())

	ma.Update(bars[2])
	assert.True(t, ma.Ready())
	assert.InDelta(t, (102.0+105+106)/3, ma.Value(), 1e-9)

	ma.Update(bars[3])
	assert.InDelta(t, (105.0+106+108)/3, ma.Value(), 1e-9)

	ema := NewEMA(3)
	for _, b := range bars[:3] {
		ema.Update(b)
	}
	assert.True(t, ema.Ready())
	assert.InDelta(t, (102.0+105+106)/3, ema.Value(), 1e-9)

	ema.Update(bars[3])
	expected := (108.0-(102.0+105+106)/3)*0.5 + (102.0+105+106)/3
	assert.InDelta(t, expected, ema.Value(), 1e-9)
}
