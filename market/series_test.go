package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickAt(t time.Time, last float64) Tick {
	return Tick{
		Instrument: "ESU25",
		Bid:        last - 0.25,
		Ask:        last + 0.25,
		Last:       last,
		Time:       t,
	}
}

func TestSeriesTwoBuckets(t *testing.T) {
	s := NewSeries(time.Minute)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	s.Append(tickAt(base.Add(10*time.Second), 100))
	s.Append(tickAt(base.Add(40*time.Second), 105))
	s.Append(tickAt(base.Add(65*time.Second), 102))

	bars := s.Bars(Criteria{})
	require.Len(t, bars, 2)

	assert.Equal(t, Bar{Open: 100, High: 105, Low: 100, Close: 105}, bars[0].Bar)
	assert.Equal(t, Bar{Open: 105, High: 105, Low: 102, Close: 102}, bars[1].Bar)

	assert.Equal(t, base, bars[0].Time)
	assert.Equal(t, base.Add(time.Minute), bars[1].Time)
	assert.Same(t, time.UTC, bars[0].Time.Location(), "bar time keeps the tick's location")
}

func TestSeriesOpenChains(t *testing.T) {
	s := NewSeries(time.Minute)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	lasts := []float64{100, 103, 99, 101, 104, 98}
	for i, last := range lasts {
		s.Append(tickAt(base.Add(time.Duration(i)*45*time.Second), last))
	}

	bars := s.Bars(Criteria{})
	require.Greater(t, len(bars), 1)

	for i := 1; i < len(bars); i++ {
		assert.Equal(t, bars[i-1].Bar.Close, bars[i].Bar.Open,
			"open of bucket %d must equal close of bucket %d", i, i-1)
	}
	for _, b := range bars {
		assert.GreaterOrEqual(t, b.Bar.High, b.Bar.Low)
		assert.LessOrEqual(t, b.Bar.Low, b.Bar.Close)
		assert.GreaterOrEqual(t, b.Bar.High, b.Bar.Close)
	}
}

func TestSeriesDropsQuotelessTicks(t *testing.T) {
	s := NewSeries(time.Minute)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	s.Append(Tick{Instrument: "ESU25", Time: base, Last: 100})

	assert.Empty(t, s.Bars(Criteria{}))
	assert.Empty(t, s.Ticks(Criteria{}))
}

func TestSeriesMergeAccumulatesSizes(t *testing.T) {
	s := NewSeries(time.Minute)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	a := tickAt(base.Add(5*time.Second), 100)
	a.BidSize, a.AskSize, a.Volume = 3, 4, 10
	b := tickAt(base.Add(25*time.Second), 101)
	b.BidSize, b.AskSize, b.Volume = 2, 1, 5

	s.Append(a)
	s.Append(b)

	bars := s.Bars(Criteria{})
	require.Len(t, bars, 1)
	assert.Equal(t, 5.0, bars[0].BidSize)
	assert.Equal(t, 5.0, bars[0].AskSize)
	assert.Equal(t, 15.0, bars[0].Volume)
}

func TestSeriesCriteriaBounds(t *testing.T) {
	s := NewSeries(time.Minute)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		s.Append(tickAt(base.Add(time.Duration(i)*time.Second), 100+float64(i)))
	}

	assert.Len(t, s.Ticks(Criteria{Count: 3}), 3)

	min := base.Add(4 * time.Second)
	got := s.Ticks(Criteria{MinTime: &min})
	assert.Len(t, got, 6)

	lo, hi := 102.0, 104.0
	got = s.Ticks(Criteria{MinPrice: &lo, MaxPrice: &hi})
	assert.Len(t, got, 3)
}
