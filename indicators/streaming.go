// Package indicators holds streaming statistics consumed by strategies and
// dashboards. Every indicator ingests one value at a time and keeps O(1)
// running state; none of them re-scan history on update.
package indicators

import (
	"fmt"
	"math"
)

// RunningStats tracks mean and variance online via Welford's algorithm.
type RunningStats struct {
	n    int
	mean float64
	m2   float64
}

func NewRunningStats() *RunningStats {
	return &RunningStats{}
}

func (s *RunningStats) Name() string {
	return "RunningStats"
}

func (s *RunningStats) Reset() {
	*s = RunningStats{}
}

func (s *RunningStats) Update(x float64) {
	s.n++
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)
}

func (s *RunningStats) Count() int {
	return s.n
}

func (s *RunningStats) Mean() float64 {
	return s.mean
}

// Variance is the sample variance (n-1 denominator); zero until two samples
// have been seen.
func (s *RunningStats) Variance() float64 {
	if s.n < 2 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *RunningStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// MinMaxScaler maps the latest value into [Lo, Hi] against the running
// min/max seen so far.
type MinMaxScaler struct {
	Lo, Hi float64

	seen bool
	min  float64
	max  float64
	last float64
}

func NewMinMaxScaler(lo, hi float64) *MinMaxScaler {
	return &MinMaxScaler{Lo: lo, Hi: hi}
}

func (m *MinMaxScaler) Name() string {
	return fmt.Sprintf("MinMax[%g,%g]", m.Lo, m.Hi)
}

func (m *MinMaxScaler) Reset() {
	m.seen = false
	m.min, m.max, m.last = 0, 0, 0
}

// Update folds in one observation and returns its scaled value.
func (m *MinMaxScaler) Update(x float64) float64 {
	if !m.seen {
		m.seen = true
		m.min, m.max = x, x
	}
	if x < m.min {
		m.min = x
	}
	if x > m.max {
		m.max = x
	}
	m.last = x
	return m.Value()
}

// Value scales the latest observation. A degenerate range (min == max)
// answers with the midpoint of the configured interval.
func (m *MinMaxScaler) Value() float64 {
	if !m.seen || m.min == m.max {
		return (m.Lo + m.Hi) / 2
	}
	return m.Lo + (m.last-m.min)/(m.max-m.min)*(m.Hi-m.Lo)
}
