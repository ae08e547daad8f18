package market

import "time"

// OptionRight is the side of a derivative contract.
type OptionRight int

const (
	RightNone OptionRight = iota
	RightCall
	RightPut
)

func (r OptionRight) String() string {
	switch r {
	case RightCall:
		return "call"
	case RightPut:
		return "put"
	}
	return "none"
}

// Derivative carries the extra identity of an option or dated future.
type Derivative struct {
	Strike     float64
	Right      OptionRight
	Expiration time.Time
	Underlying string
}

// Instrument describes one tradable contract. Identity (Name) is immutable
// for the instrument's lifetime; Price is replaced by every incoming tick.
type Instrument struct {
	Name       string
	Exchange   string
	Class      AssetClass
	StepSize   float64 // minimum price increment
	StepValue  float64 // currency value of one step
	Leverage   float64
	Commission float64
	Price      Tick
	Derivative *Derivative
}

// PointValue converts a price-point move into account currency for one unit.
// Instruments without step metadata trade one-to-one.
func (i Instrument) PointValue() float64 {
	if i.StepSize > 0 && i.StepValue > 0 {
		return i.StepValue / i.StepSize
	}
	return 1
}
