package sim

import (
	"github.com/Indemos/Terminal-sub004/market"
)

// crossed reports whether a replayed tick satisfies a pending order's
// trigger condition and, if so, the price it fills at. The conditions mirror
// the validation table: a long stop arms when the ask rises to the stop, a
// short limit when the bid rises to the limit, and so on.
func crossed(o market.Order, t market.Tick) (float64, bool) {
	switch {
	case o.Type == market.TypeMarket:
		// Parked market order: fills at the first top-of-book seen.
		if o.Side == market.SideShort {
			return t.Bid, t.Bid != 0
		}
		return t.Ask, t.Ask != 0

	case o.Side == market.SideLong && o.Type == market.TypeStop:
		return o.Price, t.Ask >= o.Price && t.Ask != 0

	case o.Side == market.SideShort && o.Type == market.TypeStop:
		return o.Price, t.Bid <= o.Price && t.Bid != 0

	case o.Side == market.SideLong && o.Type == market.TypeLimit:
		return o.Price, t.Ask <= o.Price && t.Ask != 0

	case o.Side == market.SideShort && o.Type == market.TypeLimit:
		return o.Price, t.Bid >= o.Price && t.Bid != 0

	case o.Side == market.SideLong && o.Type == market.TypeStopLimit:
		return o.ActivationPrice, t.Ask >= o.ActivationPrice && t.Ask <= o.Price && t.Ask != 0

	case o.Side == market.SideShort && o.Type == market.TypeStopLimit:
		return o.ActivationPrice, t.Bid <= o.ActivationPrice && t.Bid >= o.Price && t.Bid != 0
	}

	return 0, false
}
