package market

// Position is the open exposure created by a filled order. Gain-loss is
// tracked both in account currency and in raw price points, with running
// extremes so risk tooling can see drawdown without re-scanning history.
type Position struct {
	Order Order // originating, filled order

	GainLoss          float64 // unrealized, account currency
	GainLossMin       float64
	GainLossMax       float64
	GainLossPoints    float64 // unrealized, price points
	GainLossPointsMin float64
	GainLossPointsMax float64
}

// Update marks the position to the given price and rolls the running
// extremes. Longs mark against the bid, shorts against the ask.
func (p *Position) Update(t Tick) {
	entry := p.Order.Operation.AvgPrice
	mark := t.Bid
	direction := 1.0
	if p.Order.Side == SideShort {
		mark = t.Ask
		direction = -1
	}

	points := direction * (mark - entry)
	value := points * p.Order.Operation.Amount * p.Order.Operation.Instrument.PointValue()

	p.GainLossPoints = points
	p.GainLoss = value

	if points < p.GainLossPointsMin {
		p.GainLossPointsMin = points
	}
	if points > p.GainLossPointsMax {
		p.GainLossPointsMax = points
	}
	if value < p.GainLossMin {
		p.GainLossMin = value
	}
	if value > p.GainLossMax {
		p.GainLossMax = value
	}
}
