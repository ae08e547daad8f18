package market

import "time"

// Operation is the execution state embedded in an Order: what instrument,
// how much was requested, how much of it filled and at what average price.
type Operation struct {
	Instrument Instrument
	Amount     float64
	AvgPrice   float64
	Status     OrderStatus
	Time       time.Time
}

// Order is a strategy's request to trade. Child Orders are bracket legs
// (stop-loss / take-profit) owned by value: validation and fill simulation
// walk the tree without sharing or mutating the caller's copy.
type Order struct {
	ID              string
	Group           string // bracket group: legs of one parent share it
	Side            OrderSide
	Type            OrderType
	Instruction     Instruction
	TimeInForce     TimeInForce
	Price           float64 // limit price, zero when unset
	ActivationPrice float64 // stop trigger, zero when unset
	Operation       Operation
	Orders          []Order
}

// Name is the instrument this order trades.
func (o Order) Name() string {
	return o.Operation.Instrument.Name
}

// Clone deep-copies the order tree.
func (o Order) Clone() Order {
	out := o
	if len(o.Orders) > 0 {
		out.Orders = make([]Order, len(o.Orders))
		for i, child := range o.Orders {
			out.Orders[i] = child.Clone()
		}
	}
	return out
}
