package gateway

import (
	"testing"

	"github.com/Indemos/Terminal-sub004/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteES(name string) (market.Tick, bool) {
	if name != "ESU25" {
		return market.Tick{}, false
	}
	return market.Tick{Instrument: "ESU25", Bid: 99.75, Ask: 100.25, Last: 100}, true
}

func plainOrder(side market.OrderSide, kind market.OrderType) market.Order {
	return market.Order{
		ID:   "o-1",
		Side: side,
		Type: kind,
		Operation: market.Operation{
			Instrument: market.Instrument{Name: "ESU25"},
			Amount:     1,
		},
	}
}

func hasFault(fs market.Faults, field, code string) bool {
	for _, f := range fs {
		if f.Field == field && f.Code == code {
			return true
		}
	}
	return false
}

func TestMarketOrderRejectsPrices(t *testing.T) {
	o := plainOrder(market.SideLong, market.TypeMarket)
	assert.Empty(t, ValidateOrder(o, quoteES))

	o.Price = 100
	fs := ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Price", market.CodeMustBeEmpty))

	o.Price = 0
	o.ActivationPrice = 100
	fs = ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "ActivationPrice", market.CodeMustBeEmpty))
}

func TestShapeRules(t *testing.T) {
	var o market.Order
	fs := ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Type", market.CodeRequired))
	assert.True(t, hasFault(fs, "Side", market.CodeRequired))
	assert.True(t, hasFault(fs, "Amount", market.CodePositive))
	assert.True(t, hasFault(fs, "Instrument", market.CodeRequired))
}

func TestStopRules(t *testing.T) {
	// Long stop must sit at or above the ask.
	o := plainOrder(market.SideLong, market.TypeStop)
	o.Price = 100.25 - 5
	fs := ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Price", market.CodeUnderAsk))

	o.Price = 101
	assert.Empty(t, ValidateOrder(o, quoteES))

	// Activation price has no business on a plain stop.
	o.ActivationPrice = 101
	fs = ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "ActivationPrice", market.CodeMustBeEmpty))

	// Short stop must sit at or below the bid.
	o = plainOrder(market.SideShort, market.TypeStop)
	o.Price = 100.5
	fs = ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Price", market.CodeOverBid))

	o.Price = 99
	assert.Empty(t, ValidateOrder(o, quoteES))
}

func TestLimitRules(t *testing.T) {
	o := plainOrder(market.SideLong, market.TypeLimit)
	o.Price = 101
	fs := ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Price", market.CodeOverAsk))

	o.Price = 99.5
	assert.Empty(t, ValidateOrder(o, quoteES))

	o = plainOrder(market.SideShort, market.TypeLimit)
	o.Price = 99
	fs = ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Price", market.CodeUnderBid))

	o.Price = 100.5
	assert.Empty(t, ValidateOrder(o, quoteES))
}

func TestStopLimitRules(t *testing.T) {
	o := plainOrder(market.SideLong, market.TypeStopLimit)
	fs := ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Price", market.CodeRequired))
	assert.True(t, hasFault(fs, "ActivationPrice", market.CodeRequired))

	// Price >= ActivationPrice >= ask must hold.
	o.ActivationPrice = 100.5
	o.Price = 100.4
	fs = ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Price", market.CodeUnderActivation))

	o.Price = 101
	assert.Empty(t, ValidateOrder(o, quoteES))

	o.ActivationPrice = 100 // below ask
	fs = ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "ActivationPrice", market.CodeUnderAsk))

	o = plainOrder(market.SideShort, market.TypeStopLimit)
	o.ActivationPrice = 99.5
	o.Price = 99
	assert.Empty(t, ValidateOrder(o, quoteES))

	o.Price = 99.6
	fs = ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Price", market.CodeOverActivation))
}

func TestBraceCannotHaveChildren(t *testing.T) {
	o := plainOrder(market.SideLong, market.TypeStop)
	o.Price = 101
	o.Instruction = market.InstructionBrace
	o.Orders = []market.Order{plainOrder(market.SideShort, market.TypeMarket)}

	fs := ValidateOrder(o, quoteES)
	require.True(t, hasFault(fs, "Orders", market.CodeBraceChildren))
}

func TestBraceChildrenMustMatchParentInstrument(t *testing.T) {
	parent := plainOrder(market.SideLong, market.TypeMarket)

	stop := plainOrder(market.SideShort, market.TypeStop)
	stop.Instruction = market.InstructionBrace
	stop.Price = 99
	take := plainOrder(market.SideShort, market.TypeLimit)
	take.Instruction = market.InstructionBrace
	take.Price = 102
	take.Operation.Instrument.Name = "NQU25"

	parent.Orders = []market.Order{stop, take}

	fs := ValidateOrder(parent, quoteES)
	assert.True(t, hasFault(fs, "Orders", market.CodeInstrumentMismatch))
}

func TestBracketHappyPath(t *testing.T) {
	parent := plainOrder(market.SideLong, market.TypeMarket)

	stop := plainOrder(market.SideShort, market.TypeStop)
	stop.Instruction = market.InstructionBrace
	stop.Price = 99

	take := plainOrder(market.SideShort, market.TypeLimit)
	take.Instruction = market.InstructionBrace
	take.Price = 102

	parent.Orders = []market.Order{stop, take}
	assert.Empty(t, ValidateOrder(parent, quoteES))
}

func TestNestingDepthIsBounded(t *testing.T) {
	leaf := plainOrder(market.SideLong, market.TypeMarket)
	o := leaf
	for i := 0; i < MaxBracketDepth+2; i++ {
		wrap := plainOrder(market.SideLong, market.TypeMarket)
		wrap.Orders = []market.Order{o}
		o = wrap
	}

	fs := ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Orders", market.CodeDepthExceeded))
}

func TestMissingQuoteFaults(t *testing.T) {
	o := plainOrder(market.SideLong, market.TypeLimit)
	o.Operation.Instrument.Name = "CLF26"
	o.Price = 70

	fs := ValidateOrder(o, quoteES)
	assert.True(t, hasFault(fs, "Instrument", market.CodeNoQuote))
}
