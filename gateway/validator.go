package gateway

import (
	"github.com/Indemos/Terminal-sub004/market"
)

// MaxBracketDepth bounds recursive bracket validation so a malformed order
// tree cannot drive the validator into unbounded nesting.
const MaxBracketDepth = 5

// QuoteFunc supplies the current top-of-book for an instrument name. The
// validator compares order prices against it; it never reaches into a store
// directly.
type QuoteFunc func(instrument string) (market.Tick, bool)

// priceRule declares the price-shape requirements for one side/type
// combination: whether the limit price and activation price are required or
// must stay empty, and how each compares against the current quote.
type priceRule struct {
	price      presence
	activation presence
	check      func(o market.Order, q market.Tick) market.Faults
}

type presence int

const (
	optional presence = iota
	required
	forbidden
)

type sideType struct {
	side market.OrderSide
	kind market.OrderType
}

var priceRules = map[sideType]priceRule{
	{market.SideLong, market.TypeMarket}:  {price: forbidden, activation: forbidden},
	{market.SideShort, market.TypeMarket}: {price: forbidden, activation: forbidden},

	{market.SideLong, market.TypeStop}: {price: required, activation: forbidden,
		check: func(o market.Order, q market.Tick) market.Faults {
			if o.Price < q.Ask {
				return market.Faults{{Field: "Price", Code: market.CodeUnderAsk}}
			}
			return nil
		}},
	{market.SideShort, market.TypeStop}: {price: required, activation: forbidden,
		check: func(o market.Order, q market.Tick) market.Faults {
			if o.Price > q.Bid {
				return market.Faults{{Field: "Price", Code: market.CodeOverBid}}
			}
			return nil
		}},

	{market.SideLong, market.TypeLimit}: {price: required, activation: forbidden,
		check: func(o market.Order, q market.Tick) market.Faults {
			if o.Price > q.Ask {
				return market.Faults{{Field: "Price", Code: market.CodeOverAsk}}
			}
			return nil
		}},
	{market.SideShort, market.TypeLimit}: {price: required, activation: forbidden,
		check: func(o market.Order, q market.Tick) market.Faults {
			if o.Price < q.Bid {
				return market.Faults{{Field: "Price", Code: market.CodeUnderBid}}
			}
			return nil
		}},

	{market.SideLong, market.TypeStopLimit}: {price: required, activation: required,
		check: func(o market.Order, q market.Tick) market.Faults {
			var fs market.Faults
			if o.ActivationPrice < q.Ask {
				fs = append(fs, market.Fault{Field: "ActivationPrice", Code: market.CodeUnderAsk})
			}
			if o.Price < o.ActivationPrice {
				fs = append(fs, market.Fault{Field: "Price", Code: market.CodeUnderActivation})
			}
			return fs
		}},
	{market.SideShort, market.TypeStopLimit}: {price: required, activation: required,
		check: func(o market.Order, q market.Tick) market.Faults {
			var fs market.Faults
			if o.ActivationPrice > q.Bid {
				fs = append(fs, market.Fault{Field: "ActivationPrice", Code: market.CodeOverBid})
			}
			if o.Price > o.ActivationPrice {
				fs = append(fs, market.Fault{Field: "Price", Code: market.CodeOverActivation})
			}
			return fs
		}},
}

// ValidateOrder evaluates the rule table against an order and its bracket
// legs. It returns the full fault list and never panics; an empty list means
// the order may be dispatched.
func ValidateOrder(o market.Order, quote QuoteFunc) market.Faults {
	return validateOrder(o, quote, 0)
}

func validateOrder(o market.Order, quote QuoteFunc, depth int) market.Faults {
	if depth > MaxBracketDepth {
		return market.Faults{{Field: "Orders", Code: market.CodeDepthExceeded}}
	}

	var fs market.Faults

	// A brace leg is a dependent order and may not carry legs of its own.
	if o.Instruction == market.InstructionBrace && len(o.Orders) > 0 {
		fs = append(fs, market.Fault{Field: "Orders", Code: market.CodeBraceChildren})
	}

	if o.Instruction != market.InstructionBrace {
		fs = append(fs, validateShape(o)...)
	}

	fs = append(fs, validatePrices(o, quote)...)

	for _, child := range o.Orders {
		if child.Instruction == market.InstructionBrace && child.Name() != o.Name() {
			fs = append(fs, market.Fault{Field: "Orders", Code: market.CodeInstrumentMismatch})
		}
		fs = append(fs, validateOrder(child, quote, depth+1)...)
	}

	return fs
}

// validateShape covers the plain-order field requirements.
func validateShape(o market.Order) market.Faults {
	var fs market.Faults
	if o.Type == market.TypeNone {
		fs = append(fs, market.Fault{Field: "Type", Code: market.CodeRequired})
	}
	if o.Side == market.SideNone {
		fs = append(fs, market.Fault{Field: "Side", Code: market.CodeRequired})
	}
	if o.Operation.Amount <= 0 {
		fs = append(fs, market.Fault{Field: "Amount", Code: market.CodePositive})
	}
	if o.Name() == "" {
		fs = append(fs, market.Fault{Field: "Instrument", Code: market.CodeRequired})
	}
	return fs
}

func validatePrices(o market.Order, quote QuoteFunc) market.Faults {
	rule, ok := priceRules[sideType{o.Side, o.Type}]
	if !ok {
		return nil
	}

	var fs market.Faults

	switch rule.price {
	case required:
		if o.Price == 0 {
			fs = append(fs, market.Fault{Field: "Price", Code: market.CodeRequired})
		}
	case forbidden:
		if o.Price != 0 {
			fs = append(fs, market.Fault{Field: "Price", Code: market.CodeMustBeEmpty})
		}
	}

	switch rule.activation {
	case required:
		if o.ActivationPrice == 0 {
			fs = append(fs, market.Fault{Field: "ActivationPrice", Code: market.CodeRequired})
		}
	case forbidden:
		if o.ActivationPrice != 0 {
			fs = append(fs, market.Fault{Field: "ActivationPrice", Code: market.CodeMustBeEmpty})
		}
	}

	if len(fs) > 0 || rule.check == nil {
		return fs
	}

	q, ok := quote(o.Name())
	if !ok || !q.HasQuote() {
		return market.Faults{{Field: "Instrument", Code: market.CodeNoQuote}}
	}

	return rule.check(o, q)
}
