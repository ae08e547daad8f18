// Package market is the shared data model: instruments, ticks, orders,
// positions and the response envelopes every gateway speaks.
package market

// AssetClass is the instrument category.
type AssetClass int

const (
	ClassNone AssetClass = iota
	ClassShares
	ClassOptions
	ClassFutures
	ClassCurrencies
	ClassCoins
	ClassIndices
	ClassBonds
)

func (c AssetClass) String() string {
	switch c {
	case ClassShares:
		return "shares"
	case ClassOptions:
		return "options"
	case ClassFutures:
		return "futures"
	case ClassCurrencies:
		return "currencies"
	case ClassCoins:
		return "coins"
	case ClassIndices:
		return "indices"
	case ClassBonds:
		return "bonds"
	}
	return "none"
}

// ParseAssetClass maps a config string to its class, ClassNone when unknown.
func ParseAssetClass(s string) AssetClass {
	switch s {
	case "shares", "stocks", "equities":
		return ClassShares
	case "options":
		return ClassOptions
	case "futures":
		return ClassFutures
	case "currencies", "forex":
		return ClassCurrencies
	case "coins", "crypto":
		return ClassCoins
	case "indices", "index":
		return ClassIndices
	case "bonds":
		return ClassBonds
	}
	return ClassNone
}

// OrderSide is the direction of an order or position.
type OrderSide int

const (
	SideNone OrderSide = iota
	SideLong
	SideShort
)

func (s OrderSide) String() string {
	switch s {
	case SideLong:
		return "long"
	case SideShort:
		return "short"
	}
	return "none"
}

// Invert flips the direction, e.g. to close a position.
func (s OrderSide) Invert() OrderSide {
	switch s {
	case SideLong:
		return SideShort
	case SideShort:
		return SideLong
	}
	return SideNone
}

// OrderType selects the execution rule.
type OrderType int

const (
	TypeNone OrderType = iota
	TypeMarket
	TypeLimit
	TypeStop
	TypeStopLimit
)

func (t OrderType) String() string {
	switch t {
	case TypeMarket:
		return "market"
	case TypeLimit:
		return "limit"
	case TypeStop:
		return "stop"
	case TypeStopLimit:
		return "stop-limit"
	}
	return "none"
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus int

const (
	StatusNone OrderStatus = iota
	StatusPending
	StatusFilled
	StatusPartitioned
	StatusCanceled
)

func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFilled:
		return "filled"
	case StatusPartitioned:
		return "partitioned"
	case StatusCanceled:
		return "canceled"
	}
	return "none"
}

// Instruction distinguishes a plain directional order from a bracket leg.
// Brace orders attach to a parent and must not carry children of their own.
type Instruction int

const (
	InstructionSide Instruction = iota
	InstructionBrace
)

func (i Instruction) String() string {
	if i == InstructionBrace {
		return "brace"
	}
	return "side"
}

// TimeInForce is how long an order stays working.
type TimeInForce int

const (
	InForceNone TimeInForce = iota
	InForceGTC
	InForceIOC
	InForceFOK
)

func (t TimeInForce) String() string {
	switch t {
	case InForceGTC:
		return "gtc"
	case InForceIOC:
		return "ioc"
	case InForceFOK:
		return "fok"
	}
	return "none"
}

// ConnectionStatus is the session state a gateway reports.
type ConnectionStatus int

const (
	ConnectionInactive ConnectionStatus = iota
	ConnectionActive
	ConnectionError
)

func (s ConnectionStatus) String() string {
	switch s {
	case ConnectionActive:
		return "active"
	case ConnectionError:
		return "error"
	}
	return "inactive"
}
