// Package grain holds the per-entity state shards of the terminal. Each
// shard is a single-writer store addressed by a deterministic descriptor
// key: any two call sites constructing the same logical key reach the same
// store instance.
package grain

// Kind names one class of shard state.
type Kind string

const (
	KindOrders       Kind = "orders"
	KindPositions    Kind = "positions"
	KindTransactions Kind = "transactions"
	KindPrices       Kind = "prices"
	KindOptions      Kind = "options"
	KindDom          Kind = "dom"
	KindConnection   Kind = "connection"
)

// Descriptor is the compound key identifying exactly one shard: the account,
// the kind of state, and an optional sub-key (instrument name, order id).
type Descriptor struct {
	Account string
	Kind    Kind
	Name    string
}

// Key serializes the descriptor into its canonical string form. Field order
// is fixed and there is no random component, so the same logical key always
// resolves to the same shard.
func (d Descriptor) Key() string {
	return d.Account + ":" + string(d.Kind) + ":" + d.Name
}
