package market

// Account is one broker account: descriptor, cash balance, cumulative
// realized performance, and the configured instrument universe. Created on
// connect, mutated by fills, never deleted while connected.
type Account struct {
	Descriptor  string
	Currency    string
	Balance     float64
	Performance float64 // cumulative realized gain-loss
	Instruments map[string]Instrument
}

// Clone returns a deep enough copy for handing out of a store: the
// instrument map is copied so callers cannot mutate shared state.
func (a Account) Clone() Account {
	out := a
	out.Instruments = make(map[string]Instrument, len(a.Instruments))
	for k, v := range a.Instruments {
		out.Instruments[k] = v
	}
	return out
}
