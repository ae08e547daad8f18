package market

// Dom is a depth-of-market snapshot: price ladders for both sides.
// Bids descend from the best bid, asks ascend from the best ask.
type Dom struct {
	Bids []Tick
	Asks []Tick
}
