package resource

// Key is a normalized resource name. Two raw names refer to the same
// resource iff their Keys are equal.
type Key string

// Quantity is one line of a request: how much of which resource. Amounts
// are unsigned; a line that cannot produce a non-negative amount is a parse
// failure, never a zero.
type Quantity struct {
	Amount uint64
	Name   string
}
