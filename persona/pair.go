package persona

// Pair is an unordered combination of two personas: the ingredients of one
// fusion. Slots are positional for display, but equality ignores them.
type Pair struct {
	First  Entity
	Second Entity
}

// NewPair copies a and b into a Pair.
func NewPair(a, b *Entity) Pair {
	return Pair{First: a.Clone(), Second: b.Clone()}
}

// Equal reports whether p and o hold the same two names, in either slot order.
func (p Pair) Equal(o Pair) bool {
	return p.Key() == o.Key()
}

// Key returns an order-independent identity for the pair, usable as a map key.
func (p Pair) Key() [2]string {
	a, b := p.First.Name, p.Second.Name
	if b < a {
		a, b = b, a
	}

	return [2]string{a, b}
}

// Contains reports whether name occupies either slot.
func (p Pair) Contains(name string) bool {
	return p.First.Name == name || p.Second.Name == name
}

// String renders "First x Second" with level and arcana for each member.
func (p Pair) String() string {
	return p.First.Label() + " x " + p.Second.Label()
}
