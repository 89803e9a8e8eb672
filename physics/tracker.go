package physics

import (
	"cmp"
	"slices"

	"github.com/lixenwraith/pie-merge/core"
)

// pairKey is an order-independent body pair
type pairKey struct {
	lo, hi core.Handle
}

func keyOf(a, b core.Handle) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// contactTracker classifies per-step contacts into start, active and end phases
// A pair reported as started is not also reported as active in the same step
type contactTracker struct {
	active map[pairKey]Pair
	seen   map[pairKey]Pair
}

func newContactTracker() *contactTracker {
	return &contactTracker{
		active: make(map[pairKey]Pair),
		seen:   make(map[pairKey]Pair),
	}
}

// observe records a contact for the current step
func (t *contactTracker) observe(p Pair) {
	k := keyOf(p.A.Handle, p.B.Handle)
	if _, dup := t.seen[k]; dup {
		return
	}
	t.seen[k] = p
}

// flush compares this step against the previous one, order follows the observation order
func (t *contactTracker) flush(order []pairKey) (started, active, ended []Pair) {
	for _, k := range order {
		p, ok := t.seen[k]
		if !ok {
			continue
		}
		if _, was := t.active[k]; was {
			p.HasContact = false
			active = append(active, p)
		} else {
			started = append(started, p)
		}
	}
	for k, p := range t.active {
		if _, still := t.seen[k]; !still {
			p.HasContact = false
			ended = append(ended, p)
		}
	}
	slices.SortFunc(ended, comparePairs)

	t.active, t.seen = t.seen, t.active
	clear(t.seen)
	return started, active, ended
}

// forget drops every pair involving h without reporting an end
func (t *contactTracker) forget(h core.Handle) {
	for k := range t.active {
		if k.lo == h || k.hi == h {
			delete(t.active, k)
		}
	}
	for k := range t.seen {
		if k.lo == h || k.hi == h {
			delete(t.seen, k)
		}
	}
}

func comparePairs(a, b Pair) int {
	ka, kb := keyOf(a.A.Handle, a.B.Handle), keyOf(b.A.Handle, b.B.Handle)
	if c := cmp.Compare(ka.lo, kb.lo); c != 0 {
		return c
	}
	return cmp.Compare(ka.hi, kb.hi)
}
