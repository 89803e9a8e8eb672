// Package piece holds the dynamic pie entities living in the arena
package piece

import (
	"slices"

	"github.com/lixenwraith/pie-merge/core"
)

// Piece mirrors one dynamic physics body; the physics world owns position truth
type Piece struct {
	ID   core.Handle
	Tier int
	Pos  core.Vec2

	// IsNew holds from creation until the first contact with another piece
	IsNew bool
	// IsMerging holds from merge selection until destruction
	IsMerging bool
	// Popping holds while the terminal removal animation plays
	Popping bool

	Scale float64
	Angle float64
}

// Collection is the arena's active-piece set keyed by physics handle
// Iteration follows insertion order
type Collection struct {
	byID  map[core.Handle]*Piece
	order []core.Handle
}

func NewCollection() *Collection {
	return &Collection{byID: make(map[core.Handle]*Piece)}
}

// Add inserts p, an existing id is replaced in place
func (c *Collection) Add(p *Piece) {
	if _, exists := c.byID[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.byID[p.ID] = p
}

// Remove deletes the piece and returns it, false if absent
func (c *Collection) Remove(id core.Handle) (*Piece, bool) {
	p, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	delete(c.byID, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return p, true
}

func (c *Collection) Get(id core.Handle) (*Piece, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Collection) Has(id core.Handle) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Collection) Len() int {
	return len(c.order)
}

// Each visits pieces in insertion order, fn must not mutate the collection
func (c *Collection) Each(fn func(p *Piece)) {
	for _, id := range c.order {
		fn(c.byID[id])
	}
}

// IDs returns a snapshot of handles in insertion order
func (c *Collection) IDs() []core.Handle {
	return slices.Clone(c.order)
}

// Clear drops every piece
func (c *Collection) Clear() {
	clear(c.byID)
	c.order = c.order[:0]
}

// CountTier returns how many live pieces have the given tier
func (c *Collection) CountTier(tier int) int {
	n := 0
	for _, p := range c.byID {
		if p.Tier == tier {
			n++
		}
	}
	return n
}
