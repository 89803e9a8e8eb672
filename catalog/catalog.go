// Package catalog defines the ordered, immutable set of piece tiers
package catalog

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/pie-merge/core"
)

var (
	ErrEmpty         = errors.New("catalog has no tiers")
	ErrNotIncreasing = errors.New("tier radius must be strictly increasing")
)

// PieceTier is one size/identity level, Index is its position in the catalog
type PieceTier struct {
	Index    int
	Name     string
	Radius   float64
	AssetKey string
}

// Catalog is a read-only ordered sequence of tiers
type Catalog struct {
	tiers []PieceTier
}

// New validates and freezes tier definitions, Index fields are assigned from position
func New(defs []PieceTier) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, ErrEmpty
	}
	tiers := make([]PieceTier, len(defs))
	for i, d := range defs {
		if d.Radius <= 0 {
			return nil, errors.Errorf("tier %d (%s): radius must be positive, got %v", i, d.Name, d.Radius)
		}
		if i > 0 && d.Radius <= defs[i-1].Radius {
			return nil, errors.Wrapf(ErrNotIncreasing, "tier %d (%s) radius %v after %v", i, d.Name, d.Radius, defs[i-1].Radius)
		}
		d.Index = i
		tiers[i] = d
	}
	return &Catalog{tiers: tiers}, nil
}

// MustNew is New for static tables known to be valid
func MustNew(defs []PieceTier) *Catalog {
	c, err := New(defs)
	if err != nil {
		panic(err)
	}
	return c
}

// TierCount returns the number of tiers
func (c *Catalog) TierCount() int {
	return len(c.tiers)
}

// Last returns the index of the largest tier
func (c *Catalog) Last() int {
	return len(c.tiers) - 1
}

// TierAt returns the tier at index, out of range is a programming error
func (c *Catalog) TierAt(index int) PieceTier {
	if !core.Assert(index >= 0 && index < len(c.tiers), "tier index %d out of range [0,%d)", index, len(c.tiers)) {
		return PieceTier{Index: -1}
	}
	return c.tiers[index]
}

// Lookup is the checked form of TierAt
func (c *Catalog) Lookup(index int) (PieceTier, bool) {
	if index < 0 || index >= len(c.tiers) {
		return PieceTier{}, false
	}
	return c.tiers[index], true
}

// Next returns the tier a merge of index produces, false at the last tier
func (c *Catalog) Next(index int) (PieceTier, bool) {
	if index < 0 || index >= len(c.tiers)-1 {
		return PieceTier{}, false
	}
	return c.tiers[index+1], true
}

// IsLast reports whether index is the largest tier
func (c *Catalog) IsLast(index int) bool {
	return index == len(c.tiers)-1
}
