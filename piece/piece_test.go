package piece

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pie-merge/core"
)

func TestCollectionOrderAndRemoval(t *testing.T) {
	c := NewCollection()
	for i := 1; i <= 4; i++ {
		c.Add(&Piece{ID: core.Handle(i), Tier: i % 2})
	}
	require.Equal(t, 4, c.Len())

	p, ok := c.Remove(2)
	require.True(t, ok)
	assert.Equal(t, core.Handle(2), p.ID)
	assert.Equal(t, []core.Handle{1, 3, 4}, c.IDs())

	_, ok = c.Remove(2)
	assert.False(t, ok)
	assert.False(t, c.Has(2))

	var seen []core.Handle
	c.Each(func(p *Piece) { seen = append(seen, p.ID) })
	assert.Equal(t, []core.Handle{1, 3, 4}, seen)

	assert.Equal(t, 2, c.CountTier(1))
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCollectionReAddKeepsPosition(t *testing.T) {
	c := NewCollection()
	c.Add(&Piece{ID: 1})
	c.Add(&Piece{ID: 2})
	c.Add(&Piece{ID: 1, Tier: 3})

	assert.Equal(t, []core.Handle{1, 2}, c.IDs())
	p, _ := c.Get(1)
	assert.Equal(t, 3, p.Tier)
}
