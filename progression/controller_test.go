package progression

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(drops, limit int) *Controller {
	return New(Config{DropsToUnlock: drops, Cap: limit}, zerolog.Nop())
}

func TestInitialState(t *testing.T) {
	c := newController(10, 7)
	assert.Equal(t, 0, c.Staged())
	assert.Equal(t, []int{0}, c.Droppable())
	assert.Equal(t, State{}, c.Snapshot())
	assert.Equal(t, 0, c.AdvanceCursor(), "single-tier pool always stages tier 0")
}

func TestDropGatingScenario(t *testing.T) {
	c := newController(10, 7)
	c.Restore(State{MaxDroppableTier: 3, HighestTierEverCreated: 5})

	for i := 0; i < 9; i++ {
		assert.False(t, c.RecordDrop())
	}
	assert.Equal(t, 3, c.Snapshot().MaxDroppableTier)
	assert.Equal(t, 9, c.Snapshot().DropsSinceLastUnlock)

	assert.True(t, c.RecordDrop())
	s := c.Snapshot()
	assert.Equal(t, 5, s.MaxDroppableTier)
	assert.Equal(t, 0, s.DropsSinceLastUnlock)
}

func TestGateRespectsCap(t *testing.T) {
	c := newController(2, 4)
	c.Restore(State{MaxDroppableTier: 1, HighestTierEverCreated: 9})
	c.RecordDrop()
	require.True(t, c.RecordDrop())
	assert.Equal(t, 4, c.Snapshot().MaxDroppableTier)

	// At the cap further drops never advance or reset the counter
	for i := 0; i < 5; i++ {
		assert.False(t, c.RecordDrop())
	}
	assert.Equal(t, 4, c.Snapshot().MaxDroppableTier)
	assert.Equal(t, 5, c.Snapshot().DropsSinceLastUnlock)
}

func TestGateNeedsHigherTier(t *testing.T) {
	c := newController(1, 7)
	for i := 0; i < 20; i++ {
		assert.False(t, c.RecordDrop())
	}
	assert.Equal(t, 0, c.Snapshot().MaxDroppableTier)
}

func TestMaxDroppableNeverDecreases(t *testing.T) {
	c := newController(3, 7)
	prev := 0
	for i := 0; i < 60; i++ {
		if i%7 == 0 {
			c.RecordCreated(i / 7)
		}
		c.RecordDrop()
		s := c.Snapshot()
		require.GreaterOrEqual(t, s.MaxDroppableTier, prev)
		require.LessOrEqual(t, s.MaxDroppableTier, s.HighestTierEverCreated)
		prev = s.MaxDroppableTier
	}
}

func TestMergeUnlockBypassesGate(t *testing.T) {
	c := newController(10, 7)
	assert.True(t, c.RecordCreated(1))
	assert.False(t, c.RecordCreated(1))
	assert.Equal(t, 0, c.Snapshot().MaxDroppableTier)
	assert.Equal(t, []int{0, 1}, c.Droppable())
	assert.True(t, c.IsDroppable(1))

	// Above the cap a merge-created tier is recorded but never offered
	c.RecordCreated(9)
	assert.Equal(t, 9, c.Snapshot().HighestTierEverCreated)
	assert.Equal(t, []int{0, 1}, c.Droppable())
}

func TestRoundRobinCursor(t *testing.T) {
	c := newController(10, 7)
	c.Restore(State{MaxDroppableTier: 2, HighestTierEverCreated: 2})

	var got []int
	for i := 0; i < 7; i++ {
		got = append(got, c.AdvanceCursor())
	}
	assert.Equal(t, []int{1, 2, 0, 1, 2, 0, 1}, got)

	c.UnlockForDrop(5)
	assert.Equal(t, 2, c.AdvanceCursor())
	assert.Equal(t, 5, c.AdvanceCursor())
	assert.Equal(t, 0, c.AdvanceCursor())
}

func TestAnnouncementsGrowOnly(t *testing.T) {
	c := newController(10, 7)
	assert.False(t, c.Announced(3))
	assert.True(t, c.MarkAnnounced(3))
	assert.False(t, c.MarkAnnounced(3))
	assert.True(t, c.Announced(3))
	assert.Equal(t, 1, c.AnnouncedCount())
}
