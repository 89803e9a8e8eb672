package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pie-merge/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(parameter.EventQueueSize)
	assert.Nil(t, q.Consume())

	q.Push(GameEvent{Type: EventScoreChanged, Payload: ScorePayload{Score: 10, Delta: 10}, Tick: 1})
	q.Push(GameEvent{Type: EventTierDiscovered, Payload: TierPayload{Tier: 1, Name: "Apple Cross"}, Tick: 1})
	assert.Equal(t, 2, q.Len())

	got := q.Consume()
	require.Len(t, got, 2)
	assert.Equal(t, EventScoreChanged, got[0].Type)
	assert.Equal(t, "Apple Cross", got[1].Payload.(TierPayload).Name)
	assert.Equal(t, 0, q.Len())
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue(parameter.EventQueueSize)
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventStressChanged, Tick: uint64(i)})
	}
	got := q.Consume()
	require.Len(t, got, parameter.EventQueueSize)
	assert.Equal(t, uint64(10), got[0].Tick)
	assert.Equal(t, uint64(total-1), got[len(got)-1].Tick)
	assert.Equal(t, uint64(10), q.Dropped())
}

func TestQueueWrapsAndCountsDrops(t *testing.T) {
	q := NewQueue(4)
	// the two oldest are overwritten, leaving the unread run wrapped around the buffer end
	for i := range 6 {
		q.Push(GameEvent{Type: EventMerged, Tick: uint64(10 + i)})
	}
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, uint64(2), q.Dropped())

	got := q.Consume()
	require.Len(t, got, 4)
	for i, ev := range got {
		assert.Equal(t, uint64(12+i), ev.Tick)
	}
	assert.Nil(t, q.Consume())
}

func TestRegistryNames(t *testing.T) {
	et, ok := GetEventType("ceilingbreach")
	require.True(t, ok)
	assert.Equal(t, EventCeilingBreach, et)
	assert.Equal(t, "GameOver", EventGameOver.String())
	assert.Equal(t, "Tick", EventNone.String())

	_, ok = GetEventType("Nope")
	assert.False(t, ok)
}
