package status

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReturnsCachedPointer(t *testing.T) {
	r := NewRegistry()
	g := r.Gauge("x")
	g.Set(1.5)
	assert.Same(t, g, r.Gauge("x"))
	assert.Equal(t, 1.5, r.Gauge("x").Get())
	assert.Equal(t, 1, r.Len())
}

func TestRegistryConcurrentResolve(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	ptrs := make([]*Counter, 8)
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = r.Counter("shared")
			ptrs[i].Add(1)
		}(i)
	}
	wg.Wait()
	for _, p := range ptrs {
		assert.Same(t, ptrs[0], p)
	}
	assert.Equal(t, int64(8), ptrs[0].Load())
	assert.Equal(t, 1, r.Len())
}

func TestKindMismatchDetaches(t *testing.T) {
	r := NewRegistry()
	r.Counter("k").Store(3)
	l := r.Label("k")
	l.Store("other")
	assert.Equal(t, int64(3), r.Counter("k").Load())
	assert.Equal(t, 1, r.Len())
}

func TestLabelTruncates(t *testing.T) {
	var l Label
	assert.Equal(t, "", l.Load())
	l.Store(strings.Repeat("a", MaxLabelLen+5))
	assert.Len(t, l.Load(), MaxLabelLen)
}

func TestBoardLinesInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	b := NewBoard(r)
	b.Score.Store(120)
	b.State.Store("Active")
	b.StressRatio.Set(0.3)
	b.Paused.Store(true)

	lines := r.Lines()
	require.Len(t, lines, 13)
	assert.Equal(t, KeyState, lines[0].Key)
	assert.Equal(t, KeyFlashes, lines[len(lines)-1].Key)

	values := make(map[string]any)
	for _, l := range lines {
		values[l.Key] = l.Value
	}
	assert.Equal(t, int64(120), values[KeyScore])
	assert.Equal(t, "Active", values[KeyState])
	assert.Equal(t, 0.3, values[KeyStressRatio])
	assert.Equal(t, true, values[KeyPaused])
}
