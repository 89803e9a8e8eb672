package arena

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pie-merge/audio"
	"github.com/lixenwraith/pie-merge/config"
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/event"
	"github.com/lixenwraith/pie-merge/physics"
	"github.com/lixenwraith/pie-merge/progression"
	"github.com/lixenwraith/pie-merge/status"
)

const step = time.Second / 60

type countingAudio struct {
	plays map[audio.SoundType]int
}

func (a *countingAudio) Play(s audio.SoundType, _ audio.Params) {
	a.plays[s]++
}

type harness struct {
	t     *testing.T
	s     *Session
	w     *scriptedWorld
	audio *countingAudio
	log   []event.GameEvent
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Stress.MaxTouches = 2
	cfg.Stress.Segments = 2
	cfg.Stress.StableTouch = 100 * time.Millisecond
	return cfg
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		w:     newScriptedWorld(),
		audio: &countingAudio{plays: make(map[audio.SoundType]int)},
	}
	s, err := New(cfg, Options{
		World: h.w,
		Audio: h.audio,
		Rand:  rand.New(rand.NewSource(7)),
	})
	require.NoError(t, err)
	h.s = s
	return h
}

func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		h.s.Tick(step)
	}
	h.log = append(h.log, h.s.Events().Consume()...)
}

// drop releases at x and waits for the spawn, returning the new piece handle
func (h *harness) drop(x float64) core.Handle {
	h.t.Helper()
	require.True(h.t, h.s.Drop(x, 400))
	h.run(200 * time.Millisecond)
	ids := h.s.pieces.IDs()
	require.NotEmpty(h.t, ids)
	return ids[len(ids)-1]
}

// merged drops two tier 0 pieces and merges them, returning the product handle
func (h *harness) merged() core.Handle {
	h.t.Helper()
	a := h.drop(300)
	b := h.drop(340)
	h.w.moveTo(a, core.V(300, 800))
	h.w.moveTo(b, core.V(340, 800))
	h.w.collide(a, b, 800)
	h.run(300 * time.Millisecond)

	ids := h.s.pieces.IDs()
	require.Len(h.t, ids, 1)
	return ids[0]
}

func (h *harness) count(et event.EventType) int {
	n := 0
	for _, ev := range h.log {
		if ev.Type == et {
			n++
		}
	}
	return n
}

func TestIdleUntilStarted(t *testing.T) {
	h := newHarness(t, testConfig())
	s := h.s

	assert.Equal(t, "Idle", s.State())
	assert.True(t, s.Idle())
	assert.False(t, s.Drop(300, 400))
	s.Tick(step)
	assert.False(t, s.Restart())

	require.True(t, s.Start())
	assert.Equal(t, "Active", s.State())
	assert.False(t, s.Idle())
	assert.False(t, s.Start())

	snap := s.Snapshot()
	assert.True(t, snap.Dropper.Visible)
	assert.Equal(t, 0, snap.Dropper.Tier)
	assert.Equal(t, []int{0}, snap.Droppable)
	assert.Zero(t, snap.Score)
	assert.Equal(t, "Active", s.Registry().Label(status.KeyState).Load())
}

func TestDropRejectionAndClamp(t *testing.T) {
	h := newHarness(t, testConfig())
	s := h.s
	require.True(t, s.Start())
	a := s.cfg.Arena

	assert.False(t, s.Drop(300, a.CeilingY-1), "above the ceiling")

	require.True(t, s.Drop(0, 400))
	assert.False(t, s.Drop(300, 400), "drop already in flight")
	h.run(200 * time.Millisecond)

	left, ok := s.pieces.Get(s.pieces.IDs()[0])
	require.True(t, ok)
	r := s.catalog.TierAt(0).Radius
	assert.InDelta(t, a.WallOffset+r, left.Pos.X, 1e-9)
	assert.InDelta(t, a.CeilingY+5, left.Pos.Y, 1e-9)
	assert.True(t, left.IsNew)
	assert.True(t, s.Snapshot().Dropper.Visible)

	right := h.drop(10_000)
	p, _ := s.pieces.Get(right)
	assert.InDelta(t, a.Width-a.WallOffset-r, p.Pos.X, 1e-9)

	s.Pause()
	assert.False(t, s.Drop(300, 400), "paused")
	s.Resume()
	assert.True(t, s.Drop(300, 400))

	assert.Equal(t, 2, h.count(event.EventPieceDropped))
}

func TestMergeFlowsThroughSession(t *testing.T) {
	h := newHarness(t, testConfig())
	require.True(t, h.s.Start())

	product := h.merged()
	p, ok := h.s.pieces.Get(product)
	require.True(t, ok)
	assert.Equal(t, 1, p.Tier)
	assert.InDelta(t, 320, p.Pos.X, 1e-9)
	assert.InDelta(t, 800, p.Pos.Y, 1e-9)
	assert.False(t, p.IsNew)
	assert.Equal(t, int64(10), h.s.Score())

	assert.Equal(t, 1, h.count(event.EventMerged))
	assert.Equal(t, 1, h.count(event.EventTierDiscovered))
	assert.Equal(t, 1, h.audio.plays[audio.SoundMerge])
	assert.GreaterOrEqual(t, h.audio.plays[audio.SoundSquish], 1)

	snap := h.s.Snapshot()
	assert.True(t, snap.HasAnnouncement)
	assert.Contains(t, snap.Announcement.Text, "!")
	assert.Equal(t, 1, h.s.prog.Snapshot().HighestTierEverCreated)
}

func TestGameOverSequence(t *testing.T) {
	h := newHarness(t, testConfig())
	s := h.s
	require.True(t, s.Start())

	product := h.merged()
	c := h.drop(500)
	h.w.collide(c, product, 180)
	h.run(step)
	cp, _ := s.pieces.Get(c)
	require.False(t, cp.IsNew)
	require.Equal(t, 2, s.pieces.Len())

	before := s.Score()
	require.Equal(t, int64(10), before)

	h.w.touch(product)
	h.w.touch(c)
	h.run(50 * time.Millisecond)
	assert.Equal(t, "Active", s.State(), "raw contact alone must not end the round")
	assert.Equal(t, 2, s.stress.RawCount())

	h.run(100 * time.Millisecond)
	require.Equal(t, "Terminal", s.State())
	assert.False(t, s.Snapshot().Dropper.Visible)
	assert.False(t, s.Drop(300, 400))
	assert.False(t, s.machine.HandleEvent(s, event.EventCeilingBreach), "breach after terminal entry")

	h.run(2 * time.Second)
	assert.Zero(t, s.pieces.Len())
	assert.True(t, h.w.removed[product])
	assert.True(t, h.w.removed[c])
	assert.Equal(t, 1, h.count(event.EventGameOverStarted))
	assert.Equal(t, 1, h.count(event.EventGameOver))
	assert.Equal(t, 1, h.audio.plays[audio.SoundGameOver])

	var awards, last int64
	var final int64 = -1
	for _, ev := range h.log {
		switch p := ev.Payload.(type) {
		case event.MergePayload:
			awards += p.Award
		case event.ScorePayload:
			assert.GreaterOrEqual(t, p.Score, last)
			last = p.Score
		case event.GameOverPayload:
			if ev.Type == event.EventGameOver {
				final = p.FinalScore
			}
		}
	}
	assert.Equal(t, before, final)
	assert.Equal(t, awards, final)

	snap := s.Snapshot()
	assert.True(t, snap.PlayAgain)
	assert.Equal(t, before, snap.FinalScore)
	assert.Equal(t, before, s.Score())

	require.True(t, s.Restart())
	assert.Equal(t, "Active", s.State())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.stress.RawCount())
	assert.True(t, s.Snapshot().Dropper.Visible)

	reg := s.Registry()
	assert.Equal(t, "Active", reg.Label(status.KeyState).Load())
	assert.Zero(t, reg.Counter(status.KeyScore).Load())
	assert.Zero(t, reg.Counter(status.KeyPieces).Load())
}

func TestGameOverCancelsPendingMerges(t *testing.T) {
	cfg := testConfig()
	cfg.Stress.MaxTouches = 1
	cfg.Stress.Segments = 1
	h := newHarness(t, cfg)
	s := h.s
	require.True(t, s.Start())

	a := h.drop(300)
	b := h.drop(340)
	h.w.collide(a, b, 180)
	h.run(step)
	h.w.touch(a)
	h.run(50 * time.Millisecond)

	// the threshold is crossed while the shrink is still running
	h.w.moveTo(a, core.V(300, 800))
	h.w.moveTo(b, core.V(340, 800))
	h.w.collide(a, b, 800)
	h.run(step)
	require.Equal(t, "Active", s.State())
	require.Equal(t, 1, s.merges.Pending())

	h.run(100 * time.Millisecond)
	require.Equal(t, "Terminal", s.State())
	assert.Zero(t, s.merges.Pending())
	h.run(2 * time.Second)
	assert.Zero(t, s.pieces.Len())
	assert.Zero(t, s.Score())
	assert.Zero(t, h.count(event.EventMerged))
}

func TestBouncingContactNeverEndsRound(t *testing.T) {
	h := newHarness(t, testConfig())
	s := h.s
	require.True(t, s.Start())

	a := h.drop(300)
	b := h.drop(400)
	h.w.collide(a, b, 180)
	h.run(step)

	for range 20 {
		h.w.touch(a)
		h.w.touch(b)
		h.run(50 * time.Millisecond)
		h.w.untouch(a)
		h.w.untouch(b)
		h.run(step)
	}
	assert.Equal(t, "Active", s.State())
	assert.Zero(t, s.stress.StableCount())
	assert.Zero(t, s.stress.RawCount())
}

func TestNewPiecesIgnoredBySensor(t *testing.T) {
	h := newHarness(t, testConfig())
	s := h.s
	require.True(t, s.Start())

	a := h.drop(300)
	b := h.drop(400)
	h.w.touch(a)
	h.w.touch(b)
	h.run(time.Second)
	assert.Equal(t, "Active", s.State())
	assert.Zero(t, s.stress.RawCount())
}

func TestPauseFreezesDebounce(t *testing.T) {
	cfg := testConfig()
	cfg.Stress.MaxTouches = 1
	cfg.Stress.Segments = 1
	h := newHarness(t, cfg)
	s := h.s
	require.True(t, s.Start())

	a := h.drop(300)
	b := h.drop(400)
	h.w.collide(a, b, 180)
	h.run(step)

	h.w.touch(a)
	h.run(50 * time.Millisecond)
	s.Pause()
	tick := s.Snapshot().Tick
	h.run(time.Second)
	assert.Equal(t, tick, s.Snapshot().Tick)
	assert.Equal(t, "Active", s.State())
	assert.Zero(t, s.stress.StableCount())

	s.Resume()
	h.run(80 * time.Millisecond)
	assert.Equal(t, "Terminal", s.State())
}

func TestDropGatingThroughSession(t *testing.T) {
	h := newHarness(t, testConfig())
	s := h.s
	require.True(t, s.Start())
	s.prog.Restore(progression.State{MaxDroppableTier: 3, HighestTierEverCreated: 5})

	for range 9 {
		h.drop(360)
	}
	assert.Equal(t, 3, s.prog.Snapshot().MaxDroppableTier)

	h.drop(360)
	assert.Equal(t, 5, s.prog.Snapshot().MaxDroppableTier)
	assert.Zero(t, s.prog.Snapshot().DropsSinceLastUnlock)
}

func TestRealPhysicsDropAndMerge(t *testing.T) {
	s, err := New(config.Default(), Options{Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)
	require.True(t, s.Start())
	_, ok := s.world.(*physics.Space)
	require.True(t, ok)

	tick := func(d time.Duration) {
		for elapsed := time.Duration(0); elapsed < d; elapsed += step {
			s.Tick(step)
		}
	}

	require.True(t, s.Drop(360, 400))
	tick(3 * time.Second)
	require.Equal(t, 1, s.pieces.Len())
	p, _ := s.pieces.Get(s.pieces.IDs()[0])
	r := s.catalog.TierAt(0).Radius
	assert.InDelta(t, s.cfg.Arena.FloorY-r, p.Pos.Y, 3)

	require.True(t, s.Drop(360, 400))
	tick(3 * time.Second)
	require.Equal(t, 1, s.pieces.Len())
	p, _ = s.pieces.Get(s.pieces.IDs()[0])
	assert.Equal(t, 1, p.Tier)
	assert.Equal(t, int64(10), s.Score())
	assert.Equal(t, "Active", s.State())
}
