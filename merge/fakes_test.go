package merge

import (
	"time"

	"github.com/lixenwraith/pie-merge/audio"
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/physics"
)

// fakeWorld records body calls without simulating
type fakeWorld struct {
	next    core.Handle
	pos     map[core.Handle]core.Vec2
	radius  map[core.Handle]float64
	static  map[core.Handle]bool
	removed []core.Handle
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		pos:    make(map[core.Handle]core.Vec2),
		radius: make(map[core.Handle]float64),
		static: make(map[core.Handle]bool),
	}
}

func (w *fakeWorld) AddCircle(pos core.Vec2, radius float64, _ physics.Material) core.Handle {
	w.next++
	w.pos[w.next] = pos
	w.radius[w.next] = radius
	return w.next
}

func (w *fakeWorld) AddStaticRect(core.Vec2, float64, float64, physics.Kind) core.Handle {
	w.next++
	return w.next
}

func (w *fakeWorld) AddSensorRect(core.Vec2, float64, float64, physics.Kind) core.Handle {
	w.next++
	return w.next
}

func (w *fakeWorld) SetBounds(float64, float64, float64, float64) {}
func (w *fakeWorld) SetGravity(core.Vec2)                         {}
func (w *fakeWorld) SetStatic(h core.Handle, s bool)              { w.static[h] = s }

func (w *fakeWorld) Remove(h core.Handle) {
	if _, ok := w.pos[h]; ok {
		w.removed = append(w.removed, h)
	}
	delete(w.pos, h)
	delete(w.static, h)
}

func (w *fakeWorld) Position(h core.Handle) (core.Vec2, bool) {
	p, ok := w.pos[h]
	return p, ok
}

func (w *fakeWorld) Step(time.Duration)                    {}
func (w *fakeWorld) OnCollisionStart(physics.PairHandler)  {}
func (w *fakeWorld) OnCollisionActive(physics.PairHandler) {}
func (w *fakeWorld) OnCollisionEnd(physics.PairHandler)    {}

// fakeAudio counts play requests per sound
type fakeAudio struct {
	played map[audio.SoundType]int
}

func (a *fakeAudio) Play(s audio.SoundType, _ audio.Params) {
	if a.played == nil {
		a.played = make(map[audio.SoundType]int)
	}
	a.played[s]++
}
