package arena

import (
	"time"

	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/physics"
)

// scriptedWorld replays collision pairs chosen by the test instead of simulating
type scriptedWorld struct {
	next    core.Handle
	pos     map[core.Handle]core.Vec2
	kind    map[core.Handle]physics.Kind
	static  map[core.Handle]bool
	removed map[core.Handle]bool

	sensor core.Handle

	onStart, onActive, onEnd physics.PairHandler

	queuedStart []physics.Pair
	queuedEnd   []physics.Pair
	touching    map[core.Handle]bool
}

func newScriptedWorld() *scriptedWorld {
	return &scriptedWorld{
		pos:      make(map[core.Handle]core.Vec2),
		kind:     make(map[core.Handle]physics.Kind),
		static:   make(map[core.Handle]bool),
		removed:  make(map[core.Handle]bool),
		touching: make(map[core.Handle]bool),
	}
}

func (w *scriptedWorld) add(pos core.Vec2, k physics.Kind) core.Handle {
	w.next++
	w.pos[w.next] = pos
	w.kind[w.next] = k
	return w.next
}

func (w *scriptedWorld) AddCircle(pos core.Vec2, _ float64, _ physics.Material) core.Handle {
	return w.add(pos, physics.KindPiece)
}

func (w *scriptedWorld) AddStaticRect(center core.Vec2, _, _ float64, k physics.Kind) core.Handle {
	return w.add(center, k)
}

func (w *scriptedWorld) AddSensorRect(center core.Vec2, _, _ float64, k physics.Kind) core.Handle {
	w.sensor = w.add(center, k)
	return w.sensor
}

func (w *scriptedWorld) SetBounds(float64, float64, float64, float64) {}
func (w *scriptedWorld) SetGravity(core.Vec2)                         {}
func (w *scriptedWorld) SetStatic(h core.Handle, s bool)              { w.static[h] = s }

func (w *scriptedWorld) Remove(h core.Handle) {
	w.removed[h] = true
	delete(w.pos, h)
	delete(w.touching, h)
}

func (w *scriptedWorld) Position(h core.Handle) (core.Vec2, bool) {
	p, ok := w.pos[h]
	return p, ok
}

func (w *scriptedWorld) OnCollisionStart(fn physics.PairHandler)  { w.onStart = fn }
func (w *scriptedWorld) OnCollisionActive(fn physics.PairHandler) { w.onActive = fn }
func (w *scriptedWorld) OnCollisionEnd(fn physics.PairHandler)    { w.onEnd = fn }

func (w *scriptedWorld) Step(time.Duration) {
	if len(w.queuedStart) > 0 {
		w.onStart(w.queuedStart)
		w.queuedStart = nil
	}
	var active []physics.Pair
	for h := range w.touching {
		active = append(active, w.sensorPair(h))
	}
	if len(active) > 0 {
		w.onActive(active)
	}
	if len(w.queuedEnd) > 0 {
		w.onEnd(w.queuedEnd)
		w.queuedEnd = nil
	}
}

func (w *scriptedWorld) sensorPair(h core.Handle) physics.Pair {
	return physics.Pair{
		A: physics.Collidable{Handle: w.sensor, Kind: physics.KindCeilingSensor},
		B: physics.Collidable{Handle: h, Kind: physics.KindPiece},
	}
}

// collide queues a piece-piece start pair contacting at y
func (w *scriptedWorld) collide(a, b core.Handle, y float64) {
	w.queuedStart = append(w.queuedStart, physics.Pair{
		A:          physics.Collidable{Handle: a, Kind: physics.KindPiece},
		B:          physics.Collidable{Handle: b, Kind: physics.KindPiece},
		Contact:    core.V(w.pos[a].X, y),
		HasContact: true,
	})
}

// touch keeps h against the sensor until untouch
func (w *scriptedWorld) touch(h core.Handle) {
	w.touching[h] = true
}

func (w *scriptedWorld) untouch(h core.Handle) {
	delete(w.touching, h)
	w.queuedEnd = append(w.queuedEnd, w.sensorPair(h))
}

// moveTo places a body, used to set up merge midpoints
func (w *scriptedWorld) moveTo(h core.Handle, p core.Vec2) {
	w.pos[h] = p
}
