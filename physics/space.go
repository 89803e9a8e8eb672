package physics

import (
	"slices"
	"time"

	"github.com/lixenwraith/pie-merge/core"
)

// SpaceConfig tunes the built-in solver
type SpaceConfig struct {
	Iterations  int
	AirFriction float64
	// ContactSkin widens touch detection so resting contacts stay reported
	ContactSkin float64
}

// DefaultSpaceConfig returns solver settings tuned for a 60Hz tick
func DefaultSpaceConfig() SpaceConfig {
	return SpaceConfig{
		Iterations:  8,
		AirFriction: 0.01,
		ContactSkin: 0.5,
	}
}

// Space is an impulse-based world of dynamic circles, static rects and sensor rects
// Not safe for concurrent use; the arena steps it from its tick goroutine
type Space struct {
	cfg     SpaceConfig
	gravity core.Vec2

	left, top, right, bottom float64
	hasBounds                bool

	bodies map[core.Handle]*body
	order  []core.Handle
	next   core.Handle

	tracker *contactTracker

	onStart  PairHandler
	onActive PairHandler
	onEnd    PairHandler

	// scratch
	sweep []*body
	keys  []pairKey
}

var _ World = (*Space)(nil)

// NewSpace creates an empty world
func NewSpace(cfg SpaceConfig) *Space {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1
	}
	return &Space{
		cfg:     cfg,
		bodies:  make(map[core.Handle]*body),
		tracker: newContactTracker(),
	}
}

func (s *Space) add(b *body) core.Handle {
	s.next++
	b.handle = s.next
	s.bodies[b.handle] = b
	s.order = append(s.order, b.handle)
	return b.handle
}

// AddCircle creates a dynamic piece body
func (s *Space) AddCircle(pos core.Vec2, radius float64, mat Material) core.Handle {
	density := mat.Density
	if density <= 0 {
		density = 0.001
	}
	return s.add(&body{
		kind:    KindPiece,
		shape:   shapeCircle,
		pos:     pos,
		radius:  radius,
		invMass: 1 / circleMass(radius, density),
		mat:     mat,
	})
}

// AddStaticRect creates an immovable solid rect
func (s *Space) AddStaticRect(center core.Vec2, w, h float64, kind Kind) core.Handle {
	return s.add(&body{
		kind:   kind,
		shape:  shapeRect,
		pos:    center,
		halfW:  w / 2,
		halfH:  h / 2,
		static: true,
	})
}

// AddSensorRect creates a rect that reports overlap without collision response
func (s *Space) AddSensorRect(center core.Vec2, w, h float64, kind Kind) core.Handle {
	return s.add(&body{
		kind:   kind,
		shape:  shapeRect,
		pos:    center,
		halfW:  w / 2,
		halfH:  h / 2,
		static: true,
		sensor: true,
	})
}

func (s *Space) SetBounds(left, top, right, bottom float64) {
	s.left, s.top, s.right, s.bottom = left, top, right, bottom
	s.hasBounds = true
}

func (s *Space) SetGravity(g core.Vec2) {
	s.gravity = g
}

func (s *Space) SetStatic(h core.Handle, static bool) {
	b, ok := s.bodies[h]
	if !ok || b.sensor {
		return
	}
	b.static = static
	b.vel = core.Vec2{}
}

// Remove deletes a body, its open contacts are dropped without end reports
func (s *Space) Remove(h core.Handle) {
	if _, ok := s.bodies[h]; !ok {
		return
	}
	delete(s.bodies, h)
	if i := slices.Index(s.order, h); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.tracker.forget(h)
}

func (s *Space) Position(h core.Handle) (core.Vec2, bool) {
	b, ok := s.bodies[h]
	if !ok {
		return core.Vec2{}, false
	}
	return b.pos, true
}

// SetPosition teleports a body and zeroes its velocity
func (s *Space) SetPosition(h core.Handle, pos core.Vec2) {
	if b, ok := s.bodies[h]; ok {
		b.pos = pos
		b.vel = core.Vec2{}
	}
}

// Velocity returns the current body velocity
func (s *Space) Velocity(h core.Handle) (core.Vec2, bool) {
	b, ok := s.bodies[h]
	if !ok {
		return core.Vec2{}, false
	}
	return b.vel, true
}

// BodyCount returns the number of live bodies including statics
func (s *Space) BodyCount() int {
	return len(s.bodies)
}

func (s *Space) OnCollisionStart(fn PairHandler)  { s.onStart = fn }
func (s *Space) OnCollisionActive(fn PairHandler) { s.onActive = fn }
func (s *Space) OnCollisionEnd(fn PairHandler)    { s.onEnd = fn }

// Step advances the simulation and then fires start, active and end handlers in that order
func (s *Space) Step(dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	for _, h := range s.order {
		s.bodies[h].integrate(s.gravity, sec, s.cfg.AirFriction)
	}

	s.keys = s.keys[:0]
	for iter := 0; iter < s.cfg.Iterations; iter++ {
		s.solve(iter == 0)
		if s.hasBounds {
			for _, h := range s.order {
				s.bodies[h].reflectBounds(s.left, s.right, s.bottom)
			}
		}
	}

	started, active, ended := s.tracker.flush(s.keys)
	if len(started) > 0 && s.onStart != nil {
		s.onStart(started)
	}
	if len(active) > 0 && s.onActive != nil {
		s.onActive(active)
	}
	if len(ended) > 0 && s.onEnd != nil {
		s.onEnd(ended)
	}
}

// solve runs one sweep-and-prune pass, record captures contacts for the tracker
func (s *Space) solve(record bool) {
	s.sweep = s.sweep[:0]
	for _, h := range s.order {
		s.sweep = append(s.sweep, s.bodies[h])
	}
	slices.SortStableFunc(s.sweep, func(a, b *body) int {
		switch {
		case a.minX() < b.minX():
			return -1
		case a.minX() > b.minX():
			return 1
		}
		return 0
	})

	skin := s.cfg.ContactSkin
	for i, a := range s.sweep {
		limit := a.maxX() + skin
		for _, b := range s.sweep[i+1:] {
			if b.minX() > limit {
				break
			}
			if !s.interacts(a, b) {
				continue
			}
			m, ok := detect(a, b, skin)
			if !ok {
				continue
			}
			if record {
				s.record(m)
			}
			if !a.sensor && !b.sensor {
				resolve(m)
			}
		}
	}
}

// interacts filters pairs that can never produce a contact
func (s *Space) interacts(a, b *body) bool {
	if a.shape == shapeRect && b.shape == shapeRect {
		return false
	}
	if a.sensor || b.sensor {
		return true
	}
	// Two frozen bodies neither push each other nor report contact
	return a.movable() || b.movable()
}

func (s *Space) record(m manifold) {
	a, b := m.a, m.b
	if a.handle > b.handle {
		a, b = b, a
	}
	p := Pair{
		A:          a.collidable(),
		B:          b.collidable(),
		Contact:    m.point,
		HasContact: true,
	}
	k := keyOf(a.handle, b.handle)
	if _, dup := s.tracker.seen[k]; !dup {
		s.keys = append(s.keys, k)
	}
	s.tracker.observe(p)
}
