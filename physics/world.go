// Package physics defines the rigid-body collaborator contract and a built-in circle world
package physics

import (
	"time"

	"github.com/lixenwraith/pie-merge/core"
)

// Kind tags what a collidable body represents
type Kind uint8

const (
	KindPiece Kind = iota
	KindCeilingSensor
	KindBoundary
)

func (k Kind) String() string {
	switch k {
	case KindPiece:
		return "piece"
	case KindCeilingSensor:
		return "ceiling_sensor"
	case KindBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Collidable identifies one side of a collision pair
type Collidable struct {
	Handle core.Handle
	Kind   Kind
}

// Pair is a reported contact between two bodies
// Contact is only meaningful when HasContact is set (collision start)
type Pair struct {
	A, B       Collidable
	Contact    core.Vec2
	HasContact bool
}

// With returns the opposite side if one side of the pair has kind k
func (p Pair) With(k Kind) (other Collidable, ok bool) {
	switch {
	case p.A.Kind == k:
		return p.B, true
	case p.B.Kind == k:
		return p.A, true
	}
	return Collidable{}, false
}

// Pieces reports whether both sides are pieces
func (p Pair) Pieces() bool {
	return p.A.Kind == KindPiece && p.B.Kind == KindPiece
}

// Material holds per-body contact parameters
type Material struct {
	Friction    float64
	Restitution float64
	Density     float64
}

// PairHandler receives all pairs of one phase for one step
type PairHandler func(pairs []Pair)

// World is the rigid-body simulator consumed by the arena
type World interface {
	AddCircle(pos core.Vec2, radius float64, mat Material) core.Handle
	AddStaticRect(center core.Vec2, w, h float64, kind Kind) core.Handle
	AddSensorRect(center core.Vec2, w, h float64, kind Kind) core.Handle
	SetBounds(left, top, right, bottom float64)
	SetGravity(g core.Vec2)
	// SetStatic freezes or releases a dynamic body
	SetStatic(h core.Handle, static bool)
	Remove(h core.Handle)
	Position(h core.Handle) (core.Vec2, bool)
	Step(dt time.Duration)
	OnCollisionStart(fn PairHandler)
	OnCollisionActive(fn PairHandler)
	OnCollisionEnd(fn PairHandler)
}
