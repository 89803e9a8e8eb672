package physics

import (
	"math"

	"github.com/lixenwraith/pie-merge/core"
)

type shape uint8

const (
	shapeCircle shape = iota
	shapeRect
)

type body struct {
	handle core.Handle
	kind   Kind
	shape  shape

	pos core.Vec2
	vel core.Vec2

	radius       float64
	halfW, halfH float64

	invMass float64
	mat     Material
	static  bool
	sensor  bool
}

func (b *body) collidable() Collidable {
	return Collidable{Handle: b.handle, Kind: b.kind}
}

// minX/maxX bound the body on the sweep axis
func (b *body) minX() float64 {
	if b.shape == shapeCircle {
		return b.pos.X - b.radius
	}
	return b.pos.X - b.halfW
}

func (b *body) maxX() float64 {
	if b.shape == shapeCircle {
		return b.pos.X + b.radius
	}
	return b.pos.X + b.halfW
}

func (b *body) movable() bool {
	return !b.static && !b.sensor && b.invMass > 0
}

// integrate performs semi-implicit Euler: v = v + g*dt; p = p + v*dt
func (b *body) integrate(g core.Vec2, dt, airFriction float64) {
	if !b.movable() {
		return
	}
	b.vel = b.vel.Add(g.Scale(dt)).Scale(1 - airFriction)
	b.pos = b.pos.Add(b.vel.Scale(dt))
}

// applyImpulse adds velocity delta scaled by inverse mass
func (b *body) applyImpulse(j core.Vec2) {
	if !b.movable() {
		return
	}
	b.vel = b.vel.Add(j.Scale(b.invMass))
}

// reflectBounds keeps a circle inside the side walls and above the floor, returns true if clamped
// The top edge is open; the ceiling is a regular static body
func (b *body) reflectBounds(left, right, bottom float64) bool {
	restitution := b.mat.Restitution
	if b.shape != shapeCircle || !b.movable() {
		return false
	}
	hit := false
	if b.pos.X-b.radius < left {
		b.pos.X = left + b.radius
		if b.vel.X < 0 {
			b.vel.X = -b.vel.X * restitution
		}
		hit = true
	}
	if b.pos.X+b.radius > right {
		b.pos.X = right - b.radius
		if b.vel.X > 0 {
			b.vel.X = -b.vel.X * restitution
		}
		hit = true
	}
	if b.pos.Y+b.radius > bottom {
		b.pos.Y = bottom - b.radius
		if b.vel.Y > 0 {
			b.vel.Y = -b.vel.Y * restitution
		}
		hit = true
	}
	return hit
}

func circleMass(radius, density float64) float64 {
	return math.Pi * radius * radius * density
}
