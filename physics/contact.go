package physics

import (
	"math"

	"github.com/lixenwraith/pie-merge/core"
)

// manifold describes one overlap; normal points from a to b
type manifold struct {
	a, b        *body
	normal      core.Vec2
	penetration float64
	point       core.Vec2
}

// detect tests a circle against a circle or rect, skin widens the touch test without resolving it
func detect(a, b *body, skin float64) (manifold, bool) {
	switch {
	case a.shape == shapeCircle && b.shape == shapeCircle:
		return circleCircle(a, b, skin)
	case a.shape == shapeCircle && b.shape == shapeRect:
		return circleRect(a, b, skin)
	case a.shape == shapeRect && b.shape == shapeCircle:
		m, ok := circleRect(b, a, skin)
		if ok {
			m.a, m.b = a, b
			m.normal = m.normal.Scale(-1)
		}
		return m, ok
	}
	return manifold{}, false
}

func circleCircle(a, b *body, skin float64) (manifold, bool) {
	delta := b.pos.Sub(a.pos)
	rSum := a.radius + b.radius
	distSq := delta.LenSq()
	if distSq >= (rSum+skin)*(rSum+skin) {
		return manifold{}, false
	}

	dist := math.Sqrt(distSq)
	normal := core.V(0, 1)
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	return manifold{
		a:           a,
		b:           b,
		normal:      normal,
		penetration: rSum - dist,
		point:       a.pos.Add(normal.Scale(a.radius - (rSum-dist)*0.5)),
	}, true
}

func circleRect(c, r *body, skin float64) (manifold, bool) {
	closest := core.V(
		core.Clamp(c.pos.X, r.pos.X-r.halfW, r.pos.X+r.halfW),
		core.Clamp(c.pos.Y, r.pos.Y-r.halfH, r.pos.Y+r.halfH),
	)
	delta := c.pos.Sub(closest)
	distSq := delta.LenSq()
	reach := c.radius + skin
	if distSq >= reach*reach {
		return manifold{}, false
	}

	dist := math.Sqrt(distSq)
	penetration := c.radius - dist
	var normal core.Vec2
	if dist > 0 {
		normal = delta.Scale(-1 / dist)
	} else {
		// Center inside the rect, push out along the shallow axis
		xDist := math.Min(c.pos.X-(r.pos.X-r.halfW), (r.pos.X+r.halfW)-c.pos.X)
		yDist := math.Min(c.pos.Y-(r.pos.Y-r.halfH), (r.pos.Y+r.halfH)-c.pos.Y)
		if xDist < yDist {
			normal = core.V(-1, 0)
			if c.pos.X < r.pos.X {
				normal = core.V(1, 0)
			}
			penetration = xDist + c.radius
		} else {
			normal = core.V(0, -1)
			if c.pos.Y < r.pos.Y {
				normal = core.V(0, 1)
			}
			penetration = yDist + c.radius
		}
	}
	return manifold{a: c, b: r, normal: normal, penetration: penetration, point: closest}, true
}

// resolve applies restitution and friction impulses then positional correction
func resolve(m manifold) {
	a, b := m.a, m.b
	invSum := a.effectiveInvMass() + b.effectiveInvMass()
	if invSum == 0 || m.penetration <= 0 {
		return
	}

	rel := b.vel.Sub(a.vel)
	velAlongNormal := rel.Dot(m.normal)
	if velAlongNormal < 0 {
		e := math.Min(a.mat.Restitution, b.mat.Restitution)
		j := -(1 + e) * velAlongNormal / invSum
		impulse := m.normal.Scale(j)
		a.applyImpulse(impulse.Scale(-1))
		b.applyImpulse(impulse)
		applyFriction(m, j, invSum)
	}
	correctPositions(m, invSum)
}

func applyFriction(m manifold, normalImpulse, invSum float64) {
	a, b := m.a, m.b
	rel := b.vel.Sub(a.vel)
	tangent := rel.Sub(m.normal.Scale(rel.Dot(m.normal)))
	if tangent.LenSq() < 1e-8 {
		return
	}
	tangent = tangent.Normalize()

	jt := -rel.Dot(tangent) / invSum
	mu := math.Sqrt(a.mat.Friction * b.mat.Friction)
	limit := math.Abs(normalImpulse) * mu
	if math.Abs(jt) > limit {
		jt = math.Copysign(limit, jt)
	}
	f := tangent.Scale(jt)
	a.applyImpulse(f.Scale(-1))
	b.applyImpulse(f)
}

const (
	correctionPercent = 0.4
	correctionSlop    = 0.05
)

func correctPositions(m manifold, invSum float64) {
	if m.penetration <= correctionSlop {
		return
	}
	correction := m.normal.Scale((m.penetration - correctionSlop) / invSum * correctionPercent)
	if m.a.movable() {
		m.a.pos = m.a.pos.Sub(correction.Scale(m.a.invMass))
	}
	if m.b.movable() {
		m.b.pos = m.b.pos.Add(correction.Scale(m.b.invMass))
	}
}

func (b *body) effectiveInvMass() float64 {
	if !b.movable() {
		return 0
	}
	return b.invMass
}
