// Package effect holds presentational state owned by the arena: flash rings and announcements
package effect

import (
	"time"

	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/parameter"
	"github.com/lixenwraith/pie-merge/tween"
)

// Flash is one expanding ring
type Flash struct {
	Pos    core.Vec2
	Radius float64
	Scale  float64
	Alpha  float64
}

// FlashPool is a fixed arena of flash slots recycled through a free-list
type FlashPool struct {
	slots []Flash
	used  []bool
	free  []int
}

// NewFlashPool allocates every slot up front
func NewFlashPool(capacity int) *FlashPool {
	p := &FlashPool{
		slots: make([]Flash, capacity),
		used:  make([]bool, capacity),
		free:  make([]int, 0, capacity),
	}
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// Acquire takes a slot, false when exhausted
func (p *FlashPool) Acquire() (int, bool) {
	if len(p.free) == 0 {
		return -1, false
	}
	slot := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.used[slot] = true
	p.slots[slot] = Flash{}
	return slot, true
}

// Release returns a slot, releasing a free or invalid slot is ignored
func (p *FlashPool) Release(slot int) {
	if slot < 0 || slot >= len(p.slots) || !p.used[slot] {
		return
	}
	p.used[slot] = false
	p.free = append(p.free, slot)
}

// At returns the slot for mutation
func (p *FlashPool) At(slot int) *Flash {
	return &p.slots[slot]
}

// Active returns a copy of every in-use flash in slot order
func (p *FlashPool) Active() []Flash {
	out := make([]Flash, 0, p.InUse())
	for i, u := range p.used {
		if u {
			out = append(out, p.slots[i])
		}
	}
	return out
}

func (p *FlashPool) InUse() int {
	return len(p.slots) - len(p.free)
}

func (p *FlashPool) Capacity() int {
	return len(p.slots)
}

// Reset frees every slot
func (p *FlashPool) Reset() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.used[i] = false
		p.free = append(p.free, i)
	}
}

// Burst launches the merge flash for a consumed tier, returns rings started
// Rings that find the pool exhausted are skipped
func (p *FlashPool) Burst(anim tween.Animator, at core.Vec2, radius float64, consumedTier int) int {
	rings := 1
	scale := parameter.FlashBaseScale
	duration := parameter.FlashBaseDuration
	if consumedTier >= parameter.FlashLargeMergeTier {
		rings = parameter.FlashLargeRings
		scale *= parameter.FlashLargeScaleMul
		duration = time.Duration(float64(duration) * parameter.FlashLargeDurationMul)
	}

	started := 0
	for i := 0; i < rings; i++ {
		slot, ok := p.Acquire()
		if !ok {
			continue
		}
		f := p.At(slot)
		*f = Flash{Pos: at, Radius: radius * 0.5, Alpha: parameter.FlashStartAlpha}
		anim.Add(tween.Spec{
			Duration: duration,
			Delay:    time.Duration(i) * parameter.FlashRingDelay,
			Ease:     tween.QuadOut,
			Step: func(e float64) {
				f.Scale = scale * e
				f.Alpha = parameter.FlashStartAlpha * (1 - e)
			},
			OnComplete: func() { p.Release(slot) },
		})
		started++
	}
	return started
}
