// Package tween runs fire-and-forget timed animations advanced by the game tick
package tween

import (
	"time"

	"github.com/tanema/gween"
)

// ID identifies a scheduled tween, zero is never issued
type ID uint64

// Spec describes one animation
// Step receives the eased fraction each update, exactly 1 on the final update, OnComplete fires once after the final Step
// A cancelled tween fires neither again
type Spec struct {
	Duration   time.Duration
	Delay      time.Duration
	Ease       EaseFunc
	Step       func(f float64)
	OnComplete func()
}

// Animator is the animation collaborator consumed by gameplay code
type Animator interface {
	Add(spec Spec) ID
	Cancel(id ID)
}

type entry struct {
	id   ID
	spec Spec
	// tw maps run time in seconds to the eased fraction
	tw      *gween.Tween
	elapsed time.Duration
	started bool
	dead    bool
}

// Runner is a tick-driven Animator, callbacks run inside Update on the caller's goroutine
type Runner struct {
	next    ID
	entries []*entry
	index   map[ID]*entry
	// pending holds tweens added during Update, merged after the pass
	pending  []*entry
	updating bool
}

var _ Animator = (*Runner)(nil)

// NewRunner creates an idle runner
func NewRunner() *Runner {
	return &Runner{index: make(map[ID]*entry)}
}

// Add schedules a tween, zero durations complete on the next Update
func (r *Runner) Add(spec Spec) ID {
	if spec.Ease == nil {
		spec.Ease = Linear
	}
	r.next++
	e := &entry{
		id:   r.next,
		spec: spec,
		tw:   gween.New(0, 1, float32(spec.Duration.Seconds()), spec.Ease),
	}
	r.index[e.id] = e
	if r.updating {
		r.pending = append(r.pending, e)
	} else {
		r.entries = append(r.entries, e)
	}
	return e.id
}

// Cancel stops a tween without completing it, unknown or finished ids are ignored
func (r *Runner) Cancel(id ID) {
	if e, ok := r.index[id]; ok {
		e.dead = true
		delete(r.index, id)
	}
}

// Running reports whether id is scheduled and not yet finished or cancelled
func (r *Runner) Running(id ID) bool {
	_, ok := r.index[id]
	return ok
}

// Active returns the number of scheduled tweens
func (r *Runner) Active() int {
	return len(r.index)
}

// Clear cancels everything
func (r *Runner) Clear() {
	for _, e := range r.entries {
		e.dead = true
	}
	for _, e := range r.pending {
		e.dead = true
	}
	clear(r.index)
}

// Update advances every tween by dt in insertion order
func (r *Runner) Update(dt time.Duration) {
	r.updating = true
	for _, e := range r.entries {
		if e.dead {
			continue
		}
		r.advance(e, dt)
	}
	r.updating = false

	live := r.entries[:0]
	for _, e := range r.entries {
		if !e.dead {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = append(live, r.pending...)
	r.pending = r.pending[:0]
}

func (r *Runner) advance(e *entry, dt time.Duration) {
	e.elapsed += dt
	if e.elapsed < e.spec.Delay {
		return
	}
	e.started = true

	run := e.elapsed - e.spec.Delay
	f, done := e.tw.Set(float32(run.Seconds()))
	if e.spec.Duration <= 0 {
		f, done = 1, true
	}
	if e.spec.Step != nil {
		e.spec.Step(float64(f))
	}
	if !done {
		return
	}

	e.dead = true
	delete(r.index, e.id)
	if e.spec.OnComplete != nil {
		e.spec.OnComplete()
	}
}
