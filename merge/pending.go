package merge

import (
	"github.com/lixenwraith/pie-merge/audio"
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/parameter"
	"github.com/lixenwraith/pie-merge/piece"
	"github.com/lixenwraith/pie-merge/tween"
)

// phase tracks one merge through its barrier
type phase uint8

const (
	phaseShrinkingBoth phase = iota
	phaseBarrierMet
	phaseSpawning
	phaseDone
	phaseCancelled
)

func (p phase) String() string {
	switch p {
	case phaseShrinkingBoth:
		return "shrinking_both"
	case phaseBarrierMet:
		return "barrier_met"
	case phaseSpawning:
		return "spawning"
	case phaseDone:
		return "done"
	case phaseCancelled:
		return "cancelled"
	}
	return "unknown"
}

// pendingMerge joins the two shrink tweens of a pair
type pendingMerge struct {
	id     uint64
	pieces [2]*piece.Piece
	tier   int
	mid    core.Vec2
	tweens [2]tween.ID
	// angles holds the pre-merge rotation restored on cancel
	angles [2]float64
	done   [2]bool
	phase  phase
}

// begin locks the pair, freezes both bodies and starts the shrink tweens
func (e *Engine) begin(a, b *piece.Piece) {
	e.nextID++
	pm := &pendingMerge{
		id:     e.nextID,
		pieces: [2]*piece.Piece{a, b},
		tier:   a.Tier,
	}

	for i, p := range pm.pieces {
		pm.angles[i] = p.Angle
		p.IsMerging = true
		e.deps.World.SetStatic(p.ID, true)
		if pos, ok := e.deps.World.Position(p.ID); ok {
			p.Pos = pos
		}
		e.pending[p.ID] = pm
	}
	pm.mid = a.Pos.Mid(b.Pos)

	e.deps.Audio.Play(audio.SoundMerge, audio.Params{Volume: parameter.MergeVolume})

	spin := [2]float64{parameter.MergeSpinDegrees, -parameter.MergeSpinDegrees}
	for i, p := range pm.pieces {
		from := p.Pos
		startAngle := pm.angles[i]
		pm.tweens[i] = e.deps.Animator.Add(tween.Spec{
			Duration: parameter.MergeShrinkDuration,
			Ease:     tween.SineInOut,
			Step: func(f float64) {
				p.Pos = from.Lerp(pm.mid, f)
				p.Scale = 1 - f
				p.Angle = startAngle + spin[i]*f
			},
			OnComplete: func() { e.join(pm, i) },
		})
	}

	e.logger.Debug().
		Uint64("merge", pm.id).
		Int("tier", pm.tier).
		Uint64("a", uint64(a.ID)).
		Uint64("b", uint64(b.ID)).
		Msg("merge started")
}

// join records one finished tween and completes the merge when both are in
func (e *Engine) join(pm *pendingMerge, i int) {
	if pm.phase != phaseShrinkingBoth {
		return
	}
	pm.done[i] = true
	if !pm.done[0] || !pm.done[1] {
		return
	}
	pm.phase = phaseBarrierMet
	e.complete(pm)
}

// complete replaces the pair with its product, only reachable from the barrier
func (e *Engine) complete(pm *pendingMerge) {
	for _, p := range pm.pieces {
		if !core.Assert(e.deps.Pieces.Has(p.ID), "merge %d barrier on dead piece %d", pm.id, p.ID) {
			e.abort(pm, true)
			return
		}
	}
	pm.phase = phaseSpawning

	for _, p := range pm.pieces {
		delete(e.pending, p.ID)
		e.destroy(p)
	}

	res := Result{Tier: pm.tier, Pos: pm.mid}
	next, ok := e.deps.Catalog.Next(pm.tier)
	if !ok {
		res.Terminal = true
		res.Award = e.cfg.TerminalBonus
	} else {
		res.Award = int64(pm.tier+1) * e.cfg.PointsPerTier
		res.Product = e.spawn(next.Index, pm.mid)
		res.NewHighest = e.deps.Progression.RecordCreated(next.Index)
		res.Announce = e.deps.Progression.MarkAnnounced(next.Index)
	}
	e.score += res.Award
	e.completed++

	if e.deps.Flashes != nil {
		radius := e.deps.Catalog.TierAt(pm.tier).Radius
		if res.Product != nil {
			radius = e.deps.Catalog.TierAt(res.Product.Tier).Radius
		}
		e.deps.Flashes.Burst(e.deps.Animator, pm.mid, radius, pm.tier)
	}

	pm.phase = phaseDone
	e.logger.Debug().
		Uint64("merge", pm.id).
		Int("tier", pm.tier).
		Bool("terminal", res.Terminal).
		Int64("award", res.Award).
		Int64("score", e.score).
		Msg("merge completed")

	if e.hooks.Merged != nil {
		e.hooks.Merged(res)
	}
}

// spawn creates the product piece and pops it in
func (e *Engine) spawn(tier int, at core.Vec2) *piece.Piece {
	t := e.deps.Catalog.TierAt(tier)
	h := e.deps.World.AddCircle(at, t.Radius, e.cfg.Material)
	p := &piece.Piece{
		ID:    h,
		Tier:  tier,
		Pos:   at,
		Scale: parameter.MergePopStartScale,
	}
	e.deps.Pieces.Add(p)

	e.deps.Animator.Add(tween.Spec{
		Duration: parameter.MergePopDuration,
		Ease:     tween.BackOut,
		Step: func(f float64) {
			p.Scale = tween.Lerp(parameter.MergePopStartScale, 1, f)
		},
	})

	if e.hooks.Spawned != nil {
		e.hooks.Spawned(p)
	}
	return p
}

func (e *Engine) destroy(p *piece.Piece) {
	e.deps.World.Remove(p.ID)
	e.deps.Pieces.Remove(p.ID)
	if e.hooks.Destroyed != nil {
		e.hooks.Destroyed(p)
	}
}

// abort cancels both tweens; with restore the live partners go back to normal physics
func (e *Engine) abort(pm *pendingMerge, restore bool) {
	if pm.phase != phaseShrinkingBoth && pm.phase != phaseBarrierMet {
		return
	}
	pm.phase = phaseCancelled
	for i, p := range pm.pieces {
		e.deps.Animator.Cancel(pm.tweens[i])
		delete(e.pending, p.ID)
		if !restore || !e.deps.Pieces.Has(p.ID) {
			continue
		}
		p.IsMerging = false
		p.Scale = 1
		p.Angle = pm.angles[i]
		e.deps.World.SetStatic(p.ID, false)
		if pos, ok := e.deps.World.Position(p.ID); ok {
			p.Pos = pos
		}
	}
	e.logger.Debug().Uint64("merge", pm.id).Bool("restore", restore).Msg("merge cancelled")
}
