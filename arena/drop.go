package arena

import (
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/event"
	"github.com/lixenwraith/pie-merge/parameter"
	"github.com/lixenwraith/pie-merge/piece"
	"github.com/lixenwraith/pie-merge/tween"
)

// Drop handles a pointer release at (x, y), returns false when the request is ignored
func (s *Session) Drop(x, y float64) bool {
	if !s.machine.In(stateActive) || s.clock.IsPaused() {
		return false
	}
	if y < s.cfg.Arena.CeilingY || !s.dropper.visible || s.dropping {
		return false
	}

	tier := s.dropper.tier
	target := s.clampDropX(tier, x)
	s.dropping = true

	from := s.dropper.x
	s.runner.Add(tween.Spec{
		Duration:   parameter.DropperGlideDuration,
		Ease:       tween.QuadOut,
		Step:       func(f float64) { s.dropper.x = tween.Lerp(from, target, f) },
		OnComplete: func() { s.release(tier, target) },
	})
	return true
}

// clampDropX keeps the whole circle of tier between the walls
func (s *Session) clampDropX(tier int, x float64) float64 {
	a := s.cfg.Arena
	r := s.catalog.TierAt(tier).Radius
	return core.Clamp(x, a.WallOffset+r, a.Width-a.WallOffset-r)
}

// release spawns the dropped piece and stages the next one
func (s *Session) release(tier int, x float64) {
	s.dropper.visible = false
	if !s.machine.In(stateActive) {
		s.dropping = false
		return
	}

	t := s.catalog.TierAt(tier)
	pos := core.V(x, s.cfg.Arena.CeilingY+parameter.SpawnOffset)
	h := s.world.AddCircle(pos, t.Radius, s.material())
	s.pieces.Add(&piece.Piece{
		ID:    h,
		Tier:  tier,
		Pos:   pos,
		IsNew: true,
		Scale: 1,
	})
	s.push(event.EventPieceDropped, event.DropPayload{Handle: h, Tier: tier, X: x})

	s.stage(s.prog.AdvanceCursor())
	s.dropping = false

	if s.prog.RecordDrop() {
		s.logger.Info().Int("max_droppable", s.prog.Snapshot().MaxDroppableTier).Msg("drop pool widened")
	}
}

// stage loads tier into the dropper and slides it in from above
func (s *Session) stage(tier int) {
	a := s.cfg.Arena
	r := s.catalog.TierAt(tier).Radius
	s.dropper = dropper{
		tier:    tier,
		x:       a.Width / 2,
		y:       -r,
		visible: true,
	}

	from, rest := -r, a.CeilingY-r-parameter.DropperRestGap
	s.runner.Add(tween.Spec{
		Duration: parameter.DropperEntryDuration,
		Ease:     tween.CubicOut,
		Step:     func(f float64) { s.dropper.y = tween.Lerp(from, rest, f) },
	})
	s.push(event.EventNextStaged, event.TierPayload{Tier: tier, Name: s.catalog.TierAt(tier).Name})
}
