package arena

import (
	"time"

	"github.com/lixenwraith/pie-merge/audio"
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/event"
	"github.com/lixenwraith/pie-merge/parameter"
	"github.com/lixenwraith/pie-merge/piece"
	"github.com/lixenwraith/pie-merge/tween"
)

// enterTerminal freezes the board and starts the removal animation
func (s *Session) enterTerminal() {
	s.finalScore = s.merges.Score()
	s.dropper.visible = false
	s.merges.CancelAll()
	s.pieces.Each(func(p *piece.Piece) {
		s.world.SetStatic(p.ID, true)
	})

	s.audio.Play(audio.SoundGameOver, audio.Params{Volume: parameter.GameOverVolume})
	s.push(event.EventGameOverStarted, event.GameOverPayload{FinalScore: s.finalScore})
	s.logger.Info().
		Int64("score", s.finalScore).
		Int("pieces", s.pieces.Len()).
		Int("stable", s.stress.StableCount()).
		Msg("game over")

	s.runner.Add(tween.Spec{
		Duration:   parameter.GameOverTextFade,
		Ease:       tween.Linear,
		Step:       func(f float64) { s.gameOverAlpha = f },
		OnComplete: s.popAll,
	})
}

// popAll removes every remaining piece in shuffled order
func (s *Session) popAll() {
	ids := s.pieces.IDs()
	if len(ids) == 0 {
		s.finish()
		return
	}
	s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	s.popsLeft = len(ids)
	for i, h := range ids {
		p, ok := s.pieces.Get(h)
		if !ok {
			s.popsLeft--
			continue
		}
		p.Popping = true
		startScale, startAngle := p.Scale, p.Angle
		s.runner.Add(tween.Spec{
			Delay:    time.Duration(i) * parameter.GameOverPopDelay,
			Duration: parameter.GameOverPopTime,
			Ease:     tween.QuadOut,
			Step: func(f float64) {
				p.Scale = startScale * (1 - f)
				p.Angle = startAngle + parameter.GameOverPopSpin*f
			},
			OnComplete: func() { s.pop(p) },
		})
	}
	if s.popsLeft == 0 {
		s.finish()
	}
}

// pop destroys one piece at the end of its removal animation
func (s *Session) pop(p *piece.Piece) {
	if core.Assert(s.pieces.Has(p.ID), "terminal pop on dead piece %d", p.ID) {
		s.flashes.Burst(s.runner, p.Pos, s.catalog.TierAt(p.Tier).Radius, 0)
		s.world.Remove(p.ID)
		s.pieces.Remove(p.ID)
		s.stress.Forget(p.ID)
	}
	s.popsLeft--
	if s.popsLeft == 0 {
		s.finish()
	}
}

// finish reports the final score and offers a restart
func (s *Session) finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.push(event.EventGameOver, event.GameOverPayload{FinalScore: s.finalScore})
	s.logger.Info().Int64("score", s.finalScore).Msg("final score reported")
}
