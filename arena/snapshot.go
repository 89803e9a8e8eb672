package arena

import (
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/effect"
	"github.com/lixenwraith/pie-merge/piece"
)

// PieceView is a render copy of one piece
type PieceView struct {
	ID      core.Handle
	Tier    int
	Name    string
	Pos     core.Vec2
	Radius  float64
	Scale   float64
	Angle   float64
	Merging bool
}

// DropperView is a render copy of the staged piece
type DropperView struct {
	Tier    int
	Name    string
	Pos     core.Vec2
	Radius  float64
	Visible bool
}

// Snapshot is a copy of everything the UI shows
type Snapshot struct {
	State  string
	Paused bool
	Tick   uint64
	Score  int64

	Stable   int
	Raw      int
	Severity int
	Segments int

	GameOver      bool
	GameOverAlpha float64
	PlayAgain     bool
	FinalScore    int64

	Dropper   DropperView
	Droppable []int
	Pieces    []PieceView
	Flashes   []effect.Flash

	Announcement    effect.Announcement
	HasAnnouncement bool

	Arena ArenaView
}

// ArenaView carries the static geometry
type ArenaView struct {
	Width, Height float64
	Left, Right   float64
	CeilingY      float64
	FloorY        float64
}

// Snapshot copies the visible state
func (s *Session) Snapshot() Snapshot {
	a := s.cfg.Arena
	snap := Snapshot{
		State:         s.State(),
		Paused:        s.clock.IsPaused(),
		Tick:          s.tick,
		Score:         s.Score(),
		Stable:        s.stress.StableCount(),
		Raw:           s.stress.RawCount(),
		Severity:      s.stress.Severity(),
		Segments:      s.stress.Config().Segments,
		GameOver:      s.machine.In(stateTerminal),
		GameOverAlpha: s.gameOverAlpha,
		PlayAgain:     s.finished,
		Droppable:     s.prog.Droppable(),
		Flashes:       s.flashes.Active(),
		Arena: ArenaView{
			Width:    a.Width,
			Height:   a.Height,
			Left:     a.WallOffset,
			Right:    a.Width - a.WallOffset,
			CeilingY: a.CeilingY,
			FloorY:   a.FloorY,
		},
	}
	if snap.GameOver {
		snap.FinalScore = s.finalScore
	}

	dt := s.catalog.TierAt(s.dropper.tier)
	snap.Dropper = DropperView{
		Tier:    dt.Index,
		Name:    dt.Name,
		Pos:     core.V(s.dropper.x, s.dropper.y),
		Radius:  dt.Radius,
		Visible: s.dropper.visible,
	}

	snap.Pieces = make([]PieceView, 0, s.pieces.Len())
	s.pieces.Each(func(p *piece.Piece) {
		t := s.catalog.TierAt(p.Tier)
		snap.Pieces = append(snap.Pieces, PieceView{
			ID:      p.ID,
			Tier:    p.Tier,
			Name:    t.Name,
			Pos:     p.Pos,
			Radius:  t.Radius,
			Scale:   p.Scale,
			Angle:   p.Angle,
			Merging: p.IsMerging,
		})
	})

	snap.Announcement, snap.HasAnnouncement = s.announcer.Current()
	return snap
}
