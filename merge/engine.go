// Package merge turns equal-tier collisions into next-tier pieces
package merge

import (
	"cmp"
	"slices"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pie-merge/audio"
	"github.com/lixenwraith/pie-merge/catalog"
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/effect"
	"github.com/lixenwraith/pie-merge/parameter"
	"github.com/lixenwraith/pie-merge/physics"
	"github.com/lixenwraith/pie-merge/piece"
	"github.com/lixenwraith/pie-merge/progression"
	"github.com/lixenwraith/pie-merge/tween"
)

// Config holds scoring and eligibility rules
type Config struct {
	PointsPerTier int64
	TerminalBonus int64

	// ZoneEnabled rejects merges whose contact point is not below ZoneY
	ZoneEnabled bool
	ZoneY       float64

	Material physics.Material
}

// Result describes one completed merge
type Result struct {
	Tier     int // consumed tier
	Terminal bool
	Product  *piece.Piece // nil for terminal merges
	Pos      core.Vec2
	Award    int64

	// NewHighest is set when the product raised the highest tier ever created
	NewHighest bool
	// Announce is set the first time the product tier appears
	Announce bool
}

// Hooks let the owner observe piece lifecycle without the engine knowing about stress or events
type Hooks struct {
	Destroyed func(p *piece.Piece)
	Spawned   func(p *piece.Piece)
	Merged    func(r Result)
}

// Deps are the collaborators an engine mutates
type Deps struct {
	Catalog     *catalog.Catalog
	Pieces      *piece.Collection
	World       physics.World
	Animator    tween.Animator
	Progression *progression.Controller
	Audio       audio.Player
	// Flashes may be nil to disable flash rings
	Flashes *effect.FlashPool
}

// Engine owns in-flight merges and the session score
// Single-threaded: every method runs on the tick goroutine
type Engine struct {
	cfg   Config
	deps  Deps
	hooks Hooks

	pending map[core.Handle]*pendingMerge
	nextID  uint64

	score     int64
	completed int

	logger zerolog.Logger
}

func New(cfg Config, deps Deps, hooks Hooks, logger zerolog.Logger) *Engine {
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}
	return &Engine{
		cfg:     cfg,
		deps:    deps,
		hooks:   hooks,
		pending: make(map[core.Handle]*pendingMerge),
		logger:  logger.With().Str("component", "merge").Logger(),
	}
}

// OnCollisionStart handles one collision-start pair, returns true if a merge began
func (e *Engine) OnCollisionStart(p physics.Pair) bool {
	if !p.Pieces() {
		return false
	}
	a, okA := e.deps.Pieces.Get(p.A.Handle)
	b, okB := e.deps.Pieces.Get(p.B.Handle)
	if !okA || !okB || a == b {
		return false
	}

	e.settle(a, b)

	if !e.eligible(a, b, p) {
		return false
	}
	e.begin(a, b)
	return true
}

// settle clears the fresh-drop flag on first piece contact
func (e *Engine) settle(a, b *piece.Piece) {
	if !a.IsNew && !b.IsNew {
		return
	}
	a.IsNew = false
	b.IsNew = false
	e.deps.Audio.Play(audio.SoundSquish, audio.Params{Volume: parameter.SquishVolume})
}

func (e *Engine) eligible(a, b *piece.Piece, p physics.Pair) bool {
	if a.Tier != b.Tier {
		return false
	}
	if a.IsMerging || b.IsMerging || a.Popping || b.Popping {
		return false
	}
	if e.cfg.ZoneEnabled {
		if !p.HasContact || p.Contact.Y <= e.cfg.ZoneY {
			return false
		}
	}
	return true
}

// Pending returns the number of in-flight merges
func (e *Engine) Pending() int {
	return len(e.pending) / 2
}

// Merging reports whether h takes part in an in-flight merge
func (e *Engine) Merging(h core.Handle) bool {
	_, ok := e.pending[h]
	return ok
}

// Score returns the total awarded this session
func (e *Engine) Score() int64 {
	return e.score
}

// Completed returns the number of merges that passed the barrier
func (e *Engine) Completed() int {
	return e.completed
}

// Cancel aborts the merge involving h; the surviving partner is released back to physics
func (e *Engine) Cancel(h core.Handle) {
	pm, ok := e.pending[h]
	if !ok {
		return
	}
	e.abort(pm, true)
}

// CancelAll aborts every in-flight merge and leaves pieces frozen
func (e *Engine) CancelAll() {
	for _, pm := range e.pendingList() {
		e.abort(pm, false)
	}
}

// pendingList returns each pending merge once, oldest first
func (e *Engine) pendingList() []*pendingMerge {
	seen := make(map[uint64]bool, len(e.pending)/2)
	out := make([]*pendingMerge, 0, len(e.pending)/2)
	for _, pm := range e.pending {
		if !seen[pm.id] {
			seen[pm.id] = true
			out = append(out, pm)
		}
	}
	slices.SortFunc(out, func(a, b *pendingMerge) int { return cmp.Compare(a.id, b.id) })
	return out
}
