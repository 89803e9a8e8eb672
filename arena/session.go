// Package arena owns one game session: the piece collection, the physics world and every rule engine wired to it
package arena

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pie-merge/audio"
	"github.com/lixenwraith/pie-merge/catalog"
	"github.com/lixenwraith/pie-merge/config"
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/effect"
	"github.com/lixenwraith/pie-merge/event"
	"github.com/lixenwraith/pie-merge/fsm"
	"github.com/lixenwraith/pie-merge/merge"
	"github.com/lixenwraith/pie-merge/parameter"
	"github.com/lixenwraith/pie-merge/physics"
	"github.com/lixenwraith/pie-merge/piece"
	"github.com/lixenwraith/pie-merge/progression"
	"github.com/lixenwraith/pie-merge/status"
	"github.com/lixenwraith/pie-merge/stress"
	"github.com/lixenwraith/pie-merge/tween"
)

// Options carries the optional collaborators of a session
type Options struct {
	Catalog *catalog.Catalog // nil: catalog.Default()
	World   physics.World    // nil: a physics.Space built from the config
	Audio   audio.Player     // nil: audio.Nop
	Rand    *rand.Rand       // nil: seeded from the wall clock
	Status  *status.Registry // nil: a private registry
	Logger  zerolog.Logger
}

// dropper is the staged piece waiting above the ceiling
type dropper struct {
	tier    int
	x, y    float64
	visible bool
}

// Session is the single owner of all game state
// Not safe for concurrent use: every method runs on the tick goroutine
type Session struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	world   physics.World
	audio   audio.Player
	rng     *rand.Rand
	logger  zerolog.Logger

	clock     *core.GameClock
	machine   *fsm.Machine[*Session]
	events    *event.Queue
	board     *status.Board
	registry  *status.Registry
	runner    *tween.Runner
	flashes   *effect.FlashPool
	announcer *effect.Announcer
	pieces    *piece.Collection
	stress    *stress.Monitor
	prog      *progression.Controller
	merges    *merge.Engine

	ceiling core.Handle
	sensor  core.Handle

	// collision pairs buffered during the physics step
	started []physics.Pair
	active  []physics.Pair
	ended   []physics.Pair

	dropper  dropper
	dropping bool
	breach   bool

	gameOverAlpha float64
	popsLeft      int
	finished      bool
	finalScore    int64

	lastStable   int
	lastSeverity int
	tick         uint64
}

// New builds a session in the Idle state
func New(cfg *config.Config, opts Options) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "session config")
	}

	s := &Session{
		cfg:     cfg,
		catalog: opts.Catalog,
		world:   opts.World,
		audio:   opts.Audio,
		rng:     opts.Rand,
		logger:  opts.Logger.With().Str("component", "arena").Logger(),
		clock:   core.NewGameClock(time.Unix(0, 0)),
		events:  event.NewQueue(parameter.EventQueueSize),
		runner:  tween.NewRunner(),
		pieces:  piece.NewCollection(),
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.audio == nil {
		s.audio = audio.Nop{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.world == nil {
		sc := physics.DefaultSpaceConfig()
		sc.Iterations = cfg.Physics.Iterations
		s.world = physics.NewSpace(sc)
	}
	s.registry = opts.Status
	if s.registry == nil {
		s.registry = status.NewRegistry()
	}
	s.board = status.NewBoard(s.registry)

	s.flashes = effect.NewFlashPool(cfg.Effects.FlashPoolCapacity)
	s.announcer = effect.NewAnnouncer(cfg.Effects.Announcements, s.rng, s.runner)
	s.stress = stress.New(stress.Config{
		StableDuration: cfg.Stress.StableTouch,
		MaxTouches:     cfg.Stress.MaxTouches,
		Segments:       cfg.Stress.Segments,
		Mode:           cfg.StressMode(),
	}, s.logger)
	s.newRound()

	s.buildArena()

	s.machine = newMachine()
	if err := s.machine.CompilePaths(); err != nil {
		return nil, errors.Wrap(err, "session state machine")
	}
	if err := s.machine.Init(s, stateIdle); err != nil {
		return nil, errors.Wrap(err, "session state machine")
	}
	s.publish()
	return s, nil
}

// buildArena configures bounds, the solid ceiling and the stress sensor
func (s *Session) buildArena() {
	a := s.cfg.Arena
	inner := a.Width - 2*a.WallOffset
	cx := a.Width / 2

	s.world.SetBounds(a.WallOffset, a.CeilingY, a.Width-a.WallOffset, a.FloorY)
	s.world.SetGravity(core.V(0, s.cfg.Physics.Gravity))
	s.ceiling = s.world.AddStaticRect(
		core.V(cx, a.CeilingY-parameter.CeilingThickness/2),
		inner, parameter.CeilingThickness, physics.KindBoundary)
	s.sensor = s.world.AddSensorRect(
		core.V(cx, a.CeilingY-1),
		inner, parameter.CeilingSensorHeight, physics.KindCeilingSensor)

	s.world.OnCollisionStart(func(pairs []physics.Pair) { s.started = append(s.started, pairs...) })
	s.world.OnCollisionActive(func(pairs []physics.Pair) { s.active = append(s.active, pairs...) })
	s.world.OnCollisionEnd(func(pairs []physics.Pair) { s.ended = append(s.ended, pairs...) })
}

// newRound replaces the per-round rule engines
func (s *Session) newRound() {
	s.prog = progression.New(progression.Config{
		DropsToUnlock: s.cfg.Progression.DropsToUnlock,
		Cap:           s.cfg.Progression.MaxDroppableCap,
	}, s.logger)

	s.merges = merge.New(merge.Config{
		PointsPerTier: s.cfg.Merge.PointsPerTier,
		TerminalBonus: s.cfg.Merge.TerminalBonus,
		ZoneEnabled:   s.cfg.Merge.ZoneEnabled,
		ZoneY:         s.cfg.Merge.ZoneY,
		Material:      s.material(),
	}, merge.Deps{
		Catalog:     s.catalog,
		Pieces:      s.pieces,
		World:       s.world,
		Animator:    s.runner,
		Progression: s.prog,
		Audio:       s.audio,
		Flashes:     s.flashes,
	}, merge.Hooks{
		Destroyed: func(p *piece.Piece) { s.stress.Forget(p.ID) },
		Merged:    s.onMerged,
	}, s.logger)
}

func (s *Session) material() physics.Material {
	return physics.Material{
		Friction:    s.cfg.Physics.Friction,
		Restitution: s.cfg.Physics.Restitution,
		Density:     s.cfg.Physics.Density,
	}
}

// reset empties the arena for a fresh round, runs on entering Active
func (s *Session) reset() {
	s.pieces.Each(func(p *piece.Piece) {
		s.world.Remove(p.ID)
	})
	s.pieces.Clear()
	s.runner.Clear()
	s.flashes.Reset()
	s.announcer.Reset()
	s.stress.Reset()
	s.newRound()

	s.started, s.active, s.ended = s.started[:0], s.active[:0], s.ended[:0]
	s.dropping = false
	s.breach = false
	s.gameOverAlpha = 0
	s.popsLeft = 0
	s.finished = false
	s.finalScore = 0
	s.lastStable = 0
	s.lastSeverity = 0

	s.push(event.EventScoreChanged, event.ScorePayload{})
	s.stage(s.prog.Staged())
}

// Start leaves Idle, returns false in any other state
func (s *Session) Start() bool {
	if !s.machine.HandleEvent(s, event.EventStart) {
		return false
	}
	s.publish()
	return true
}

// Restart begins a fresh round once the game is over
func (s *Session) Restart() bool {
	if !s.machine.HandleEvent(s, event.EventRestart) {
		return false
	}
	s.publish()
	return true
}

// Idle reports whether the session is waiting for its first Start
func (s *Session) Idle() bool {
	return s.machine.In(stateIdle)
}

// Pause freezes simulation and game time
func (s *Session) Pause() {
	s.clock.Pause()
	s.board.Paused.Store(true)
}

func (s *Session) Resume() {
	s.clock.Resume()
	s.board.Paused.Store(false)
}

func (s *Session) Paused() bool {
	return s.clock.IsPaused()
}

// Tick advances the session by one fixed step
func (s *Session) Tick(dt time.Duration) {
	if !s.clock.Advance(dt) {
		return
	}
	s.tick++

	if s.machine.In(stateActive) {
		s.world.Step(dt)
		s.syncPositions()
		s.dispatchCollisions()
	}

	s.runner.Update(dt)

	if s.machine.In(stateActive) {
		s.measureStress()
		if s.breach {
			s.machine.HandleEvent(s, event.EventCeilingBreach)
		}
	}

	s.machine.Update(s, dt)
	s.publish()
}

// syncPositions copies body positions onto pieces the animator does not own
func (s *Session) syncPositions() {
	s.pieces.Each(func(p *piece.Piece) {
		if p.IsMerging || p.Popping {
			return
		}
		if pos, ok := s.world.Position(p.ID); ok {
			p.Pos = pos
		}
	})
}

// dispatchCollisions routes start pairs to the merge engine and sensor pairs to the stress monitor
func (s *Session) dispatchCollisions() {
	now := s.clock.Now()
	for _, p := range s.started {
		if other, ok := p.With(physics.KindCeilingSensor); ok {
			s.touchSensor(other, now)
			continue
		}
		s.merges.OnCollisionStart(p)
	}
	for _, p := range s.active {
		if other, ok := p.With(physics.KindCeilingSensor); ok {
			s.touchSensor(other, now)
		}
	}
	for _, p := range s.ended {
		if other, ok := p.With(physics.KindCeilingSensor); ok {
			s.stress.Release(other.Handle)
		}
	}
	s.started, s.active, s.ended = s.started[:0], s.active[:0], s.ended[:0]
}

// touchSensor counts settled pieces only, fresh drops pass through the sensor on spawn
func (s *Session) touchSensor(c physics.Collidable, now time.Time) {
	if c.Kind != physics.KindPiece {
		return
	}
	p, ok := s.pieces.Get(c.Handle)
	if !ok || p.IsNew {
		return
	}
	s.stress.Touch(c.Handle, now)
}

func (s *Session) measureStress() {
	stable := s.stress.Recompute(s.clock.Now())
	severity := s.stress.Severity()
	if stable != s.lastStable || severity != s.lastSeverity {
		s.lastStable, s.lastSeverity = stable, severity
		s.push(event.EventStressChanged, event.StressPayload{Stable: stable, Severity: severity})
	}
	s.breach = s.stress.GameOver()
}

func (s *Session) onMerged(r merge.Result) {
	payload := event.MergePayload{Tier: r.Tier, Terminal: r.Terminal, Pos: r.Pos, Award: r.Award}
	if r.Product != nil {
		payload.Product = r.Product.ID
	}
	s.push(event.EventMerged, payload)
	s.push(event.EventScoreChanged, event.ScorePayload{Score: s.merges.Score(), Delta: r.Award})

	if r.Announce && r.Product != nil {
		t := s.catalog.TierAt(r.Product.Tier)
		s.announcer.Announce(t.Index, t.Name)
		s.push(event.EventTierDiscovered, event.TierPayload{Tier: t.Index, Name: t.Name})
		s.logger.Info().Int("tier", t.Index).Str("name", t.Name).Msg("new tier discovered")
	}
}

func (s *Session) push(et event.EventType, payload any) {
	s.events.Push(event.GameEvent{Type: et, Payload: payload, Tick: s.tick})
}

// Events returns the notification queue for the UI
func (s *Session) Events() *event.Queue {
	return s.events
}

// State returns the active state name
func (s *Session) State() string {
	return s.machine.StateName()
}

// Score returns the round score, frozen once the game is over
func (s *Session) Score() int64 {
	if s.machine.In(stateTerminal) {
		return s.finalScore
	}
	return s.merges.Score()
}

// Registry exposes the live metrics
func (s *Session) Registry() *status.Registry {
	return s.registry
}

// publish mirrors session counters into the status board
func (s *Session) publish() {
	b := s.board
	b.State.Store(s.State())
	b.Score.Store(s.Score())
	b.Tick.Store(int64(s.tick))
	b.Paused.Store(s.Paused())
	b.Pieces.Store(int64(s.pieces.Len()))
	b.MergesPending.Store(int64(s.merges.Pending()))
	b.MergesDone.Store(int64(s.merges.Completed()))
	b.StressStable.Store(int64(s.stress.StableCount()))
	b.StressRaw.Store(int64(s.stress.RawCount()))
	b.StressRatio.Set(s.stress.Ratio())
	st := s.prog.Snapshot()
	b.MaxDroppable.Store(int64(st.MaxDroppableTier))
	b.HighestTier.Store(int64(st.HighestTierEverCreated))
	b.Flashes.Store(int64(s.flashes.InUse()))
}
