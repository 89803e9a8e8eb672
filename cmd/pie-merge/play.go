package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/pie-merge/arena"
	"github.com/lixenwraith/pie-merge/audio"
	"github.com/lixenwraith/pie-merge/catalog"
	"github.com/lixenwraith/pie-merge/config"
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/event"
	"github.com/lixenwraith/pie-merge/input"
	"github.com/lixenwraith/pie-merge/parameter"
	"github.com/lixenwraith/pie-merge/render"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var (
		mute bool
		seed int64
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal, click to drop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closeLog, err := opts.prepare()
			if err != nil {
				return err
			}
			defer closeLog()
			return runPlay(cmd.Context(), cfg, logger, mute, seed)
		},
	}
	cmd.Flags().BoolVar(&mute, "mute", false, "start with sound muted")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock")
	return cmd
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func runPlay(parent context.Context, cfg *config.Config, logger zerolog.Logger, mute bool, seed int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	core.SetCrashCleanup(screen.Fini)
	screen.EnableMouse()
	screen.HideCursor()

	sm := audio.NewSoundManager(audio.Config{
		Enabled:      cfg.Audio.Enabled,
		MasterVolume: cfg.Audio.MasterVolume,
		SampleRate:   cfg.Audio.SampleRate,
	}, logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, continuing silent")
	}
	defer sm.Cleanup()
	sm.SetMuted(mute)

	keys := input.DefaultKeyTable()
	if err := keys.Apply(cfg.Keys); err != nil {
		screen.Fini()
		return errors.Wrap(err, "key bindings")
	}

	cat := catalog.Default()
	session, err := arena.New(cfg, arena.Options{
		Catalog: cat,
		Audio:   sm,
		Rand:    newRand(seed),
		Logger:  logger,
	})
	if err != nil {
		screen.Fini()
		return err
	}

	g := &game{
		screen:   screen,
		session:  session,
		renderer: render.NewRenderer(screen, cfg.Arena.Width, cfg.Arena.Height, cat.TierCount()),
		sound:    sm,
		step:     cfg.TickInterval(),
		input:    input.NewMachine(keys),
		logger:   logger,
	}

	eg, ctx := errgroup.WithContext(parent)
	events := make(chan tcell.Event, 256)
	eg.Go(func() error {
		defer func() { core.HandleCrash(recover()) }()
		return pollInput(ctx, screen, events)
	})
	eg.Go(func() error {
		defer func() { core.HandleCrash(recover()) }()
		// Fini unblocks the poller
		defer screen.Fini()
		return g.loop(ctx, events)
	})
	return eg.Wait()
}

// pollInput forwards terminal events until the screen is finalized
func pollInput(ctx context.Context, screen tcell.Screen, out chan<- tcell.Event) error {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

// game binds the session to the terminal, all fields are touched only by the loop goroutine
type game struct {
	screen   tcell.Screen
	session  *arena.Session
	renderer *render.Renderer
	sound    *audio.SoundManager
	step     time.Duration
	input    *input.Machine
	logger   zerolog.Logger

	dropped uint64
}

// loop runs fixed simulation steps paced by the frame ticker
func (g *game) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	last := time.Now()
	var acc time.Duration
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if g.handle(ev) {
				return nil
			}

		case now := <-ticker.C:
			acc += now.Sub(last)
			last = now
			for n := 0; acc >= g.step && n < parameter.MaxCatchUpTicks; n++ {
				g.session.Tick(g.step)
				acc -= g.step
			}
			if acc > g.step {
				acc = 0
			}
			g.drainEvents()
			g.renderer.Draw(g.session.Snapshot())
		}
	}
}

// handle applies one input event, returns true to quit
func (g *game) handle(ev tcell.Event) bool {
	in := g.input.Process(ev)
	switch in.Type {
	case input.IntentQuit:
		return true
	case input.IntentResize:
		g.screen.Sync()
		g.renderer.Resize(in.Width, in.Height)
	case input.IntentDrop:
		if g.session.Idle() {
			g.session.Start()
			return false
		}
		p := g.renderer.ToArena(in.X, in.Y)
		g.session.Drop(p.X, p.Y)
	case input.IntentStart:
		g.session.Start()
	case input.IntentRestart:
		g.session.Restart()
	case input.IntentToggleMute:
		muted := g.sound.ToggleMute()
		g.logger.Debug().Bool("muted", muted).Msg("mute toggled")
	case input.IntentTogglePause:
		if g.session.Paused() {
			g.session.Resume()
		} else {
			g.session.Pause()
		}
	case input.IntentToggleStats:
		g.renderer.ToggleStats(g.session.Registry())
	}
	return false
}

// drainEvents logs session notifications
func (g *game) drainEvents() {
	q := g.session.Events()
	if d := q.Dropped(); d > g.dropped {
		g.logger.Warn().Uint64("lost", d-g.dropped).Msg("session events overwritten before drain")
		g.dropped = d
	}
	for _, ev := range q.Consume() {
		switch p := ev.Payload.(type) {
		case event.TierPayload:
			g.logger.Debug().Str("event", ev.Type.String()).Int("tier", p.Tier).Str("name", p.Name).Msg("session event")
		case event.GameOverPayload:
			g.logger.Info().Str("event", ev.Type.String()).Int64("score", p.FinalScore).Msg("session event")
		default:
			g.logger.Debug().Str("event", ev.Type.String()).Uint64("tick", ev.Tick).Msg("session event")
		}
	}
}
