package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/pie-merge/arena"
	"github.com/lixenwraith/pie-merge/config"
	"github.com/lixenwraith/pie-merge/event"
)

// simOptions drive the headless bot
type simOptions struct {
	ticks     int
	seed      int64
	dropEvery int
	rounds    int
}

func newSimCmd(opts *rootOptions) *cobra.Command {
	so := simOptions{}
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a headless bot that drops at random and prints the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closeLog, err := opts.prepare()
			if err != nil {
				return err
			}
			defer closeLog()

			if so.dropEvery <= 0 {
				return errors.Errorf("--drop-every must be positive, got %d", so.dropEvery)
			}
			s, err := arena.New(cfg, arena.Options{Rand: newRand(so.seed), Logger: logger})
			if err != nil {
				return err
			}
			return runSim(cmd.OutOrStdout(), cfg, s, so)
		},
	}
	so.addFlags(cmd.Flags())
	return cmd
}

func (so *simOptions) addFlags(fs *pflag.FlagSet) {
	fs.IntVar(&so.ticks, "ticks", 60*60*5, "simulation ticks to run")
	fs.Int64Var(&so.seed, "seed", 1, "random seed for drops and shuffles")
	fs.IntVar(&so.dropEvery, "drop-every", 45, "ticks between drop attempts")
	fs.IntVar(&so.rounds, "rounds", 1, "rounds to play before stopping")
}

// runSim plays until the tick budget or round count runs out
func runSim(out io.Writer, cfg *config.Config, s *arena.Session, so simOptions) error {
	rng := newRand(so.seed + 1)
	step := cfg.TickInterval()
	a := cfg.Arena

	s.Start()
	round := 1
	drops, merges := 0, 0
	for tick := 0; tick < so.ticks; tick++ {
		if tick%so.dropEvery == 0 {
			x := a.WallOffset + rng.Float64()*(a.Width-2*a.WallOffset)
			if s.Drop(x, a.CeilingY+1) {
				drops++
			}
		}
		s.Tick(step)

		for _, ev := range s.Events().Consume() {
			switch ev.Type {
			case event.EventMerged:
				merges++
			case event.EventTierDiscovered:
				p := ev.Payload.(event.TierPayload)
				fmt.Fprintf(out, "round %d tick %d: discovered %s (tier %d)\n", round, tick, p.Name, p.Tier)
			case event.EventGameOver:
				p := ev.Payload.(event.GameOverPayload)
				fmt.Fprintf(out, "round %d over at tick %d: score %d, drops %d, merges %d\n", round, tick, p.FinalScore, drops, merges)
				if round >= so.rounds {
					return nil
				}
				round++
				drops, merges = 0, 0
				s.Restart()
			}
		}
	}

	fmt.Fprintf(out, "round %d stopped after %d ticks: state %s, score %d, drops %d, merges %d\n",
		round, so.ticks, s.State(), s.Score(), drops, merges)
	for _, line := range s.Registry().Lines() {
		fmt.Fprintf(out, "  %-26s %v\n", line.Key, line.Value)
	}
	return nil
}
