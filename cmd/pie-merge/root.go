package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/pie-merge/config"
)

// rootOptions are the persistent flags shared by subcommands
type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "pie-merge",
		Short:        "Drop pies, merge matching ones, keep the ceiling clear",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML configuration file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write debug logs to "+logDir+"/"+logFileName)

	cmd.AddCommand(newPlayCmd(opts), newSimCmd(opts))
	return cmd
}

// prepare loads configuration and starts logging, close must be called on exit
func (o *rootOptions) prepare() (*config.Config, zerolog.Logger, func(), error) {
	logger, f := setupLogging(o.debug)
	closeLog := func() {
		if f != nil {
			f.Close()
		}
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		closeLog()
		return nil, logger, func() {}, errors.Wrap(err, "load configuration")
	}
	logger.Debug().
		Str("config", o.configPath).
		Str("stress_mode", cfg.Stress.Mode).
		Int("max_touches", cfg.Stress.MaxTouches).
		Msg("configuration loaded")
	return cfg, logger, closeLog, nil
}
