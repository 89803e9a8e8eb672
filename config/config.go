// Package config loads tunables from defaults, an optional TOML file and PIE_MERGE_ environment variables
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/lixenwraith/pie-merge/input"
	"github.com/lixenwraith/pie-merge/parameter"
	"github.com/lixenwraith/pie-merge/stress"
)

// EnvPrefix namespaces environment overrides, e.g. PIE_MERGE_STRESS_MAX_TOUCHES
const EnvPrefix = "PIE_MERGE"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Stress      StressConfig      `mapstructure:"stress"`
	Merge       MergeConfig       `mapstructure:"merge"`
	Progression ProgressionConfig `mapstructure:"progression"`
	Arena       ArenaConfig       `mapstructure:"arena"`
	Physics     PhysicsConfig     `mapstructure:"physics"`
	Effects     EffectsConfig     `mapstructure:"effects"`
	Audio       AudioConfig       `mapstructure:"audio"`
	// Keys rebinds printable keys to actions, e.g. x = "quit"
	Keys map[string]string `mapstructure:"keys"`
}

type StressConfig struct {
	StableTouch time.Duration `mapstructure:"stable_touch"`
	MaxTouches  int           `mapstructure:"max_touches"`
	Segments    int           `mapstructure:"segments"`
	Mode        string        `mapstructure:"mode"`
}

type MergeConfig struct {
	PointsPerTier int64   `mapstructure:"points_per_tier"`
	TerminalBonus int64   `mapstructure:"terminal_bonus"`
	ZoneEnabled   bool    `mapstructure:"zone_enabled"`
	ZoneY         float64 `mapstructure:"zone_y"`
}

type ProgressionConfig struct {
	DropsToUnlock   int `mapstructure:"drops_to_unlock"`
	MaxDroppableCap int `mapstructure:"max_droppable_cap"`
}

type ArenaConfig struct {
	Width      float64 `mapstructure:"width"`
	Height     float64 `mapstructure:"height"`
	WallOffset float64 `mapstructure:"wall_offset"`
	CeilingY   float64 `mapstructure:"ceiling_y"`
	FloorY     float64 `mapstructure:"floor_y"`
}

type PhysicsConfig struct {
	Gravity     float64 `mapstructure:"gravity"`
	Friction    float64 `mapstructure:"friction"`
	Restitution float64 `mapstructure:"restitution"`
	Density     float64 `mapstructure:"density"`
	Iterations  int     `mapstructure:"iterations"`
	TickRate    int     `mapstructure:"tick_rate"`
}

type EffectsConfig struct {
	FlashPoolCapacity int      `mapstructure:"flash_pool_capacity"`
	Announcements     []string `mapstructure:"announcements"`
}

type AudioConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	MasterVolume float64 `mapstructure:"master_volume"`
	SampleRate   int     `mapstructure:"sample_rate"`
}

// TickInterval is the fixed simulation step
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Physics.TickRate)
}

// StressMode parses the configured stress mode, Validate guarantees success
func (c *Config) StressMode() stress.Mode {
	m, _ := stress.ParseMode(c.Stress.Mode)
	return m
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stress.stable_touch", parameter.StableTouchDuration)
	v.SetDefault("stress.max_touches", parameter.MaxCeilingTouches)
	v.SetDefault("stress.segments", parameter.GaugeSegments)
	v.SetDefault("stress.mode", stress.ModeLive.String())

	v.SetDefault("merge.points_per_tier", parameter.PointsPerTier)
	v.SetDefault("merge.terminal_bonus", parameter.TerminalMergeBonus)
	v.SetDefault("merge.zone_enabled", parameter.MergeZoneEnabled)
	v.SetDefault("merge.zone_y", parameter.MergeZoneY)

	v.SetDefault("progression.drops_to_unlock", parameter.DropsToUnlockNextTier)
	v.SetDefault("progression.max_droppable_cap", parameter.MaxDroppableTierCap)

	v.SetDefault("arena.width", parameter.ArenaWidth)
	v.SetDefault("arena.height", parameter.ArenaHeight)
	v.SetDefault("arena.wall_offset", parameter.WallOffset)
	v.SetDefault("arena.ceiling_y", parameter.CeilingY)
	v.SetDefault("arena.floor_y", parameter.FloorY)

	v.SetDefault("physics.gravity", parameter.Gravity)
	v.SetDefault("physics.friction", parameter.PieceFriction)
	v.SetDefault("physics.restitution", parameter.PieceRestitution)
	v.SetDefault("physics.density", parameter.PieceDensity)
	v.SetDefault("physics.iterations", parameter.SolverIterations)
	v.SetDefault("physics.tick_rate", parameter.TickRate)

	v.SetDefault("effects.flash_pool_capacity", parameter.FlashPoolCapacity)
	v.SetDefault("effects.announcements", []string{})

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.master_volume", 1.0)
	v.SetDefault("audio.sample_rate", parameter.AudioSampleRate)

	v.SetDefault("keys", map[string]string{})
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the built-in configuration with environment overrides ignored
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(errors.Wrap(err, "default configuration"))
	}
	return cfg
}

// Load reads defaults, then path if non-empty, then the environment
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.Wrapf(ErrInvalid, format, args...)
	}

	if c.Stress.MaxTouches <= 0 {
		return invalid("stress.max_touches must be positive, got %d", c.Stress.MaxTouches)
	}
	if c.Stress.StableTouch < 0 {
		return invalid("stress.stable_touch must not be negative, got %s", c.Stress.StableTouch)
	}
	if _, err := stress.ParseMode(c.Stress.Mode); err != nil {
		return invalid("stress.mode: %v", err)
	}
	if c.Merge.PointsPerTier < 0 || c.Merge.TerminalBonus < 0 {
		return invalid("merge awards must not be negative")
	}
	if c.Progression.DropsToUnlock <= 0 {
		return invalid("progression.drops_to_unlock must be positive, got %d", c.Progression.DropsToUnlock)
	}
	if c.Progression.MaxDroppableCap < 0 {
		return invalid("progression.max_droppable_cap must not be negative, got %d", c.Progression.MaxDroppableCap)
	}
	a := c.Arena
	if a.Width <= 2*a.WallOffset || a.WallOffset < 0 {
		return invalid("arena.wall_offset %v leaves no room in width %v", a.WallOffset, a.Width)
	}
	if a.CeilingY <= 0 || a.FloorY <= a.CeilingY || a.FloorY > a.Height {
		return invalid("arena requires 0 < ceiling_y < floor_y <= height, got %v, %v, %v", a.CeilingY, a.FloorY, a.Height)
	}
	if c.Physics.TickRate <= 0 || c.Physics.Iterations <= 0 {
		return invalid("physics.tick_rate and physics.iterations must be positive")
	}
	if c.Effects.FlashPoolCapacity < 0 {
		return invalid("effects.flash_pool_capacity must not be negative")
	}
	if err := input.DefaultKeyTable().Apply(c.Keys); err != nil {
		return invalid("keys: %v", err)
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return invalid("audio.master_volume must be within [0,1], got %v", c.Audio.MasterVolume)
	}
	return nil
}
