// Package stress measures debounced ceiling contact and exposes the game-over predicate
package stress

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pie-merge/core"
)

// Mode selects how the reported count follows the stable count
type Mode uint8

const (
	// ModeLive reports the current stable count, it rises and falls freely
	ModeLive Mode = iota
	// ModeHighWater only rises, dropping to zero once no body touches the sensor
	ModeHighWater
)

func (m Mode) String() string {
	if m == ModeHighWater {
		return "high_water"
	}
	return "live"
}

// ParseMode accepts "live" or "high_water"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "live":
		return ModeLive, nil
	case "high_water", "highwater", "high-water":
		return ModeHighWater, nil
	}
	return ModeLive, errors.Errorf("unknown stress mode %q", s)
}

// Config parameterizes the monitor
type Config struct {
	StableDuration time.Duration
	MaxTouches     int
	Segments       int
	Mode           Mode
}

// Monitor tracks which bodies touch the ceiling sensor and since when
// It reads piece identity only and never mutates the piece collection
type Monitor struct {
	cfg     Config
	records map[core.Handle]time.Time

	stable   int
	reported int

	logger zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Monitor {
	core.Assert(cfg.MaxTouches > 0, "stress max touches must be positive, got %d", cfg.MaxTouches)
	if cfg.Segments <= 0 {
		cfg.Segments = cfg.MaxTouches
	}
	return &Monitor{
		cfg:     cfg,
		records: make(map[core.Handle]time.Time),
		logger:  logger.With().Str("component", "stress").Logger(),
	}
}

// Touch starts tracking h at now, returns false if h is already touching
func (m *Monitor) Touch(h core.Handle, now time.Time) bool {
	if _, ok := m.records[h]; ok {
		return false
	}
	m.records[h] = now
	return true
}

// Release ends contact for h
func (m *Monitor) Release(h core.Handle) {
	delete(m.records, h)
}

// Forget drops h after destruction
func (m *Monitor) Forget(h core.Handle) {
	delete(m.records, h)
}

// Touching reports whether h is tracked
func (m *Monitor) Touching(h core.Handle) bool {
	_, ok := m.records[h]
	return ok
}

// Since returns when continuous contact for h began
func (m *Monitor) Since(h core.Handle) (time.Time, bool) {
	t, ok := m.records[h]
	return t, ok
}

// Recompute counts entries older than the debounce window and returns the reported count
func (m *Monitor) Recompute(now time.Time) int {
	stable := 0
	for _, since := range m.records {
		if now.Sub(since) >= m.cfg.StableDuration {
			stable++
		}
	}
	m.stable = stable

	prev := m.reported
	switch m.cfg.Mode {
	case ModeHighWater:
		if len(m.records) == 0 {
			m.reported = 0
		} else if stable > m.reported {
			m.reported = stable
		}
	default:
		m.reported = stable
	}

	if m.reported != prev {
		m.logger.Debug().
			Int("stable", stable).
			Int("reported", m.reported).
			Int("raw", len(m.records)).
			Msg("ceiling stress changed")
	}
	return m.reported
}

// StableCount returns the count reported by the last Recompute
func (m *Monitor) StableCount() int {
	return m.reported
}

// LiveStableCount returns the undecorated stable count of the last Recompute
func (m *Monitor) LiveStableCount() int {
	return m.stable
}

// RawCount returns bodies currently touching regardless of age
func (m *Monitor) RawCount() int {
	return len(m.records)
}

// GameOver reports whether the reported count reached the threshold
func (m *Monitor) GameOver() bool {
	return m.reported >= m.cfg.MaxTouches
}

// Severity projects the reported count onto [0, Segments] for the gauge
func (m *Monitor) Severity() int {
	s := m.reported * m.cfg.Segments / m.cfg.MaxTouches
	if s > m.cfg.Segments {
		return m.cfg.Segments
	}
	return s
}

// Ratio returns the reported count as a fraction of the threshold, clamped to [0,1]
func (m *Monitor) Ratio() float64 {
	return core.Clamp(float64(m.reported)/float64(m.cfg.MaxTouches), 0, 1)
}

func (m *Monitor) Config() Config {
	return m.cfg
}

// Reset clears all records and counts
func (m *Monitor) Reset() {
	clear(m.records)
	m.stable = 0
	m.reported = 0
}
