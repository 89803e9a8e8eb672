// Package progression gates which tiers the dropper may offer
package progression

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pie-merge/core"
)

// Config parameterizes the unlock gate
type Config struct {
	DropsToUnlock int
	// Cap bounds both the sequential gate and merge-unlocked tiers offered by the dropper
	Cap int
}

// State is a copy of the progression counters
type State struct {
	MaxDroppableTier       int
	HighestTierEverCreated int
	DropsSinceLastUnlock   int
	NextScheduledDropTier  int
}

// Controller owns progression state for one session
type Controller struct {
	cfg   Config
	state State

	// unlocked holds tiers made droppable by merges, independent of the sequential gate
	unlocked  map[int]struct{}
	announced map[int]struct{}

	logger zerolog.Logger
}

// New starts with only tier 0 droppable and staged
func New(cfg Config, logger zerolog.Logger) *Controller {
	core.Assert(cfg.Cap >= 0, "progression cap must be non-negative, got %d", cfg.Cap)
	return &Controller{
		cfg:       cfg,
		unlocked:  make(map[int]struct{}),
		announced: make(map[int]struct{}),
		logger:    logger.With().Str("component", "progression").Logger(),
	}
}

// Restore replaces the counters, used to resume or set up a known state
func (c *Controller) Restore(s State) {
	if !core.Assert(s.MaxDroppableTier <= s.HighestTierEverCreated,
		"restored max droppable %d exceeds highest created %d", s.MaxDroppableTier, s.HighestTierEverCreated) {
		s.MaxDroppableTier = s.HighestTierEverCreated
	}
	c.state = s
}

// Snapshot returns a copy of the counters
func (c *Controller) Snapshot() State {
	return c.state
}

// Staged returns the tier currently loaded in the dropper
func (c *Controller) Staged() int {
	return c.state.NextScheduledDropTier
}

// Pool returns the tiers the dropper can offer, ascending
func (c *Controller) Pool() []int {
	pool := make([]int, 0, c.state.MaxDroppableTier+1+len(c.unlocked))
	for t := 0; t <= c.state.MaxDroppableTier; t++ {
		pool = append(pool, t)
	}
	for t := range c.unlocked {
		if t > c.state.MaxDroppableTier && t <= c.cfg.Cap {
			pool = append(pool, t)
		}
	}
	slices.Sort(pool)
	return pool
}

// AdvanceCursor stages the next tier in round-robin order over the pool and returns it
func (c *Controller) AdvanceCursor() int {
	pool := c.Pool()
	cur := c.state.NextScheduledDropTier
	next := pool[0]
	for _, t := range pool {
		if t > cur {
			next = t
			break
		}
	}
	c.state.NextScheduledDropTier = next
	return next
}

// RecordDrop counts a completed drop and advances the gate when due, returns true on advancement
func (c *Controller) RecordDrop() bool {
	c.state.DropsSinceLastUnlock++
	if c.state.DropsSinceLastUnlock < c.cfg.DropsToUnlock {
		return false
	}
	if c.state.HighestTierEverCreated <= c.state.MaxDroppableTier {
		return false
	}
	target := min(c.state.HighestTierEverCreated, c.cfg.Cap)
	if target <= c.state.MaxDroppableTier {
		return false
	}

	prev := c.state.MaxDroppableTier
	c.state.MaxDroppableTier = target
	c.state.DropsSinceLastUnlock = 0
	c.logger.Debug().Int("from", prev).Int("to", target).Msg("droppable tier gate advanced")
	return true
}

// RecordCreated notes that a merge produced tier, returns true if it is a new highest tier
func (c *Controller) RecordCreated(tier int) bool {
	raised := false
	if tier > c.state.HighestTierEverCreated {
		c.state.HighestTierEverCreated = tier
		raised = true
	}
	c.UnlockForDrop(tier)
	return raised
}

// UnlockForDrop makes tier droppable immediately, bypassing the gate
func (c *Controller) UnlockForDrop(tier int) {
	if _, ok := c.unlocked[tier]; ok {
		return
	}
	c.unlocked[tier] = struct{}{}
	c.logger.Debug().Int("tier", tier).Msg("tier unlocked by merge")
}

// Droppable returns the tiers the player may receive, ascending
func (c *Controller) Droppable() []int {
	return c.Pool()
}

// IsDroppable reports whether tier is in the pool
func (c *Controller) IsDroppable(tier int) bool {
	return slices.Contains(c.Pool(), tier)
}

func (c *Controller) Announced(tier int) bool {
	_, ok := c.announced[tier]
	return ok
}

// MarkAnnounced records tier as announced, returns false if it already was
func (c *Controller) MarkAnnounced(tier int) bool {
	if _, ok := c.announced[tier]; ok {
		return false
	}
	c.announced[tier] = struct{}{}
	return true
}

// AnnouncedCount returns the size of the announcement record
func (c *Controller) AnnouncedCount() int {
	return len(c.announced)
}
