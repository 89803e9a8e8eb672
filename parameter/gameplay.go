package parameter

import "time"

// Ceiling stress
const (
	// StableTouchDuration is how long ceiling contact must persist to count
	StableTouchDuration = 350 * time.Millisecond

	// MaxCeilingTouches is the stable touch count that ends the game
	MaxCeilingTouches = 10

	// GaugeSegments is the resolution of the stress severity ramp
	GaugeSegments = 10
)

// Merge rules
const (
	PointsPerTier = 10

	// TerminalMergeBonus is awarded when two last-tier pieces vanish
	TerminalMergeBonus = 180

	// MergeZoneY suppresses merges whose contact point is at or above this line
	MergeZoneY = 200.0

	MergeZoneEnabled = true
)

// Progression
const (
	DropsToUnlockNextTier = 10
	MaxDroppableTierCap   = 7
)
