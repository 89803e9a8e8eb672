package parameter

import "time"

// Game loop timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// InputPollInterval bounds how long the play loop waits on the input channel per frame
	InputPollInterval = 4 * time.Millisecond

	// MaxCatchUpTicks caps simulation ticks run for one wall-clock frame after a stall
	MaxCatchUpTicks = 5
)

// Event queue
const (
	// EventQueueSize bounds unread session notifications between UI drains
	EventQueueSize = 1024
)
