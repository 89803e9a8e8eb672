package parameter

import "time"

// Arena geometry in design pixels, y grows downward
const (
	ArenaWidth  = 720.0
	ArenaHeight = 1000.0

	// WallOffset is the inset of both side walls from the canvas edge
	WallOffset = 65.0

	CeilingY = 150.0
	FloorY   = 900.0

	// CeilingThickness is the static body sitting just above the ceiling line
	CeilingThickness = 10.0

	// CeilingSensorHeight is the sensor band straddling the ceiling line
	CeilingSensorHeight = 5.0

	// SpawnOffset places a dropped piece just below the ceiling line
	SpawnOffset = 5.0

	// DropperRestGap is the space between a staged piece and the ceiling line
	DropperRestGap = 10.0
)

// Physics
const (
	// Gravity in px/s²
	Gravity = 4000.0

	PieceFriction    = 0.05
	PieceRestitution = 0.1
	PieceDensity     = 0.001

	// TickRate is the fixed simulation rate
	TickRate     = 60
	TickInterval = time.Second / TickRate

	// SolverIterations is the number of contact relaxation passes per step
	SolverIterations = 8
)
