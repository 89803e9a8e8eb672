package status

// Metric keys published by the arena session
const (
	KeyState         = "session.state"
	KeyScore         = "session.score"
	KeyTick          = "session.tick"
	KeyPaused        = "session.paused"
	KeyPieces        = "pieces.live"
	KeyMergesPending = "merge.pending"
	KeyMergesDone    = "merge.completed"
	KeyStressStable  = "stress.stable"
	KeyStressRaw     = "stress.raw"
	KeyStressRatio   = "stress.ratio"
	KeyMaxDroppable  = "progression.max_droppable"
	KeyHighestTier   = "progression.highest"
	KeyFlashes       = "effect.flashes"
)

// Board caches the session's metric pointers
type Board struct {
	State         *Label
	Score         *Counter
	Tick          *Counter
	Paused        *Flag
	Pieces        *Counter
	MergesPending *Counter
	MergesDone    *Counter
	StressStable  *Counter
	StressRaw     *Counter
	StressRatio   *Gauge
	MaxDroppable  *Counter
	HighestTier   *Counter
	Flashes       *Counter
}

// NewBoard registers the session metrics in r
func NewBoard(r *Registry) *Board {
	return &Board{
		State:         r.Label(KeyState),
		Score:         r.Counter(KeyScore),
		Tick:          r.Counter(KeyTick),
		Paused:        r.Flag(KeyPaused),
		Pieces:        r.Counter(KeyPieces),
		MergesPending: r.Counter(KeyMergesPending),
		MergesDone:    r.Counter(KeyMergesDone),
		StressStable:  r.Counter(KeyStressStable),
		StressRaw:     r.Counter(KeyStressRaw),
		StressRatio:   r.Gauge(KeyStressRatio),
		MaxDroppable:  r.Counter(KeyMaxDroppable),
		HighestTier:   r.Counter(KeyHighestTier),
		Flashes:       r.Counter(KeyFlashes),
	}
}
