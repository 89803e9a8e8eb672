package audio

// SoundType represents different sound effects
type SoundType int

const (
	SoundSquish   SoundType = iota // First contact of a freshly dropped piece
	SoundMerge                     // Two pieces accepted for merging
	SoundGameOver                  // Ceiling stress threshold reached
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundSquish:
		return "squish"
	case SoundMerge:
		return "merge"
	case SoundGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Params are per-play adjustments, zero Pitch means 1
type Params struct {
	Volume float64
	Pitch  float64
}

// Player is the fire-and-forget sound collaborator
type Player interface {
	Play(sound SoundType, p Params)
}

// Nop discards every request
type Nop struct{}

func (Nop) Play(SoundType, Params) {}

// Config controls synthesis and output
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
}
