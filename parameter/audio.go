package parameter

import "time"

// Sound playback volumes (linear, 0..1)
const (
	SquishVolume   = 0.5
	MergeVolume    = 0.6
	GameOverVolume = 0.7
)

// Synthesis
const (
	AudioSampleRate   = 44100
	AudioBufferPeriod = 100 * time.Millisecond

	SquishDuration = 90 * time.Millisecond
	SquishAttack   = 5 * time.Millisecond
	SquishRelease  = 70 * time.Millisecond

	MergeDuration = 160 * time.Millisecond
	MergeAttack   = 5 * time.Millisecond
	MergeRelease  = 120 * time.Millisecond

	GameOverNoteDuration = 350 * time.Millisecond
	GameOverAttack       = 10 * time.Millisecond
	GameOverRelease      = 200 * time.Millisecond
)
