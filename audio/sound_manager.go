package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pie-merge/parameter"
)

// SoundManager plays effects through the system speaker
// Every method is safe before Initialize and after Cleanup; playback is then silently dropped
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	played      [soundTypeCount]int

	logger zerolog.Logger
}

var _ Player = (*SoundManager)(nil)

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg Config, logger zerolog.Logger) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	return &SoundManager{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Initialize sets up the speaker, a disabled config skips device setup
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferPeriod)); err != nil {
		return errors.Wrap(err, "audio speaker init")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info().Int("sample_rate", sm.cfg.SampleRate).Msg("audio initialized")
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// Play queues an effect, requests are dropped while muted or uninitialized
func (sm *SoundManager) Play(sound SoundType, p Params) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sound < 0 || sound >= soundTypeCount {
		return
	}
	sm.played[sound]++
	if !sm.initialized || sm.muted {
		return
	}

	streamer := GetSoundEffect(sound, sm.cfg, p)
	if streamer == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// SetMuted toggles output without tearing down the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// ToggleMute flips the muted state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Requests returns how many times a sound was requested, played or not
func (sm *SoundManager) Requests(sound SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sound < 0 || sound >= soundTypeCount {
		return 0
	}
	return sm.played[sound]
}
