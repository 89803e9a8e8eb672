package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/pie-merge/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves with an optional linear frequency glide
type oscillator struct {
	freq     float64
	glide    float64 // Hz per sample
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another over its duration
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	glide := 0.0
	if samples > 0 {
		glide = (to - from) / float64(samples)
	}
	return &oscillator{
		freq:     from,
		glide:    glide,
		duration: samples,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.freq += o.glide
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func pitchOf(p Params) float64 {
	if p.Pitch <= 0 {
		return 1
	}
	return p.Pitch
}

// CreateSquishSound is a short downward noise-and-sine thud
func CreateSquishSound(cfg Config, p Params) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	pitch := pitchOf(p)

	body := NewSweep(260*pitch, 110*pitch, parameter.SquishDuration, WaveSine, rate)
	bodyShaped := NewEnvelope(body, parameter.SquishDuration, parameter.SquishAttack, parameter.SquishRelease, rate)

	noise := NewOscillator(0, parameter.SquishDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, parameter.SquishDuration, parameter.SquishAttack, parameter.SquishRelease/2, rate)

	mixed := beep.Mix(
		newVolume(bodyShaped, 0.8),
		newVolume(noiseShaped, 0.2),
	)
	return newVolume(mixed, p.Volume*cfg.MasterVolume)
}

// CreateMergeSound is a rising two-partial chime
func CreateMergeSound(cfg Config, p Params) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	pitch := pitchOf(p)

	fund := NewSweep(440*pitch, 660*pitch, parameter.MergeDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, parameter.MergeDuration, parameter.MergeAttack, parameter.MergeRelease, rate)

	over := NewSweep(880*pitch, 1320*pitch, parameter.MergeDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, parameter.MergeDuration, parameter.MergeAttack, parameter.MergeRelease/2, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, p.Volume*cfg.MasterVolume)
}

// CreateGameOverSound is a descending three-note square phrase
func CreateGameOverSound(cfg Config, p Params) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	pitch := pitchOf(p)

	notes := []float64{392.00, 311.13, 196.00} // G4, Eb4, G3
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		osc := NewOscillator(f*pitch, parameter.GameOverNoteDuration, WaveSquare, rate)
		parts = append(parts, NewEnvelope(osc, parameter.GameOverNoteDuration, parameter.GameOverAttack, parameter.GameOverRelease, rate))
	}
	return newVolume(beep.Seq(parts...), p.Volume*cfg.MasterVolume*0.5)
}

// GetSoundEffect returns the streamer for the given type, nil for unknown types
func GetSoundEffect(sound SoundType, cfg Config, p Params) beep.Streamer {
	switch sound {
	case SoundSquish:
		return CreateSquishSound(cfg, p)
	case SoundMerge:
		return CreateMergeSound(cfg, p)
	case SoundGameOver:
		return CreateGameOverSound(cfg, p)
	default:
		return nil
	}
}
