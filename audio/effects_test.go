package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{Enabled: true, MasterVolume: 1, SampleRate: 44100}

// drain streams s to exhaustion and returns sample count and peak
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			require.False(t, math.IsNaN(smp[0]) || math.IsInf(smp[0], 0))
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never ended")
	return 0, 0
}

func TestOscillatorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 50*time.Millisecond, wave, rate)
		n, peak := drain(t, osc)
		assert.Equal(t, rate.N(50*time.Millisecond), n)
		assert.LessOrEqual(t, peak, 1.0)
		assert.NoError(t, osc.Err())
	}
}

func TestSquareWaveValues(t *testing.T) {
	osc := NewOscillator(220, 10*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	buf := make([][2]float64, 64)
	n, _ := osc.Stream(buf)
	for _, smp := range buf[:n] {
		assert.Contains(t, []float64{-1, 1}, smp[0])
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 8)
	_, ok := env.Stream(buf)
	require.True(t, ok)
	assert.Equal(t, 0.0, buf[0][0])
	assert.Less(t, math.Abs(buf[7][0]), 0.1)
}

func TestSoundEffectsTerminate(t *testing.T) {
	for _, sound := range []SoundType{SoundSquish, SoundMerge, SoundGameOver} {
		t.Run(sound.String(), func(t *testing.T) {
			s := GetSoundEffect(sound, testConfig, Params{Volume: 0.6})
			require.NotNil(t, s)
			n, peak := drain(t, s)
			assert.Positive(t, n)
			assert.Positive(t, peak)
		})
	}
	assert.Nil(t, GetSoundEffect(soundTypeCount, testConfig, Params{}))
}

func TestZeroVolumeIsSilent(t *testing.T) {
	s := GetSoundEffect(SoundMerge, testConfig, Params{Volume: 0})
	_, peak := drain(t, s)
	assert.Equal(t, 0.0, peak)
}
