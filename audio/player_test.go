package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/reverie-spectrum/parameter"
)

// fakeOutput records device calls without opening a speaker
type fakeOutput struct {
	initErr error
	inits   int
	played  []beep.Streamer
	locks   int
}

func (f *fakeOutput) output() output {
	return output{
		init: func(beep.SampleRate, int) error {
			f.inits++
			return f.initErr
		},
		play:   func(s ...beep.Streamer) { f.played = append(f.played, s...) },
		lock:   func() { f.locks++ },
		unlock: func() {},
	}
}

func newTestPlayer(f *fakeOutput) *CuePlayer {
	p := NewCuePlayer(nil)
	p.out = f.output()
	return p
}

// TestCuePlayerGracefulDegradation verifies cue operations don't panic when not initialized
func TestCuePlayerGracefulDegradation(t *testing.T) {
	p := NewCuePlayer(nil)

	assert.NotPanics(t, func() {
		p.Play(CuePing)
		p.Play(CueChime)
		p.SetMuted(true)
		p.Cleanup()
	})
	assert.False(t, p.Enabled())
	assert.Zero(t, p.mixer.Len())
}

func TestCuePlayerInitialize(t *testing.T) {
	f := &fakeOutput{}
	p := newTestPlayer(f)

	require.NoError(t, p.Initialize())
	require.NoError(t, p.Initialize(), "second initialization is a no-op")
	assert.Equal(t, 1, f.inits)
	require.Len(t, f.played, 1)
	assert.Same(t, p.mixer, f.played[0])
	assert.True(t, p.Enabled())

	for c := CuePing; c < cueCount; c++ {
		assert.NotEmpty(t, p.cache[c], c.String())
	}
}

func TestCuePlayerInitializeFailure(t *testing.T) {
	f := &fakeOutput{initErr: errors.New("no audio device")}
	p := newTestPlayer(f)

	require.Error(t, p.Initialize())
	assert.False(t, p.Enabled())

	p.Play(CuePing)
	assert.Zero(t, p.mixer.Len())
}

func TestCuePlayerPlay(t *testing.T) {
	f := &fakeOutput{}
	p := newTestPlayer(f)
	require.NoError(t, p.Initialize())

	p.Play(CuePing)
	p.Play(CuePing) // inside MinCueGap
	p.Play(CueChime)
	p.Play(CueNone)
	p.Play(Cue(99))
	assert.Equal(t, 2, p.mixer.Len())
	assert.Equal(t, 2, f.locks, "mixer is touched under the speaker lock")

	time.Sleep(parameter.MinCueGap + 10*time.Millisecond)
	p.Play(CuePing)
	assert.Equal(t, 3, p.mixer.Len())

	p.SetMuted(true)
	assert.True(t, p.Muted())
	p.Play(CueRefresh)
	assert.Equal(t, 3, p.mixer.Len())

	p.Cleanup()
	assert.Zero(t, p.mixer.Len())
	assert.False(t, p.Enabled())
}

func TestBufferStreamer(t *testing.T) {
	s := &bufferStreamer{buf: floatBuffer{0.5, -1, 1}, gain: 0.5}
	out := make([][2]float64, 2)

	n, ok := s.Stream(out)
	assert.Equal(t, 2, n)
	assert.True(t, ok)
	assert.Equal(t, [2]float64{0.25, 0.25}, out[0])
	assert.Equal(t, [2]float64{-0.5, -0.5}, out[1])

	n, ok = s.Stream(out)
	assert.Equal(t, 1, n)
	assert.True(t, ok)

	n, ok = s.Stream(out)
	assert.Zero(t, n)
	assert.False(t, ok)
	assert.NoError(t, s.Err())
}

func TestCueGenerators(t *testing.T) {
	tests := []struct {
		cue      Cue
		duration time.Duration
	}{
		{CuePing, parameter.PingDuration},
		{CueChime, parameter.ChimeNote1Duration + parameter.ChimeNote2Duration},
		{CueRefresh, parameter.RefreshDuration},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			buf := generateCue(tt.cue)
			assert.InDelta(t, durationToSamples(tt.duration), len(buf), 1)

			peak := 0.0
			for _, v := range buf {
				peak = math.Max(peak, math.Abs(v))
			}
			assert.LessOrEqual(t, peak, 1.0+1e-9, "unity gain")
			assert.Greater(t, peak, 0.5)

			// Envelope starts and ends silent
			assert.InDelta(t, 0, buf[0], 1e-9)
			assert.InDelta(t, 0, buf[len(buf)-1], 0.01)
		})
	}
	assert.Nil(t, generateCue(CueNone))
}

func TestApplyEnvelope(t *testing.T) {
	buf := make(floatBuffer, durationToSamples(100*time.Millisecond))
	for i := range buf {
		buf[i] = 1
	}
	applyEnvelope(buf, 10*time.Millisecond, 10*time.Millisecond)

	attack := durationToSamples(10 * time.Millisecond)
	assert.Zero(t, buf[0])
	assert.InDelta(t, 0.5, buf[attack/2], 0.01)
	assert.Equal(t, 1.0, buf[len(buf)/2])
	assert.Less(t, buf[len(buf)-1], 0.01)
}

func TestAudioFrequencies(t *testing.T) {
	for name, f := range map[string]float64{
		"ping":    parameter.PingFrequency,
		"chime1":  parameter.ChimeNote1Freq,
		"chime2":  parameter.ChimeNote2Freq,
		"refresh": parameter.RefreshFrequency,
	} {
		// Interface cues sit well below Nyquist
		assert.Less(t, 2*f*2, float64(parameter.AudioSampleRate), name)
		assert.Greater(t, f, 200.0, name)
	}
}
