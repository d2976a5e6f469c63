package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reverie-spectrum/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// bufferStreamer plays a floatBuffer once on both channels
type bufferStreamer struct {
	buf  floatBuffer
	gain float64
	pos  int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			return i, true
		}
		v := s.buf[s.pos] * s.gain
		samples[i] = [2]float64{v, v}
		s.pos++
	}
	return len(samples), true
}

func (s *bufferStreamer) Err() error { return nil }

// output is the device surface, swapped in tests
type output struct {
	init   func(beep.SampleRate, int) error
	play   func(...beep.Streamer)
	lock   func()
	unlock func()
}

var speakerOutput = output{
	init:   speaker.Init,
	play:   speaker.Play,
	lock:   speaker.Lock,
	unlock: speaker.Unlock,
}

// CuePlayer plays selection cues through the speaker
// Every method is safe before Initialize and after Cleanup, sound is optional
type CuePlayer struct {
	mu          sync.Mutex
	out         output
	mixer       *beep.Mixer
	cache       [cueCount]floatBuffer
	lastPlay    [cueCount]time.Time
	initialized bool
	muted       bool
	log         logrus.FieldLogger
}

// NewCuePlayer creates an uninitialised player
func NewCuePlayer(log logrus.FieldLogger) *CuePlayer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CuePlayer{
		out:   speakerOutput,
		mixer: &beep.Mixer{},
		log:   log.WithField("component", "audio"),
	}
}

// Initialize opens the speaker and pre-renders the cues
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := p.out.init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	for c := CuePing; c < cueCount; c++ {
		p.cache[c] = generateCue(c)
	}

	p.out.play(p.mixer)
	p.initialized = true
	p.log.Debug("audio initialized")
	return nil
}

// Cleanup stops all sounds
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	// Speaker stays open, an empty mixer is silent
	p.out.lock()
	p.mixer.Clear()
	p.out.unlock()
	p.initialized = false
}

// SetMuted silences cues without releasing the device
func (p *CuePlayer) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

// Muted reports the mute state
func (p *CuePlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Enabled reports whether cues will sound
func (p *CuePlayer) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized && !p.muted
}

// Play queues a cue, repeats within MinCueGap are dropped
func (p *CuePlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || c <= CueNone || c >= cueCount {
		return
	}

	now := time.Now()
	if now.Sub(p.lastPlay[c]) < parameter.MinCueGap {
		return
	}
	p.lastPlay[c] = now

	s := &bufferStreamer{buf: p.cache[c], gain: parameter.CueVolume}
	p.out.lock()
	p.mixer.Add(s)
	p.out.unlock()
}
