package parameter

import "time"

// Audio output
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 50 * time.Millisecond

	// MinCueGap between consecutive cues of the same kind
	MinCueGap = 50 * time.Millisecond

	// CueVolume scales every cue, cues are generated at unity gain
	CueVolume = 0.35
)

// Ping, played when a dot is selected
const (
	PingDuration  = 140 * time.Millisecond
	PingAttack    = 3 * time.Millisecond
	PingRelease   = 120 * time.Millisecond
	PingFrequency = 1318.51 // E6
)

// Chime, played when a label is selected
const (
	ChimeNote1Duration = 90 * time.Millisecond
	ChimeNote2Duration = 260 * time.Millisecond
	ChimeAttack        = 4 * time.Millisecond
	ChimeNote1Release  = 40 * time.Millisecond
	ChimeNote2Release  = 200 * time.Millisecond
	ChimeNote1Freq     = 880.0   // A5
	ChimeNote2Freq     = 1318.51 // E6
)

// Refresh, a soft low tone when a new dataset arrives
const (
	RefreshDuration  = 220 * time.Millisecond
	RefreshAttack    = 40 * time.Millisecond
	RefreshRelease   = 160 * time.Millisecond
	RefreshFrequency = 523.25 // C5
)
