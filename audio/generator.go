package audio

import (
	"math"
	"time"

	"github.com/lixenwraith/reverie-spectrum/parameter"
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// sine generates a sine wave at freq
func sine(freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(parameter.AudioSampleRate)

	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attack, release time.Duration) {
	total := len(buf)
	attackSamples := durationToSamples(attack)
	releaseSamples := durationToSamples(release)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := range buf {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// concatFloatBuffers appends b to a
func concatFloatBuffers(a, b floatBuffer) floatBuffer {
	result := make(floatBuffer, len(a)+len(b))
	copy(result, a)
	copy(result[len(a):], b)
	return result
}

// normalize scales buf so its peak is 1
func normalize(buf floatBuffer) floatBuffer {
	peak := 0.0
	for _, v := range buf {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak > 0 {
		for i := range buf {
			buf[i] /= peak
		}
	}
	return buf
}

// durationToSamples converts duration to sample count
func durationToSamples(d time.Duration) int {
	return int(d.Seconds() * float64(parameter.AudioSampleRate))
}

// --- Cue generators (unity gain) ---

func generatePing() floatBuffer {
	buf := sine(parameter.PingFrequency, durationToSamples(parameter.PingDuration))
	applyEnvelope(buf, parameter.PingAttack, parameter.PingRelease)
	return buf
}

func generateChime() floatBuffer {
	n1 := sine(parameter.ChimeNote1Freq, durationToSamples(parameter.ChimeNote1Duration))
	applyEnvelope(n1, parameter.ChimeAttack, parameter.ChimeNote1Release)

	n2 := sine(parameter.ChimeNote2Freq, durationToSamples(parameter.ChimeNote2Duration))
	applyEnvelope(n2, parameter.ChimeAttack, parameter.ChimeNote2Release)

	// Octave overtone on the second note
	over := sine(2*parameter.ChimeNote2Freq, len(n2))
	applyEnvelope(over, parameter.ChimeAttack, parameter.ChimeNote2Release/2)

	return normalize(concatFloatBuffers(n1, mixFloatBuffers(n2, over, 0.3)))
}

func generateRefresh() floatBuffer {
	buf := sine(parameter.RefreshFrequency, durationToSamples(parameter.RefreshDuration))
	applyEnvelope(buf, parameter.RefreshAttack, parameter.RefreshRelease)
	return buf
}

// generateCue dispatches to the specific generator
func generateCue(c Cue) floatBuffer {
	switch c {
	case CuePing:
		return generatePing()
	case CueChime:
		return generateChime()
	case CueRefresh:
		return generateRefresh()
	default:
		return nil
	}
}
