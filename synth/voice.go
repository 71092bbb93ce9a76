package synth

import (
	"math"
	"time"

	"github.com/pianola/pianola"
)

// State is the lifecycle phase of a voice.
type State int

const (
	Attacking State = iota
	Decaying
	Sustaining
	Releasing
	Freed
)

func (s State) String() string {
	switch s {
	case Attacking:
		return "attacking"
	case Decaying:
		return "decaying"
	case Sustaining:
		return "sustaining"
	case Releasing:
		return "releasing"
	case Freed:
		return "freed"
	}
	return "unknown"
}

type (
	// Voice is a single sounding tone: a few sine partials summed and shaped
	// by a linear ADSR envelope. All the times are counted in samples. A
	// voice starts in the Attacking state and the envelope is advanced one
	// sample at a time by Render.
	Voice struct {
		ID        int
		Frequency float64

		state State
		pos   int     // samples spent in the current state
		level float32 // envelope level of the last rendered sample
		from  float32 // level where the release ramp started

		attack, decay, release int
		sustain                float32

		phases []float64 // per partial, in radians
		deltas []float64 // per partial phase increment
		gains  []float32
	}
)

// NewVoice creates a voice that starts sounding from its first rendered
// sample.
func NewVoice(id int, frequency float64, patch pianola.Patch, sampleRate int) *Voice {
	v := &Voice{
		ID:        id,
		Frequency: frequency,
		attack:    pianola.Samples(patch.Envelope.Attack, sampleRate),
		decay:     pianola.Samples(patch.Envelope.Decay, sampleRate),
		sustain:   patch.Envelope.Sustain,
		phases:    make([]float64, len(patch.Partials)),
		deltas:    make([]float64, len(patch.Partials)),
		gains:     make([]float32, len(patch.Partials)),
	}
	for i, p := range patch.Partials {
		v.deltas[i] = 2 * math.Pi * frequency * p.Ratio / float64(sampleRate)
		v.gains[i] = p.Gain
	}
	return v
}

// State returns the current lifecycle phase of the voice.
func (v *Voice) State() State { return v.state }

// Level returns the envelope level of the most recently rendered sample.
func (v *Voice) Level() float32 { return v.level }

// Release cancels whatever is left of the attack and decay and starts a linear
// ramp to silence, taking the given number of samples. The ramp starts from
// the level the envelope has right now, not from the sustain level, so
// releasing in the middle of the attack or decay does not click. After the
// ramp, the voice is Freed. Releasing a voice that is already releasing or
// freed does nothing.
func (v *Voice) Release(samples int) {
	if v.state == Releasing || v.state == Freed {
		return
	}
	v.state = Releasing
	v.pos = 0
	v.from = v.level
	v.release = samples
}

// ReleaseAfter is Release with the ramp length given as a duration.
func (v *Voice) ReleaseAfter(d time.Duration, sampleRate int) {
	v.Release(pianola.Samples(d, sampleRate))
}

// Render writes the voice to the mono buffer, sample by sample. It returns
// the number of samples rendered, which is less than len(buf) only if the
// voice got freed in the middle of the buffer; the rest of buf is untouched.
func (v *Voice) Render(buf []float32) int {
	for i := range buf {
		if v.state == Freed {
			return i
		}
		level := v.next()
		var s float64
		for j := range v.phases {
			s += float64(v.gains[j]) * math.Sin(v.phases[j])
			v.phases[j] += v.deltas[j]
			if v.phases[j] > 2*math.Pi {
				v.phases[j] -= 2 * math.Pi
			}
		}
		buf[i] = float32(s) * level
	}
	return len(buf)
}

// next advances the envelope by one sample and returns the level of that
// sample.
func (v *Voice) next() float32 {
	switch v.state {
	case Attacking:
		if v.pos >= v.attack {
			v.enter(Decaying)
			return v.next()
		}
		v.level = float32(v.pos) / float32(v.attack)
	case Decaying:
		if v.pos >= v.decay {
			v.enter(Sustaining)
			return v.next()
		}
		v.level = 1 - (1-v.sustain)*float32(v.pos)/float32(v.decay)
	case Sustaining:
		v.level = v.sustain
	case Releasing:
		if v.pos >= v.release {
			v.state = Freed
			v.level = 0
			return 0
		}
		v.level = v.from * (1 - float32(v.pos)/float32(v.release))
	default:
		return 0
	}
	v.pos++
	return v.level
}

func (v *Voice) enter(s State) {
	v.state = s
	v.pos = 0
}
