package pianola

import "time"

type (
	// Envelope is a linear attack-decay-sustain-release envelope. Sustain is a
	// fraction of the peak level; the sustain phase lasts until the note is
	// released.
	Envelope struct {
		Attack  time.Duration
		Decay   time.Duration
		Sustain float32
		Release time.Duration
	}

	// Partial is one sine component of a tone, Ratio times the fundamental
	// frequency and scaled by Gain.
	Partial struct {
		Ratio float64
		Gain  float32
	}

	// Patch describes how every voice of the piano sounds.
	Patch struct {
		Envelope   Envelope
		Partials   []Partial
		MasterGain float32
	}
)

// DefaultPatch is the fundamental plus two softer harmonics, shaped by a short
// percussive envelope.
var DefaultPatch = Patch{
	Envelope: Envelope{
		Attack:  10 * time.Millisecond,
		Decay:   100 * time.Millisecond,
		Sustain: 0.3,
		Release: 300 * time.Millisecond,
	},
	Partials: []Partial{
		{Ratio: 1, Gain: 1},
		{Ratio: 2, Gain: 0.3},
		{Ratio: 3, Gain: 0.15},
	},
	MasterGain: 0.4,
}

// Samples converts a duration to a number of samples at the given sample
// rate, rounding to the nearest sample.
func Samples(d time.Duration, sampleRate int) int {
	return int(d.Seconds()*float64(sampleRate) + 0.5)
}
