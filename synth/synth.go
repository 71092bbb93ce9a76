// Package synth renders the voices of the piano. A Synth is not safe for
// concurrent use: it is owned by the audio goroutine, and other goroutines
// talk to it through the Player in package instrument.
package synth

import (
	"errors"
	"math"
	"time"

	"github.com/pianola/pianola"
	"github.com/viterin/vek/vek32"
)

// Synth is a set of independent voices mixed into a single output.
type Synth struct {
	patch      pianola.Patch
	sampleRate int
	voices     []*Voice
	mix        []float32
	scratch    []float32
	peak       float32
}

var ErrNonFinite = errors.New("synth produced non-finite samples")

func New(patch pianola.Patch, sampleRate int) *Synth {
	return &Synth{patch: patch, sampleRate: sampleRate}
}

func (s *Synth) SampleRate() int { return s.sampleRate }

// Trigger creates a new voice with the given id. The voice starts sounding
// from the next rendered sample. Triggering an id that is already sounding
// does nothing; ids are expected to be unique per note.
func (s *Synth) Trigger(id int, frequency float64) {
	if _, ok := s.Voice(id); ok {
		return
	}
	s.voices = append(s.voices, NewVoice(id, frequency, s.patch, s.sampleRate))
}

// Release starts the release ramp of the voice with the given id. When the
// ramp has been rendered, the voice is removed. Unknown ids are ignored.
func (s *Synth) Release(id int, d time.Duration) {
	if v, ok := s.Voice(id); ok {
		v.ReleaseAfter(d, s.sampleRate)
	}
}

// ReleaseAll releases every voice.
func (s *Synth) ReleaseAll(d time.Duration) {
	for _, v := range s.voices {
		v.ReleaseAfter(d, s.sampleRate)
	}
}

// Voice returns the voice with the given id, if it has not been freed yet.
func (s *Synth) Voice(id int) (*Voice, bool) {
	for _, v := range s.voices {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// NumVoices returns the number of voices that are still producing sound,
// including the ones that are fading out.
func (s *Synth) NumVoices() int { return len(s.voices) }

// Peak returns the largest absolute sample value of the last rendered buffer.
func (s *Synth) Peak() float32 { return s.peak }

// Render fills the buffer with the mix of all voices, scaled by the master
// gain, the same signal on both channels. Voices that finish their release
// during the buffer are removed. If the mix is not finite, the buffer is
// silenced, all voices are dropped and ErrNonFinite returned.
func (s *Synth) Render(buffer pianola.AudioBuffer) error {
	n := len(buffer)
	if cap(s.mix) < n {
		s.mix = make([]float32, n)
		s.scratch = make([]float32, n)
	}
	mix := vek32.Zeros_Into(s.mix[:n], n)
	scratch := s.scratch[:n]
	alive := s.voices[:0]
	for _, v := range s.voices {
		rendered := v.Render(scratch)
		vek32.Add_Inplace(mix[:rendered], scratch[:rendered])
		if v.State() != Freed {
			alive = append(alive, v)
		}
	}
	for i := len(alive); i < len(s.voices); i++ {
		s.voices[i] = nil
	}
	s.voices = alive
	if n == 0 {
		s.peak = 0
		return nil
	}
	vek32.MulNumber_Inplace(mix, s.patch.MasterGain)
	if sum := float64(vek32.Sum(mix)); math.IsNaN(sum) || math.IsInf(sum, 0) {
		s.voices = nil
		s.peak = 0
		buffer.Clear()
		return ErrNonFinite
	}
	s.peak = vek32.Max(vek32.Abs_Into(scratch, mix))
	buffer.Fill(mix)
	return nil
}
