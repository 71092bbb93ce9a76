// Package pianola contains the domain types of a one-octave playable piano:
// pitches and their tuning, the keyboard geometry, the patch that every voice
// is synthesized with, the computer keyboard bindings and the audio interfaces
// that the synth and the audio backends share.
package pianola

import (
	"fmt"
	"iter"
	"math"
)

// Pitch is a semitone in the standard MIDI numbering, 69 being A4 = 440 Hz.
type Pitch int

const (
	MinPitch Pitch = 48 // C3
	MaxPitch Pitch = 60 // C4
	NumKeys        = int(MaxPitch-MinPitch) + 1

	ReferencePitch     Pitch   = 69
	ReferenceFrequency float64 = 440
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Frequency returns the equal-tempered frequency of the pitch in Hz.
func (p Pitch) Frequency() float64 {
	return ReferenceFrequency * math.Pow(2, float64(p-ReferencePitch)/12)
}

// Valid reports whether the pitch is one of the keys of the piano.
func (p Pitch) Valid() bool {
	return p >= MinPitch && p <= MaxPitch
}

// Class returns the pitch class, 0 = C, 1 = C#, ..., 11 = B.
func (p Pitch) Class() int {
	return ((int(p) % 12) + 12) % 12
}

// Octave returns the octave number in scientific pitch notation, so that 60
// is in octave 4.
func (p Pitch) Octave() int {
	return int(math.Floor(float64(p)/12)) - 1
}

// Name returns the note name with a sharp for black keys, e.g. "C#3".
func (p Pitch) Name() string {
	return fmt.Sprintf("%s%d", noteNames[p.Class()], p.Octave())
}

func (p Pitch) String() string {
	return p.Name()
}

// IsBlack reports whether the pitch is played on a black key.
func (p Pitch) IsBlack() bool {
	switch p.Class() {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// Index returns the position of the pitch among the keys, 0 for MinPitch.
func (p Pitch) Index() int {
	return int(p - MinPitch)
}

// Pitches iterates over all the keys of the piano from the lowest to the
// highest.
func Pitches() iter.Seq[Pitch] {
	return func(yield func(Pitch) bool) {
		for p := MinPitch; p <= MaxPitch; p++ {
			if !yield(p) {
				return
			}
		}
	}
}

// KeyPosition tells where a key is drawn. For a white key, white is its index
// among the white keys, counting from the lowest key. For a black key, white
// is the index of the white key immediately below it: the black key straddles
// the boundary between that white key and the next one. The position is
// derived from the pitch classes alone, so it works for any key range.
func KeyPosition(p Pitch) (white int, black bool) {
	for q := MinPitch; q < p; q++ {
		if !q.IsBlack() {
			white++
		}
	}
	if p.IsBlack() {
		return white - 1, true
	}
	return white, false
}

// NumWhiteKeys returns the number of white keys on the piano.
func NumWhiteKeys() int {
	n := 0
	for p := range Pitches() {
		if !p.IsBlack() {
			n++
		}
	}
	return n
}
