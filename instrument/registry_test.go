package instrument_test

import (
	"slices"
	"testing"
	"time"

	"github.com/pianola/pianola"
	"github.com/pianola/pianola/instrument"
)

type fakeVoice struct {
	frequency float64
	releases  []time.Duration
}

func (v *fakeVoice) Release(d time.Duration) {
	v.releases = append(v.releases, d)
}

type fakeSynth struct {
	voices []*fakeVoice
}

func (s *fakeSynth) NewVoice(frequency float64) instrument.Voice {
	v := &fakeVoice{frequency: frequency}
	s.voices = append(s.voices, v)
	return v
}

// sounding returns the voices that have not been released.
func (s *fakeSynth) sounding() int {
	n := 0
	for _, v := range s.voices {
		if len(v.releases) == 0 {
			n++
		}
	}
	return n
}

const testRelease = 300 * time.Millisecond

func newTestRegistry() (*instrument.Registry, *fakeSynth) {
	s := &fakeSynth{}
	return instrument.NewRegistry(s, testRelease, nil), s
}

func TestRegistrySingleNote(t *testing.T) {
	r, s := newTestRegistry()
	r.Start(48)
	if got := r.Active(); !slices.Equal(got, []pianola.Pitch{48}) {
		t.Fatalf("active after start = %v, want [48]", got)
	}
	if len(s.voices) != 1 {
		t.Fatalf("got %d voices, want 1", len(s.voices))
	}
	if want := pianola.Pitch(48).Frequency(); s.voices[0].frequency != want {
		t.Errorf("voice frequency = %v, want %v", s.voices[0].frequency, want)
	}
	r.Stop(48)
	if r.Len() != 0 || r.IsActive(48) {
		t.Fatalf("active after stop = %v, want none", r.Active())
	}
	if got := s.voices[0].releases; !slices.Equal(got, []time.Duration{testRelease}) {
		t.Errorf("releases = %v, want [%v]", got, testRelease)
	}
}

func TestRegistryChord(t *testing.T) {
	r, s := newTestRegistry()
	for _, p := range []pianola.Pitch{55, 48, 52} {
		r.Start(p)
	}
	if got := r.Active(); !slices.Equal(got, []pianola.Pitch{48, 52, 55}) {
		t.Fatalf("active = %v, want [48 52 55]", got)
	}
	if len(s.voices) != 3 {
		t.Fatalf("got %d voices, want 3", len(s.voices))
	}
	r.Stop(52)
	if got := r.Active(); !slices.Equal(got, []pianola.Pitch{48, 55}) {
		t.Fatalf("active after stopping 52 = %v, want [48 55]", got)
	}
	if s.sounding() != 2 {
		t.Errorf("stopping one pitch released %d voices", 3-s.sounding())
	}
}

func TestRegistryStartIsIdempotent(t *testing.T) {
	r, s := newTestRegistry()
	r.Start(49)
	r.Start(49)
	if got := r.Active(); !slices.Equal(got, []pianola.Pitch{49}) {
		t.Fatalf("active = %v, want [49]", got)
	}
	if len(s.voices) != 1 {
		t.Fatalf("double start created %d voices, want 1", len(s.voices))
	}
}

func TestRegistryStopWithoutStart(t *testing.T) {
	r, s := newTestRegistry()
	r.Stop(50)
	r.Start(48)
	r.Stop(50)
	if !r.IsActive(48) || r.Len() != 1 {
		t.Fatalf("active = %v, want [48]", r.Active())
	}
	if len(s.voices[0].releases) != 0 {
		t.Fatalf("stopping an idle pitch released another voice")
	}
}

func TestRegistryRestartAfterStop(t *testing.T) {
	r, s := newTestRegistry()
	r.Start(60)
	r.Stop(60)
	r.Start(60)
	if len(s.voices) != 2 {
		t.Fatalf("got %d voices, want 2", len(s.voices))
	}
	if len(s.voices[0].releases) != 1 || len(s.voices[1].releases) != 0 {
		t.Fatalf("restart touched the released voice")
	}
	r.Stop(60)
	if len(s.voices[0].releases) != 1 {
		t.Fatalf("old voice released %d times, want once", len(s.voices[0].releases))
	}
}

func TestRegistryIgnoresInvalidPitches(t *testing.T) {
	r, s := newTestRegistry()
	for _, p := range []pianola.Pitch{0, 47, 61, 127, -1} {
		r.Start(p)
	}
	if r.Len() != 0 || len(s.voices) != 0 {
		t.Fatalf("invalid pitches started voices: %v", r.Active())
	}
}

func TestRegistryStopAll(t *testing.T) {
	tests := []struct {
		name    string
		pitches []pianola.Pitch
	}{
		{"Empty", nil},
		{"Single", []pianola.Pitch{53}},
		{"AllKeys", slices.Collect(pianola.Pitches())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s := newTestRegistry()
			for _, p := range tt.pitches {
				r.Start(p)
			}
			r.StopAll()
			if r.Len() != 0 {
				t.Fatalf("active after StopAll = %v", r.Active())
			}
			for i, v := range s.voices {
				if len(v.releases) != 1 {
					t.Errorf("voice %d released %d times, want once", i, len(v.releases))
				}
			}
			if len(s.voices) != len(tt.pitches) {
				t.Errorf("got %d voices, want %d", len(s.voices), len(tt.pitches))
			}
		})
	}
}

func TestRegistryNotifies(t *testing.T) {
	type change struct {
		p       pianola.Pitch
		pressed bool
	}
	var changes []change
	r := instrument.NewRegistry(&fakeSynth{}, testRelease, func(p pianola.Pitch, pressed bool) {
		changes = append(changes, change{p, pressed})
	})
	r.Start(48)
	r.Start(48)
	r.Start(50)
	r.Stop(48)
	r.Stop(48)
	r.StopAll()
	want := []change{{48, true}, {50, true}, {48, false}, {50, false}}
	if !slices.Equal(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
}
