package instrument

import (
	"slices"
	"time"

	"github.com/pianola/pianola"
)

type (
	// Synthesizer creates voices. A voice starts sounding as soon as it is
	// created.
	Synthesizer interface {
		NewVoice(frequency float64) Voice
	}

	// Voice is a sounding tone. Release fades it out over the given duration,
	// after which the voice frees its resources. Release is called at most
	// once per voice.
	Voice interface {
		Release(d time.Duration)
	}

	// PressedFunc is called when a pitch starts (pressed = true) or stops
	// sounding, so that the view can highlight the key.
	PressedFunc func(p pianola.Pitch, pressed bool)

	// Registry keeps track of the voice of every pitch currently held down.
	// There is at most one voice per pitch: starting a pitch that is already
	// playing does nothing, so keyboard auto-repeat or a double press cannot
	// stack voices. A Registry is not safe for concurrent use; it belongs to
	// the control goroutine.
	Registry struct {
		synth    Synthesizer
		release  time.Duration
		active   map[pianola.Pitch]Voice
		onChange PressedFunc
	}
)

// NewRegistry returns a registry that creates voices with synth and releases
// them over the given release time. onChange may be nil.
func NewRegistry(synth Synthesizer, release time.Duration, onChange PressedFunc) *Registry {
	return &Registry{
		synth:    synth,
		release:  release,
		active:   make(map[pianola.Pitch]Voice, pianola.NumKeys),
		onChange: onChange,
	}
}

// Start starts a voice for the pitch, unless the pitch is already sounding or
// not on the piano.
func (r *Registry) Start(p pianola.Pitch) {
	if !p.Valid() {
		return
	}
	if _, ok := r.active[p]; ok {
		return
	}
	r.active[p] = r.synth.NewVoice(p.Frequency())
	r.notify(p, true)
}

// Stop releases the voice of the pitch and forgets it immediately; the voice
// keeps fading out on its own, but cannot be addressed anymore, and the pitch
// can be started again right away. Stopping a pitch that is not sounding does
// nothing.
func (r *Registry) Stop(p pianola.Pitch) {
	v, ok := r.active[p]
	if !ok {
		return
	}
	v.Release(r.release)
	delete(r.active, p)
	r.notify(p, false)
}

// StopAll stops every sounding pitch. Used whenever the input loses contact
// with the keys, so that no note is left hanging.
func (r *Registry) StopAll() {
	for _, p := range r.Active() {
		r.Stop(p)
	}
}

// IsActive reports whether the pitch has a voice.
func (r *Registry) IsActive(p pianola.Pitch) bool {
	_, ok := r.active[p]
	return ok
}

// Active returns the sounding pitches in ascending order.
func (r *Registry) Active() []pianola.Pitch {
	ret := make([]pianola.Pitch, 0, len(r.active))
	for p := range r.active {
		ret = append(ret, p)
	}
	slices.Sort(ret)
	return ret
}

// Len returns the number of sounding pitches.
func (r *Registry) Len() int {
	return len(r.active)
}

func (r *Registry) notify(p pianola.Pitch, pressed bool) {
	if r.onChange != nil {
		r.onChange(p, pressed)
	}
}
