package instrument

import (
	"github.com/pianola/pianola"
	"gitlab.com/gomidi/midi/v2"
)

// Dispatcher translates raw input, pointers on the on-screen keys, computer
// keyboard keys and MIDI messages, into starting and stopping pitches in the
// registry. Input that does not resolve to a pitch is ignored.
type Dispatcher struct {
	registry  *Registry
	bindings  pianola.Bindings
	activator *Activator
	held      map[string]pianola.Pitch // computer keys currently held down
}

// NewDispatcher returns a dispatcher. activator may be nil, in which case
// gestures do not try to resume the audio.
func NewDispatcher(registry *Registry, bindings pianola.Bindings, activator *Activator) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		bindings:  bindings,
		activator: activator,
		held:      make(map[string]pianola.Pitch),
	}
}

func (d *Dispatcher) Bindings() pianola.Bindings { return d.bindings }

// Gesture is a click or a touch anywhere in the window. It does not play
// anything, but may resume the audio.
func (d *Dispatcher) Gesture() {
	d.activate()
}

// PointerDown is a mouse button press or a touch starting on a key.
func (d *Dispatcher) PointerDown(p pianola.Pitch) {
	d.activate()
	d.registry.Start(p)
}

// PointerUp is a mouse button release or a touch ending on a key.
func (d *Dispatcher) PointerUp(p pianola.Pitch) {
	d.registry.Stop(p)
}

// PointerLeaveKey is the pointer moving off a key. If the pointer was holding
// the key down, the key is released.
func (d *Dispatcher) PointerLeaveKey(p pianola.Pitch, buttonDown bool) {
	if buttonDown {
		d.registry.Stop(p)
	}
}

// PointerCancel is the platform taking the pointer away, e.g. a touch turned
// into a system gesture.
func (d *Dispatcher) PointerCancel(p pianola.Pitch) {
	d.registry.Stop(p)
}

// PointerLeaveSurface is the pointer leaving the whole keyboard: every note
// stops.
func (d *Dispatcher) PointerLeaveSurface() {
	d.registry.StopAll()
}

// KeyDown is a computer key being pressed. Only the first press of a held key
// starts a note; the auto-repeated presses that follow are ignored until the
// key is released. Every key press counts as a gesture that may resume the
// audio, bound or not.
func (d *Dispatcher) KeyDown(name string) {
	d.activate()
	key := pianola.NormalizeKey(name)
	p, ok := d.bindings[key]
	if !ok {
		return
	}
	if _, held := d.held[key]; held {
		return
	}
	d.held[key] = p
	d.registry.Start(p)
}

// KeyUp is a computer key being released.
func (d *Dispatcher) KeyUp(name string) {
	key := pianola.NormalizeKey(name)
	p, ok := d.bindings[key]
	if !ok {
		return
	}
	delete(d.held, key)
	d.registry.Stop(p)
}

// FocusLost is the window losing the keyboard focus. Key releases will not be
// seen anymore, so all held keys are forgotten and every note stops.
func (d *Dispatcher) FocusLost() {
	clear(d.held)
	d.registry.StopAll()
}

// MIDI handles note-on and note-off messages. A note-on with zero velocity is
// a note-off. Notes outside the piano and other messages are ignored.
func (d *Dispatcher) MIDI(msg midi.Message) {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
		d.registry.Start(pianola.Pitch(key))
	case msg.GetNoteOff(&channel, &key, &velocity), msg.GetNoteOn(&channel, &key, &velocity):
		d.registry.Stop(pianola.Pitch(key))
	}
}

// Held reports whether the computer key is currently held down.
func (d *Dispatcher) Held(name string) bool {
	_, ok := d.held[pianola.NormalizeKey(name)]
	return ok
}

func (d *Dispatcher) activate() {
	if d.activator != nil {
		d.activator.Activate()
	}
}
