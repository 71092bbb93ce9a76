package instrument

import (
	"github.com/pianola/pianola"
)

// Model is the control side of the instrument: the registry of sounding
// pitches, the input dispatcher and the state shown by the view. The model is
// not safe for concurrent use; it is owned by the control goroutine, which
// also feeds it the messages from the player with ProcessMsg.
type Model struct {
	broker     *Broker
	audio      pianola.AudioContext
	alerts     Alerts
	activator  *Activator
	synth      *PlayerSynthesizer
	registry   *Registry
	dispatcher *Dispatcher

	pressed [pianola.NumKeys]bool
	voices  int
	peak    float32
}

// NewModel wires a model to the player of the broker. audio may be nil if the
// model is not driven by user gestures.
func NewModel(broker *Broker, audio pianola.AudioContext, bindings pianola.Bindings) *Model {
	m := &Model{broker: broker, audio: audio}
	if audio != nil {
		m.activator = NewActivator(audio, &m.alerts)
	}
	m.synth = NewPlayerSynthesizer(broker, &m.alerts)
	m.registry = NewRegistry(m.synth, pianola.DefaultPatch.Envelope.Release, m.setPressed)
	m.dispatcher = NewDispatcher(m.registry, bindings, m.activator)
	return m
}

func (m *Model) Broker() *Broker              { return m.broker }
func (m *Model) Alerts() *Alerts              { return &m.alerts }
func (m *Model) Registry() *Registry          { return m.registry }
func (m *Model) Dispatcher() *Dispatcher      { return m.dispatcher }
func (m *Model) Bindings() pianola.Bindings   { return m.dispatcher.Bindings() }
func (m *Model) Pressed(p pianola.Pitch) bool { return p.Valid() && m.pressed[p.Index()] }

// Voices returns the number of voices the player reported sounding, including
// the released ones still fading out.
func (m *Model) Voices() int { return m.voices }

// Peak returns the peak output level the player last reported.
func (m *Model) Peak() float32 { return m.peak }

// Suspended reports whether the audio output is not running yet.
func (m *Model) Suspended() bool {
	return m.audio != nil && m.audio.Suspended()
}

// ProcessMsg folds a message from the player into the model.
func (m *Model) ProcessMsg(msg MsgToModel) {
	if msg.HasLevels {
		m.voices = msg.Voices
		m.peak = msg.Peak
	}
	switch e := msg.Data.(type) {
	case Alert:
		m.alerts.AddAlert(e)
	case func():
		e()
	default:
		// ignore unknown messages
	}
}

// Close stops every note and silences the player. The note-offs are sent
// only if the player has room for them, as the PanicMsg that follows releases
// every voice anyway; Close blocks for at most releaseSendTimeout.
func (m *Model) Close() {
	m.synth.Close()
	m.dispatcher.FocusLost()
	TimeoutSend(m.broker.ToPlayer, any(PanicMsg{}), releaseSendTimeout)
}

func (m *Model) setPressed(p pianola.Pitch, pressed bool) {
	if p.Valid() {
		m.pressed[p.Index()] = pressed
	}
}
