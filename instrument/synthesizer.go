package instrument

import (
	"fmt"
	"log"
	"time"
)

type (
	// PlayerSynthesizer creates voices that are played by a Player in the
	// audio goroutine. The voices are only handles: creating and releasing
	// them sends NoteOnMsg and NoteOffMsg to the player through the broker.
	PlayerSynthesizer struct {
		broker  *Broker
		alerts  *Alerts
		lastID  int
		closing bool // releases do not wait for the player
	}

	playerVoice struct {
		id    int
		synth *PlayerSynthesizer
	}
)

// releaseSendTimeout bounds how long releasing a note may block the control
// goroutine when the player is not draining its messages.
const releaseSendTimeout = 100 * time.Millisecond

// NewPlayerSynthesizer returns a synthesizer sending to the player of the
// broker. Problems are reported to alerts, which may be nil.
func NewPlayerSynthesizer(broker *Broker, alerts *Alerts) *PlayerSynthesizer {
	return &PlayerSynthesizer{broker: broker, alerts: alerts}
}

func (s *PlayerSynthesizer) NewVoice(frequency float64) Voice {
	s.lastID++
	v := &playerVoice{id: s.lastID, synth: s}
	if !TrySend(s.broker.ToPlayer, any(NoteOnMsg{ID: v.id, Frequency: frequency})) {
		s.report("NoteDropped", fmt.Sprintf("note %.2f Hz dropped: player is not responding", frequency))
	}
	return v
}

// Release is allowed to block for a moment: unlike a dropped note-on, a
// dropped note-off would leave the note sounding forever. When the
// synthesizer is closing, a PanicMsg follows, so Release never blocks.
func (v *playerVoice) Release(d time.Duration) {
	if v.synth.closing {
		TrySend(v.synth.broker.ToPlayer, any(NoteOffMsg{ID: v.id, Release: d}))
		return
	}
	if !TimeoutSend(v.synth.broker.ToPlayer, any(NoteOffMsg{ID: v.id, Release: d}), releaseSendTimeout) {
		v.synth.report("NoteDropped", fmt.Sprintf("release of voice %d dropped: player is not responding", v.id))
	}
}

// Close makes the releases that follow non-blocking, for a caller that is
// about to send a PanicMsg to the player.
func (s *PlayerSynthesizer) Close() {
	s.closing = true
}

func (s *PlayerSynthesizer) report(name, message string) {
	log.Print(message)
	if s.alerts != nil {
		s.alerts.AddNamed(name, message, Error)
	}
}
