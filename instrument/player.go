package instrument

import (
	"fmt"
	"time"

	"github.com/pianola/pianola"
	"github.com/pianola/pianola/synth"
)

// Player is the audio side of the instrument, run in the audio goroutine. It
// is controlled by messages from the model via the broker, and reports the
// levels back to the model after every buffer. The player is the only one
// touching the synth.
type Player struct {
	synth  *synth.Synth
	broker *Broker
}

// panicRelease is short enough to be heard as an immediate stop but long
// enough not to click.
const panicRelease = 5 * time.Millisecond

func NewPlayer(broker *Broker, synth *synth.Synth) *Player {
	return &Player{
		broker: broker,
		synth:  synth,
	}
}

// Process renders audio to the given buffer. Before rendering, it applies all
// the messages received from the model, in the order they were sent, so a
// note-off is never applied before the note-on of the same voice.
func (p *Player) Process(buffer pianola.AudioBuffer) error {
	p.processMessages()
	if p.synth == nil {
		buffer.Clear()
		return nil
	}
	if err := p.synth.Render(buffer); err != nil {
		p.SendAlert("PlayerCrash", fmt.Sprintf("synth.Render: %v", err), Error)
	}
	TrySend(p.broker.ToModel, MsgToModel{
		HasLevels: true,
		Voices:    p.synth.NumVoices(),
		Peak:      p.synth.Peak(),
	})
	return nil
}

func (p *Player) processMessages() {
loop:
	for {
		select {
		case msg := <-p.broker.ToPlayer:
			if p.synth == nil {
				continue
			}
			switch m := msg.(type) {
			case NoteOnMsg:
				p.synth.Trigger(m.ID, m.Frequency)
			case NoteOffMsg:
				p.synth.Release(m.ID, m.Release)
			case PanicMsg:
				p.synth.ReleaseAll(panicRelease)
			default:
				// ignore unknown messages
			}
		default:
			break loop
		}
	}
}

func (p *Player) SendAlert(name, message string, priority AlertPriority) {
	TrySend(p.broker.ToModel, MsgToModel{Data: Alert{
		Name:     name,
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	}})
}
