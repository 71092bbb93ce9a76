package instrument_test

import (
	"testing"
	"time"

	"github.com/pianola/pianola"
	"github.com/pianola/pianola/instrument"
	"github.com/pianola/pianola/synth"
)

const testSampleRate = 44100

func newTestPlayer() (*instrument.Player, *instrument.Broker, *synth.Synth) {
	b := instrument.NewBroker()
	s := synth.New(pianola.DefaultPatch, testSampleRate)
	return instrument.NewPlayer(b, s), b, s
}

// lastLevels drains the messages to the model and returns the last levels.
func lastLevels(t *testing.T, b *instrument.Broker) instrument.MsgToModel {
	t.Helper()
	var ret instrument.MsgToModel
	for {
		select {
		case msg := <-b.ToModel:
			if msg.HasLevels {
				ret = msg
			}
		default:
			if !ret.HasLevels {
				t.Fatalf("player sent no levels")
			}
			return ret
		}
	}
}

func TestPlayerNoteOnAndOff(t *testing.T) {
	p, b, s := newTestPlayer()
	buf := make(pianola.AudioBuffer, 512)
	b.ToPlayer <- instrument.NoteOnMsg{ID: 1, Frequency: pianola.Pitch(48).Frequency()}
	if err := p.Process(buf); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if s.NumVoices() != 1 {
		t.Fatalf("got %d voices, want 1", s.NumVoices())
	}
	levels := lastLevels(t, b)
	if levels.Voices != 1 || levels.Peak <= 0 {
		t.Fatalf("levels = %+v, want 1 voice and a positive peak", levels)
	}
	if buf[511][0] == 0 || buf[511][0] != buf[511][1] {
		t.Errorf("last frame = %v, want the same non-zero signal on both channels", buf[511])
	}
	b.ToPlayer <- instrument.NoteOffMsg{ID: 1, Release: time.Millisecond}
	p.Process(buf)
	if s.NumVoices() != 0 {
		t.Fatalf("voice not freed after its release")
	}
	p.Process(buf)
	if levels := lastLevels(t, b); levels.Voices != 0 || levels.Peak != 0 {
		t.Fatalf("levels after release = %+v, want silence", levels)
	}
}

func TestPlayerAppliesMessagesInOrder(t *testing.T) {
	p, b, s := newTestPlayer()
	buf := make(pianola.AudioBuffer, 512)
	// a quick tap: both messages arrive before the next buffer
	b.ToPlayer <- instrument.NoteOnMsg{ID: 1, Frequency: 261.63}
	b.ToPlayer <- instrument.NoteOffMsg{ID: 1, Release: time.Millisecond}
	b.ToPlayer <- instrument.NoteOnMsg{ID: 2, Frequency: 261.63}
	p.Process(buf)
	if _, ok := s.Voice(1); ok {
		t.Fatalf("tapped voice still sounding")
	}
	if _, ok := s.Voice(2); !ok {
		t.Fatalf("voice 2 not sounding")
	}
}

func TestPlayerPanic(t *testing.T) {
	p, b, s := newTestPlayer()
	buf := make(pianola.AudioBuffer, 1024)
	for i := range pianola.NumKeys {
		b.ToPlayer <- instrument.NoteOnMsg{ID: i + 1, Frequency: 200 + float64(i)*10}
	}
	p.Process(buf)
	if s.NumVoices() != pianola.NumKeys {
		t.Fatalf("got %d voices, want %d", s.NumVoices(), pianola.NumKeys)
	}
	b.ToPlayer <- instrument.PanicMsg{}
	b.ToPlayer <- "unknown message"
	p.Process(buf)
	if s.NumVoices() != 0 {
		t.Fatalf("%d voices left after panic", s.NumVoices())
	}
}

func TestPlayerWithoutSynth(t *testing.T) {
	b := instrument.NewBroker()
	p := instrument.NewPlayer(b, nil)
	buf := pianola.AudioBuffer{{1, 1}, {0.5, -0.5}}
	b.ToPlayer <- instrument.NoteOnMsg{ID: 1, Frequency: 440}
	if err := p.Process(buf); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, f := range buf {
		if f != [2]float32{} {
			t.Fatalf("frame %d = %v, want silence", i, f)
		}
	}
	if len(b.ToPlayer) != 0 {
		t.Fatalf("messages not drained")
	}
}

func TestPlayerSendAlert(t *testing.T) {
	p, b, _ := newTestPlayer()
	p.SendAlert("Test", "hello", instrument.Warning)
	m := instrument.NewModel(b, nil, pianola.DefaultBindings())
	m.ProcessMsg(<-b.ToModel)
	if m.Alerts().Len() != 1 {
		t.Fatalf("got %d alerts, want 1", m.Alerts().Len())
	}
	for _, a := range m.Alerts().Iterate {
		if a.Name != "Test" || a.Message != "hello" || a.Priority != instrument.Warning {
			t.Fatalf("alert = %+v", a)
		}
	}
}
