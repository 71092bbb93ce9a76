package instrument_test

import (
	"testing"
	"time"

	"github.com/pianola/pianola"
	"github.com/pianola/pianola/instrument"
)

type fakeContext struct {
	fakeAudio
}

func (c *fakeContext) Play(pianola.AudioSource) pianola.CloserWaiter { return nil }

// drainPlayer returns the messages sent to the player.
func drainPlayer(b *instrument.Broker) []any {
	var ret []any
	for {
		select {
		case msg := <-b.ToPlayer:
			ret = append(ret, msg)
		default:
			return ret
		}
	}
}

func TestModelSendsNotes(t *testing.T) {
	b := instrument.NewBroker()
	m := instrument.NewModel(b, nil, pianola.DefaultBindings())
	d := m.Dispatcher()
	d.KeyDown("A")
	d.KeyDown("A")
	d.PointerDown(48)
	d.KeyUp("A")
	d.PointerDown(48)
	msgs := drainPlayer(b)
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3: %v", len(msgs), msgs)
	}
	on1, ok1 := msgs[0].(instrument.NoteOnMsg)
	off, ok2 := msgs[1].(instrument.NoteOffMsg)
	on2, ok3 := msgs[2].(instrument.NoteOnMsg)
	if !ok1 || !ok2 || !ok3 {
		t.Fatalf("messages = %v, want on, off, on", msgs)
	}
	if off.ID != on1.ID || on2.ID == on1.ID {
		t.Errorf("voice ids: on %d, off %d, on %d", on1.ID, off.ID, on2.ID)
	}
	if off.Release != pianola.DefaultPatch.Envelope.Release {
		t.Errorf("release = %v, want %v", off.Release, pianola.DefaultPatch.Envelope.Release)
	}
	if on1.Frequency != pianola.Pitch(48).Frequency() {
		t.Errorf("frequency = %v", on1.Frequency)
	}
	if !m.Pressed(48) || m.Pressed(49) {
		t.Errorf("pressed flags wrong")
	}
}

func TestModelProcessMsg(t *testing.T) {
	b := instrument.NewBroker()
	m := instrument.NewModel(b, nil, pianola.DefaultBindings())
	m.ProcessMsg(instrument.MsgToModel{HasLevels: true, Voices: 3, Peak: 0.5})
	if m.Voices() != 3 || m.Peak() != 0.5 {
		t.Fatalf("levels = %d, %v", m.Voices(), m.Peak())
	}
	called := false
	m.ProcessMsg(instrument.MsgToModel{Data: func() { called = true }})
	if !called {
		t.Fatalf("function message not called")
	}
	m.ProcessMsg(instrument.MsgToModel{Data: instrument.Alert{Message: "x", Duration: time.Second}})
	if m.Alerts().Len() != 1 {
		t.Fatalf("alert not added")
	}
	if m.Voices() != 3 {
		t.Fatalf("message without levels changed the levels")
	}
}

func TestModelClose(t *testing.T) {
	b := instrument.NewBroker()
	m := instrument.NewModel(b, nil, pianola.DefaultBindings())
	m.Dispatcher().KeyDown("A")
	m.Dispatcher().PointerDown(55)
	drainPlayer(b)
	m.Close()
	msgs := drainPlayer(b)
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 2 note offs and a panic", len(msgs))
	}
	if _, ok := msgs[2].(instrument.PanicMsg); !ok {
		t.Fatalf("last message = %v, want panic", msgs[2])
	}
	if m.Registry().Len() != 0 || m.Pressed(48) || m.Pressed(55) {
		t.Fatalf("notes left after close")
	}
}

func TestModelSuspended(t *testing.T) {
	ctx := &fakeContext{fakeAudio{suspended: true}}
	m := instrument.NewModel(instrument.NewBroker(), ctx, pianola.DefaultBindings())
	if !m.Suspended() {
		t.Fatalf("model not suspended")
	}
	m.Dispatcher().PointerDown(60)
	if m.Suspended() {
		t.Fatalf("gesture did not resume the audio")
	}
}

func TestModelReportsDroppedNotes(t *testing.T) {
	b := &instrument.Broker{
		ToModel:  make(chan instrument.MsgToModel, 1),
		ToPlayer: make(chan any),
	}
	m := instrument.NewModel(b, nil, pianola.DefaultBindings())
	m.Dispatcher().KeyDown("A")
	if !m.Registry().IsActive(48) {
		t.Fatalf("note not registered")
	}
	if m.Alerts().Len() != 1 {
		t.Fatalf("dropped note not reported")
	}
}

func TestModelCloseDoesNotWaitForEachNote(t *testing.T) {
	b := &instrument.Broker{
		ToModel:  make(chan instrument.MsgToModel, 1),
		ToPlayer: make(chan any),
	}
	m := instrument.NewModel(b, nil, pianola.DefaultBindings())
	for p := range pianola.Pitches() {
		m.Dispatcher().PointerDown(p)
	}
	start := time.Now()
	m.Close()
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("Close blocked for %v with a stalled player", elapsed)
	}
	if m.Registry().Len() != 0 {
		t.Fatalf("notes left after close: %v", m.Registry().Active())
	}
}
