package gioui_test

import (
	"image"
	"time"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/input"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/pianola/pianola"
	"github.com/pianola/pianola/instrument"
)

// testWindow lays out a widget into ops and routes queued events to it, the
// way app.Window does, without opening a window.
type testWindow struct {
	router input.Router
	ops    op.Ops
	size   image.Point
	layout func(gtx layout.Context)
}

func newTestWindow(size image.Point, w func(gtx layout.Context)) *testWindow {
	tw := &testWindow{size: size, layout: w}
	tw.frame()
	return tw
}

func (w *testWindow) frame() {
	w.ops.Reset()
	gtx := layout.Context{
		Ops:         &w.ops,
		Constraints: layout.Exact(w.size),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Now:         time.Now(),
		Source:      w.router.Source(),
	}
	w.layout(gtx)
	w.router.Frame(&w.ops)
}

// send queues the events one at a time, laying out a frame after each.
func (w *testWindow) send(events ...event.Event) {
	for _, e := range events {
		w.router.Queue(e)
		w.frame()
	}
}

func mouse(kind pointer.Kind, x, y float32) pointer.Event {
	e := pointer.Event{Kind: kind, Source: pointer.Mouse, Position: f32.Pt(x, y)}
	if kind == pointer.Press || kind == pointer.Drag {
		e.Buttons = pointer.ButtonPrimary
	}
	return e
}

func touch(kind pointer.Kind, id pointer.ID, x, y float32) pointer.Event {
	return pointer.Event{Kind: kind, Source: pointer.Touch, PointerID: id, Position: f32.Pt(x, y)}
}

type fakeContext struct {
	suspended bool
}

func (c *fakeContext) Play(pianola.AudioSource) pianola.CloserWaiter { return nil }
func (c *fakeContext) Suspended() bool                               { return c.suspended }
func (c *fakeContext) Resume() error {
	c.suspended = false
	return nil
}

func newTestModel(audio pianola.AudioContext) *instrument.Model {
	return instrument.NewModel(instrument.NewBroker(), audio, pianola.DefaultBindings())
}
