package gioui

import (
	"image"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/pianola/pianola/instrument"
	"github.com/pianola/pianola/version"
)

type (
	PianoApp struct {
		Piano      *Piano
		StatusBar  *StatusBar
		PopupAlert *PopupAlert

		preferences Preferences
		focused     bool

		*instrument.Model
	}

	C = layout.Context
	D = layout.Dimensions
)

var pianoInset = layout.UniformInset(unit.Dp(12))

// configWarningDuration is how long problems in the user's configuration
// stay on the screen.
const configWarningDuration = 10 * time.Second

func NewPianoApp(model *instrument.Model, preferences Preferences) *PianoApp {
	shaper := newShaper()
	return &PianoApp{
		Piano:       NewPiano(model, shaper),
		StatusBar:   NewStatusBar(model, shaper),
		PopupAlert:  NewPopupAlert(model.Alerts(), shaper),
		preferences: preferences,
		focused:     true,
		Model:       model,
	}
}

// Warn shows a configuration problem to the user.
func (a *PianoApp) Warn(err error) {
	if err == nil {
		return
	}
	a.Alerts().AddAlert(instrument.Alert{
		Priority: instrument.Warning,
		Message:  err.Error(),
		Duration: configWarningDuration,
	})
}

// Main runs the window until it is closed, or until something is sent to
// CloseGUI of the broker. All notes are stopped when Main returns, and
// FinishedGUI of the broker is closed.
func (a *PianoApp) Main() {
	var ops op.Ops
	w := a.newWindow()
	acks := make(chan struct{})
	events := make(chan event.Event)
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()
F:
	for {
		select {
		case e := <-a.Broker().ToModel:
			a.ProcessMsg(e)
			w.Invalidate()
		case <-a.Broker().CloseGUI:
			w.Perform(system.ActionClose)
		case e := <-events:
			switch e := e.(type) {
			case app.DestroyEvent:
				acks <- struct{}{}
				break F
			case app.ConfigEvent:
				if a.focused && !e.Config.Focused {
					a.Dispatcher().FocusLost()
					w.Invalidate()
				}
				a.focused = e.Config.Focused
			case app.FrameEvent:
				gtx := app.NewContext(&ops, e)
				a.Layout(gtx)
				e.Frame(gtx.Ops)
			}
			acks <- struct{}{}
		}
	}
	a.Model.Close()
	close(a.Broker().FinishedGUI)
}

func (a *PianoApp) newWindow() *app.Window {
	w := new(app.Window)
	w.Option(app.Title("Pianola " + version.VersionOrHash))
	w.Option(app.Size(a.preferences.WindowSize()))
	w.Option(app.MinSize(unit.Dp(320), unit.Dp(160)))
	if a.preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	return w
}

func (a *PianoApp) Layout(gtx C) {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, backgroundColor)
	a.handleKeys(gtx)
	a.handleGestures(gtx)
	event.Op(gtx.Ops, a)
	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return pianoInset.Layout(gtx, a.Piano.Layout)
		}),
		layout.Rigid(a.StatusBar.Layout),
	)
	a.PopupAlert.Layout(gtx)
}

// handleKeys is the top level key handler: every key goes to the dispatcher,
// whether it plays a note or not, as any key press may resume the audio.
func (a *PianoApp) handleKeys(gtx C) {
	d := a.Dispatcher()
	for {
		ev, ok := gtx.Event(key.Filter{Name: "", Optional: key.ModAlt | key.ModCommand | key.ModCtrl | key.ModShift | key.ModShortcut | key.ModSuper})
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok {
			continue
		}
		switch e.State {
		case key.Press:
			d.KeyDown(string(e.Name))
		case key.Release:
			d.KeyUp(string(e.Name))
		}
	}
}

// handleGestures lets a click or a touch anywhere in the window, not just on
// the keys, resume the audio.
func (a *PianoApp) handleGestures(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{Target: a, Kinds: pointer.Press})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok && e.Kind == pointer.Press {
			a.Dispatcher().Gesture()
		}
	}
}
