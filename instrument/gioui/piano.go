package gioui

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"github.com/pianola/pianola"
	"github.com/pianola/pianola/instrument"
)

type (
	// Piano is the on-screen keyboard. Every key is its own pointer area,
	// nested in the area of the whole keyboard, so that the pointer leaving
	// the keyboard can be told apart from the pointer moving between keys.
	Piano struct {
		model    *instrument.Model
		shaper   *text.Shaper
		keys     [pianola.NumKeys]pianoKey
		pointers map[pointer.ID]pianola.Pitch // the key each pressed pointer went down on
	}

	pianoKey struct {
		pitch pianola.Pitch
	}
)

const (
	blackKeyWidth  = 0.6 // relative to the white key width
	blackKeyHeight = 0.6 // relative to the keyboard height
)

var keyLabelInset = layout.UniformInset(unit.Dp(4))

func NewPiano(model *instrument.Model, shaper *text.Shaper) *Piano {
	p := &Piano{model: model, shaper: shaper, pointers: make(map[pointer.ID]pianola.Pitch)}
	for pitch := range pianola.Pitches() {
		p.keys[pitch.Index()].pitch = pitch
	}
	return p
}

// KeyRect returns the rectangle of the key on a keyboard of the given size.
func KeyRect(pitch pianola.Pitch, size image.Point) image.Rectangle {
	white, isBlack := pianola.KeyPosition(pitch)
	w := float32(size.X) / float32(pianola.NumWhiteKeys())
	if !isBlack {
		return image.Rect(int(float32(white)*w+.5), 0, int(float32(white+1)*w+.5), size.Y)
	}
	center := float32(white+1) * w
	half := w * blackKeyWidth / 2
	return image.Rect(int(center-half+.5), 0, int(center+half+.5), int(float32(size.Y)*blackKeyHeight+.5))
}

func (p *Piano) Layout(gtx C) D {
	p.update(gtx)
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, p)
	for _, black := range []bool{false, true} {
		for i := range p.keys {
			if p.keys[i].pitch.IsBlack() == black {
				p.layoutKey(gtx, &p.keys[i], KeyRect(p.keys[i].pitch, size))
			}
		}
	}
	return D{Size: size}
}

func (p *Piano) update(gtx C) {
	d := p.model.Dispatcher()
	// keys first: a press and a drag off the keyboard may arrive in the same
	// frame
	for i := range p.keys {
		k := &p.keys[i]
		for {
			ev, ok := gtx.Event(pointer.Filter{Target: k, Kinds: pointer.Press | pointer.Release | pointer.Leave | pointer.Cancel})
			if !ok {
				break
			}
			e, ok := ev.(pointer.Event)
			if !ok {
				continue
			}
			switch e.Kind {
			case pointer.Press:
				p.pointers[e.PointerID] = k.pitch
				d.PointerDown(k.pitch)
			case pointer.Release:
				delete(p.pointers, e.PointerID)
				d.PointerUp(k.pitch)
			case pointer.Leave:
				held, down := p.pointers[e.PointerID]
				down = down && held == k.pitch
				if down {
					delete(p.pointers, e.PointerID)
				}
				d.PointerLeaveKey(k.pitch, down)
			case pointer.Cancel:
				for id, held := range p.pointers {
					if held == k.pitch {
						delete(p.pointers, id)
					}
				}
				d.PointerCancel(k.pitch)
			}
		}
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{Target: p, Kinds: pointer.Leave | pointer.Cancel})
		if !ok {
			break
		}
		// touches also leave every area when lifted; only a mouse leaving
		// the keyboard stops the notes
		if e, ok := ev.(pointer.Event); ok && (e.Kind == pointer.Cancel || e.Source == pointer.Mouse) {
			clear(p.pointers)
			d.PointerLeaveSurface()
		}
	}
}

func (p *Piano) layoutKey(gtx C, k *pianoKey, r image.Rectangle) {
	defer op.Offset(r.Min).Push(gtx.Ops).Pop()
	size := r.Size()
	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, k)
	area.Pop()

	pressed := p.model.Pressed(k.pitch)
	var bg, fg color.NRGBA
	switch {
	case k.pitch.IsBlack() && pressed:
		bg, fg = blackKeyPressedColor, blackKeyTextColor
	case k.pitch.IsBlack():
		bg, fg = blackKeyColor, blackKeyTextColor
	case pressed:
		bg, fg = whiteKeyPressedColor, whiteKeyTextColor
	default:
		bg, fg = whiteKeyColor, whiteKeyTextColor
	}
	paint.FillShape(gtx.Ops, keyBorderColor, clip.Rect{Max: size}.Op())
	paint.FillShape(gtx.Ops, bg, clip.Rect{Min: image.Pt(1, 0), Max: size.Sub(image.Pt(1, 1))}.Op())

	gtx.Constraints = layout.Exact(size)
	hint := Label(p.model.Bindings().Hint(k.pitch), fg, p.shaper)
	hint.FontSize, hint.Alignment, hint.ShadeColor = keyHintFontSize, layout.Center, color.NRGBA{}
	name := Label(k.pitch.Name(), fg, p.shaper)
	name.FontSize, name.Alignment, name.ShadeColor = keyNameFontSize, layout.Center, color.NRGBA{}
	layout.S.Layout(gtx, func(gtx C) D {
		return keyLabelInset.Layout(gtx, func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(hint.Layout),
				layout.Rigid(name.Layout),
			)
		})
	})
}
