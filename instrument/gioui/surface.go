package gioui

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// Surface fills a background behind a widget. With FitHeight, the background
// only covers the height the widget used; otherwise it covers the maximum
// constraints.
type Surface struct {
	Color     color.NRGBA
	Inset     layout.Inset
	FitHeight bool
}

func (s Surface) Layout(gtx C, widget layout.Widget) D {
	bg := func(gtx C) D {
		paint.FillShape(gtx.Ops, s.Color, clip.Rect{Max: gtx.Constraints.Min}.Op())
		return D{Size: gtx.Constraints.Min}
	}
	fg := func(gtx C) D {
		return s.Inset.Layout(gtx, widget)
	}
	if s.FitHeight {
		macro := op.Record(gtx.Ops)
		dims := fg(gtx)
		call := macro.Stop()
		dims.Size.X = max(dims.Size.X, gtx.Constraints.Min.X)
		gtx.Constraints = layout.Exact(dims.Size)
		bg(gtx)
		call.Add(gtx.Ops)
		return dims
	}
	gtxbg := gtx
	gtxbg.Constraints.Min = gtxbg.Constraints.Max
	bg(gtxbg)
	return fg(gtx)
}
