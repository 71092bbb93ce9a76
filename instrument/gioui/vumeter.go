package gioui

import (
	"image"
	"math"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

type VuMeter struct {
	Peak  float32 // linear peak level of the output, 1 being full scale
	Range float32 // dB range of the meter, from -Range to 0 dBFS
}

func (v VuMeter) Layout(gtx C) D {
	defer op.Offset(image.Point{}).Push(gtx.Ops).Pop()
	width := gtx.Constraints.Max.X
	height := gtx.Dp(unit.Dp(6))
	paint.FillShape(gtx.Ops, backgroundColor, clip.Rect(image.Rect(0, 0, width, height)).Op())
	if v.Peak > 0 && v.Range > 0 {
		value := float32(20*math.Log10(float64(v.Peak))) + v.Range
		if value > 0 {
			color := mediumEmphasisTextColor
			if value >= v.Range {
				color = errorColor
			}
			x := min(int(value/v.Range*float32(width)+0.5), width)
			paint.FillShape(gtx.Ops, color, clip.Rect(image.Rect(0, 0, x, height)).Op())
		}
	}
	return D{Size: image.Pt(width, height)}
}
