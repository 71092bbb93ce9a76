package gioui

import (
	"fmt"
	"image/color"

	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/pianola/pianola/instrument"
	"github.com/pianola/pianola/version"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type StatusBar struct {
	model  *instrument.Model
	shaper *text.Shaper
	muted  *widget.Icon
}

var statusInset = layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8), Top: unit.Dp(4), Bottom: unit.Dp(4)}

func NewStatusBar(model *instrument.Model, shaper *text.Shaper) *StatusBar {
	muted, err := widget.NewIcon(icons.AVVolumeOff)
	if err != nil {
		panic(fmt.Errorf("failed to create icon: %w", err))
	}
	return &StatusBar{model: model, shaper: shaper, muted: muted}
}

// Layout draws the status bar: a hint while the audio is suspended, the
// number of sounding voices and the output level once it is running.
func (s *StatusBar) Layout(gtx C) D {
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	return Surface{Color: statusBarColor, Inset: statusInset, FitHeight: true}.Layout(gtx, func(gtx C) D {
		if s.model.Suspended() {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					gtx.Constraints.Min.X = gtx.Dp(unit.Dp(20))
					gtx.Constraints.Max.X = gtx.Constraints.Min.X
					return s.muted.Layout(gtx, suspendedColor)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
				layout.Flexed(1, s.label("Audio is suspended: click a key or press any key to start", suspendedColor)),
			)
		}
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(s.label(fmt.Sprintf("Voices: %d", s.model.Voices()), mediumEmphasisTextColor)),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Flexed(1, VuMeter{Peak: s.model.Peak(), Range: 48}.Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(s.label(version.VersionOrHash, mediumEmphasisTextColor)),
		)
	})
}

func (s *StatusBar) label(str string, c color.NRGBA) layout.Widget {
	l := Label(str, c, s.shaper)
	l.FontSize = unit.Sp(14)
	return l.Layout
}
