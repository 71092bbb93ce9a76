package gioui

import (
	"image/color"

	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/unit"
)

var fontCollection []font.FontFace = gofont.Collection()

var black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

var primaryColor = color.NRGBA{R: 206, G: 147, B: 216, A: 255}

var highEmphasisTextColor = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
var mediumEmphasisTextColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}

var backgroundColor = color.NRGBA{R: 18, G: 18, B: 18, A: 255}

var labelDefaultFont = fontCollection[6].Font
var labelDefaultFontSize = unit.Sp(18)

var whiteKeyColor = color.NRGBA{R: 240, G: 240, B: 235, A: 255}
var whiteKeyPressedColor = primaryColor
var blackKeyColor = color.NRGBA{R: 30, G: 30, B: 32, A: 255}
var blackKeyPressedColor = color.NRGBA{R: 140, G: 90, B: 150, A: 255}
var keyBorderColor = color.NRGBA{R: 60, G: 60, B: 62, A: 255}
var whiteKeyTextColor = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
var blackKeyTextColor = highEmphasisTextColor
var keyHintFontSize = unit.Sp(14)
var keyNameFontSize = unit.Sp(12)

var statusBarColor = color.NRGBA{R: 37, G: 37, B: 38, A: 255}
var suspendedColor = color.NRGBA{R: 251, G: 192, B: 45, A: 255}

var errorColor = color.NRGBA{R: 207, G: 102, B: 121, A: 255}
var warningColor = color.NRGBA{R: 251, G: 192, B: 45, A: 255}
var popupSurfaceColor = color.NRGBA{R: 50, G: 50, B: 51, A: 255}

func newShaper() *text.Shaper {
	return text.NewShaper(text.NoSystemFonts(), text.WithCollection(fontCollection))
}
