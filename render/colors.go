package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

// Palette, Tokyo Night derived
var (
	RgbBackground = spectrum.RGB{R: 26, G: 27, B: 38}
	RgbAxisPos    = spectrum.RGB{R: 169, G: 177, B: 214}
	RgbAxisNeg    = spectrum.RGB{R: 86, G: 95, B: 137}
	RgbAxisLabel  = spectrum.RGB{R: 192, G: 202, B: 245}
	RgbLabel      = spectrum.RGB{R: 200, G: 200, B: 200}
	RgbSelected   = spectrum.RGB{R: 255, G: 165, B: 0}
	RgbHUDText    = spectrum.RGB{R: 0, G: 0, B: 0}
	RgbHUDBg      = spectrum.RGB{R: 135, G: 206, B: 250}
	RgbHUDPaused  = spectrum.RGB{R: 255, G: 192, B: 203}
)

// Face and sphere line strengths over the background
const (
	frontFaceStrength = 0.9
	backFaceStrength  = 0.3
	sphereStrength    = 0.7
)

// tcellColor converts an engine colour for the screen
func tcellColor(c spectrum.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// lineColor mixes a zone tint toward full strength over the background
// Alpha lifts faint zones so their outlines stay visible
func lineColor(c spectrum.RGBA, strength float64) spectrum.RGB {
	base := spectrum.RGB{R: c.R, G: c.G, B: c.B}
	t := strength * (0.5 + 0.5*c.A)
	return RgbBackground.Blend(base, t)
}

// textStyle is a foreground over the background colour
func textStyle(fg spectrum.RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(RgbBackground))
}
