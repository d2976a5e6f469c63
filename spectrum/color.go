package spectrum

import (
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel colour
type RGB struct {
	R, G, B uint8
}

// RGBA is an 8-bit colour with float alpha in [0, 1]
type RGBA struct {
	R, G, B uint8
	A       float64
}

var (
	RGBWhite = RGB{255, 255, 255}
	RGBBlack = RGB{0, 0, 0}
)

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Blend interpolates from c toward o by t in RGB space, t is clamped to [0, 1]
func (c RGB) Blend(o RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return o
	}
	return fromColorful(c.colorful().BlendRgb(o.colorful(), t))
}

// RGB drops alpha
func (c RGBA) RGB() RGB {
	return RGB{c.R, c.G, c.B}
}

// Over composites the tint over base using the tint alpha
func (c RGBA) Over(base RGB) RGB {
	return base.Blend(c.RGB(), c.A)
}
