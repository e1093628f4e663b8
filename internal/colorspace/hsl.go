package colorspace

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSL is a hue/saturation/lightness triple. H is in degrees [0,360); S and
// L are in [0,1].
type HSL struct {
	H, S, L float64
}

// RGBToHSL converts an 8-bit color to HSL.
func RGBToHSL(c RGB) HSL {
	h, s, l := toColorful(c).Hsl()
	return HSL{H: h, S: s, L: l}
}

// HSLToRGB converts HSL to 8-bit sRGB. Hue wraps; S and L are clamped.
func HSLToRGB(c HSL) RGB {
	return fromColorful(colorful.Hsl(WrapHue(c.H), clamp01(c.S), clamp01(c.L)))
}

// WrapHue maps any angle into [0,360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	return FromFloat(c.R, c.G, c.B)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
