// Package colorspace converts between sRGB, linear RGB, CIE XYZ (D65),
// CIELAB/LCH, Oklab/Oklch and HSL.
//
// Every conversion is total: inputs and outputs are plain float64 values
// and nothing here returns an error. Out-of-gamut values flow through the
// intermediate spaces untouched and are clamped only when re-encoding to
// 8-bit sRGB.
package colorspace

import "math"

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// SRGBToLinear decodes one gamma-encoded sRGB component in [0,1].
func SRGBToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes one linear component back to gamma-encoded sRGB.
// Negative inputs keep their sign so out-of-gamut values stay monotonic.
func LinearToSRGB(v float64) float64 {
	if v < 0 {
		return -LinearToSRGB(-v)
	}
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// Linear returns the linear-light components of c in [0,1].
func (c RGB) Linear() (r, g, b float64) {
	return SRGBToLinear(float64(c.R) / 255),
		SRGBToLinear(float64(c.G) / 255),
		SRGBToLinear(float64(c.B) / 255)
}

// Float returns the gamma-encoded components of c in [0,1].
func (c RGB) Float() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// FromLinear re-encodes linear components to 8-bit sRGB with clamping.
func FromLinear(r, g, b float64) RGB {
	return FromFloat(LinearToSRGB(r), LinearToSRGB(g), LinearToSRGB(b))
}

// FromFloat quantizes gamma-encoded components in [0,1] to 8 bits. This is
// the only place values are clamped. NaN maps to 0.
func FromFloat(r, g, b float64) RGB {
	return RGB{R: quantize(r), G: quantize(g), B: quantize(b)}
}

func quantize(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Luminance is the BT.601 luma of c in 0..255, the weighting used by the
// tone and effect operators.
func (c RGB) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// RelativeLuminance is the WCAG 2.x relative luminance of c in [0,1].
func (c RGB) RelativeLuminance() float64 {
	tr := func(v uint8) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*tr(c.R) + 0.7152*tr(c.G) + 0.0722*tr(c.B)
}
