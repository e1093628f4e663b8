package colorspace

import "math"

// XYZ is a CIE 1931 tristimulus value relative to D65, Y in [0,1].
type XYZ struct {
	X, Y, Z float64
}

// Lab is a CIELAB color (D65, 2° observer). L is in [0,100].
type Lab struct {
	L, A, B float64
}

// LCH is the cylindrical form of Lab. H is in degrees [0,360).
type LCH struct {
	L, C, H float64
}

// D65 reference white.
var D65 = XYZ{X: 0.95047, Y: 1.0, Z: 1.08883}

const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

// LinearToXYZ converts linear sRGB to XYZ.
func LinearToXYZ(r, g, b float64) XYZ {
	return XYZ{
		X: 0.4124564*r + 0.3575761*g + 0.1804375*b,
		Y: 0.2126729*r + 0.7151522*g + 0.0721750*b,
		Z: 0.0193339*r + 0.1191920*g + 0.9503041*b,
	}
}

// XYZToLinear converts XYZ to linear sRGB. Results may fall outside [0,1].
func XYZToLinear(c XYZ) (r, g, b float64) {
	r = 3.2404542*c.X - 1.5371385*c.Y - 0.4985314*c.Z
	g = -0.9692660*c.X + 1.8760108*c.Y + 0.0415560*c.Z
	b = 0.0556434*c.X - 0.2040259*c.Y + 1.0572252*c.Z
	return r, g, b
}

// XYZToLab converts XYZ to CIELAB.
func XYZToLab(c XYZ) Lab {
	f := func(t float64) float64 {
		if t > labEpsilon {
			return math.Cbrt(t)
		}
		return (labKappa*t + 16) / 116
	}
	fx := f(c.X / D65.X)
	fy := f(c.Y / D65.Y)
	fz := f(c.Z / D65.Z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToXYZ converts CIELAB to XYZ.
func LabToXYZ(c Lab) XYZ {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200

	finv := func(t float64) float64 {
		if t3 := t * t * t; t3 > labEpsilon {
			return t3
		}
		return (116*t - 16) / labKappa
	}
	var yr float64
	if c.L > labKappa*labEpsilon {
		yr = fy * fy * fy
	} else {
		yr = c.L / labKappa
	}
	return XYZ{
		X: finv(fx) * D65.X,
		Y: yr * D65.Y,
		Z: finv(fz) * D65.Z,
	}
}

// LabToLCH converts Lab to its polar form.
func LabToLCH(c Lab) LCH {
	return LCH{L: c.L, C: math.Hypot(c.A, c.B), H: hueDegrees(c.A, c.B)}
}

// LCHToLab converts polar LCH back to Lab.
func LCHToLab(c LCH) Lab {
	a, b := polarToCartesian(c.C, c.H)
	return Lab{L: c.L, A: a, B: b}
}

// RGBToLab converts an 8-bit color to CIELAB.
func RGBToLab(c RGB) Lab {
	return XYZToLab(LinearToXYZ(c.Linear()))
}

// LabToRGB converts CIELAB to 8-bit sRGB, clamping out-of-gamut channels.
func LabToRGB(c Lab) RGB {
	return FromLinear(XYZToLinear(LabToXYZ(c)))
}

// RGBToLCH converts an 8-bit color to CIE LCH.
func RGBToLCH(c RGB) LCH {
	return LabToLCH(RGBToLab(c))
}

func hueDegrees(a, b float64) float64 {
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func polarToCartesian(c, h float64) (float64, float64) {
	rad := h * math.Pi / 180
	return c * math.Cos(rad), c * math.Sin(rad)
}
