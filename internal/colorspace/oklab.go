package colorspace

import "math"

// Oklab is a perceptually uniform color. L is in [0,1].
type Oklab struct {
	L, A, B float64
}

// Oklch is the polar form of Oklab. H is in degrees [0,360).
type Oklch struct {
	L, C, H float64
}

// LinearToOklab converts linear sRGB to Oklab.
func LinearToOklab(r, g, b float64) Oklab {
	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	lp, mp, sp := math.Cbrt(l), math.Cbrt(m), math.Cbrt(s)

	return Oklab{
		L: 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp,
		A: 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp,
		B: 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp,
	}
}

// OklabToLinear converts Oklab to linear sRGB. Results may fall outside
// [0,1].
func OklabToLinear(c Oklab) (r, g, b float64) {
	lp := c.L + 0.3963377774*c.A + 0.2158037573*c.B
	mp := c.L - 0.1055613458*c.A - 0.0638541728*c.B
	sp := c.L - 0.0894841775*c.A - 1.2914855480*c.B

	l, m, s := lp*lp*lp, mp*mp*mp, sp*sp*sp

	r = 4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g = -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	b = -0.0041960863*l - 0.7034186147*m + 1.7076147010*s
	return r, g, b
}

// RGBToOklab converts an 8-bit color to Oklab.
func RGBToOklab(c RGB) Oklab {
	return LinearToOklab(c.Linear())
}

// OklabToRGB converts Oklab to 8-bit sRGB, clamping out-of-gamut channels.
// Non-finite input yields black.
func OklabToRGB(c Oklab) RGB {
	return FromLinear(OklabToLinear(c))
}

// OklabToOklch converts Oklab to its polar form.
func OklabToOklch(c Oklab) Oklch {
	return Oklch{L: c.L, C: math.Hypot(c.A, c.B), H: hueDegrees(c.A, c.B)}
}

// OklchToOklab converts Oklch back to Oklab.
func OklchToOklab(c Oklch) Oklab {
	a, b := polarToCartesian(c.C, c.H)
	return Oklab{L: c.L, A: a, B: b}
}

// RGBToOklch converts an 8-bit color to Oklch.
func RGBToOklch(c RGB) Oklch {
	return OklabToOklch(RGBToOklab(c))
}

// OklchToRGB converts Oklch to 8-bit sRGB.
func OklchToRGB(c Oklch) RGB {
	return OklabToRGB(OklchToOklab(c))
}
