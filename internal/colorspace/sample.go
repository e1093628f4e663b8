package colorspace

import (
	"fmt"
	"math"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/errs"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Space names a color space a Sample is expressed in.
type Space int

const (
	SpaceSRGB Space = iota
	SpaceLinear
	SpaceXYZ
	SpaceLab
	SpaceLCH
	SpaceOklab
	SpaceOklch
	SpaceHSL
)

var spaceNames = [...]string{
	SpaceSRGB:   "rgb",
	SpaceLinear: "linear",
	SpaceXYZ:    "xyz",
	SpaceLab:    "lab",
	SpaceLCH:    "lch",
	SpaceOklab:  "oklab",
	SpaceOklch:  "oklch",
	SpaceHSL:    "hsl",
}

func (s Space) String() string {
	if s >= 0 && int(s) < len(spaceNames) {
		return spaceNames[s]
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// HueIndex returns which component of a Sample in this space holds a hue
// angle, or -1 for rectangular spaces.
func (s Space) HueIndex() int {
	switch s {
	case SpaceLCH, SpaceOklch:
		return 2
	case SpaceHSL:
		return 0
	default:
		return -1
	}
}

// ParseSpace resolves a space name. "srgb" is accepted as an alias of rgb.
func ParseSpace(name string) (Space, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "srgb" {
		return SpaceSRGB, nil
	}
	for i, s := range spaceNames {
		if s == n {
			return Space(i), nil
		}
	}
	return 0, fmt.Errorf("color space %q: %w", name, errs.ErrUnknownKind)
}

// Sample is a color in a declared space. For SpaceSRGB the components are
// gamma-encoded in [0,1]; for polar spaces C2 (or C0 for HSL) carries the
// hue. Samples are values and are never mutated by this package.
type Sample struct {
	Space      Space
	C0, C1, C2 float64
	Alpha      float64
}

// SampleOf expresses an 8-bit color in the requested space.
func SampleOf(c RGB, space Space) Sample {
	r, g, b := c.Float()
	return Convert(Sample{Space: SpaceSRGB, C0: r, C1: g, C2: b, Alpha: 1}, space)
}

// RGB re-encodes the sample to 8-bit sRGB, clamping at this final step.
// Non-finite samples yield black.
func (s Sample) RGB() RGB {
	if !s.Finite() {
		return RGB{}
	}
	t := Convert(s, SpaceSRGB)
	return FromFloat(t.C0, t.C1, t.C2)
}

// Hex is shorthand for s.RGB().Hex().
func (s Sample) Hex() string {
	return s.RGB().Hex()
}

// Finite reports whether every component is a finite number.
func (s Sample) Finite() bool {
	return Finite(s.C0, s.C1, s.C2)
}

// Convert expresses s in another space. Components are not clamped.
func Convert(s Sample, to Space) Sample {
	if s.Space == to {
		return s
	}
	r, g, b := toLinear(s)
	out := fromLinear(r, g, b, to)
	out.Alpha = s.Alpha
	return out
}

func toLinear(s Sample) (r, g, b float64) {
	switch s.Space {
	case SpaceSRGB:
		return SRGBToLinear(s.C0), SRGBToLinear(s.C1), SRGBToLinear(s.C2)
	case SpaceLinear:
		return s.C0, s.C1, s.C2
	case SpaceXYZ:
		return XYZToLinear(XYZ{X: s.C0, Y: s.C1, Z: s.C2})
	case SpaceLab:
		return XYZToLinear(LabToXYZ(Lab{L: s.C0, A: s.C1, B: s.C2}))
	case SpaceLCH:
		return XYZToLinear(LabToXYZ(LCHToLab(LCH{L: s.C0, C: s.C1, H: s.C2})))
	case SpaceOklab:
		return OklabToLinear(Oklab{L: s.C0, A: s.C1, B: s.C2})
	case SpaceOklch:
		return OklabToLinear(OklchToOklab(Oklch{L: s.C0, C: s.C1, H: s.C2}))
	case SpaceHSL:
		return colorful.Hsl(WrapHue(s.C0), s.C1, s.C2).LinearRgb()
	default:
		return math.NaN(), math.NaN(), math.NaN()
	}
}

func fromLinear(r, g, b float64, to Space) Sample {
	switch to {
	case SpaceSRGB:
		return Sample{Space: to, C0: LinearToSRGB(r), C1: LinearToSRGB(g), C2: LinearToSRGB(b)}
	case SpaceLinear:
		return Sample{Space: to, C0: r, C1: g, C2: b}
	case SpaceXYZ:
		x := LinearToXYZ(r, g, b)
		return Sample{Space: to, C0: x.X, C1: x.Y, C2: x.Z}
	case SpaceLab:
		l := XYZToLab(LinearToXYZ(r, g, b))
		return Sample{Space: to, C0: l.L, C1: l.A, C2: l.B}
	case SpaceLCH:
		l := LabToLCH(XYZToLab(LinearToXYZ(r, g, b)))
		return Sample{Space: to, C0: l.L, C1: l.C, C2: l.H}
	case SpaceOklab:
		o := LinearToOklab(r, g, b)
		return Sample{Space: to, C0: o.L, C1: o.A, C2: o.B}
	case SpaceOklch:
		o := OklabToOklch(LinearToOklab(r, g, b))
		return Sample{Space: to, C0: o.L, C1: o.C, C2: o.H}
	case SpaceHSL:
		h, sat, l := colorful.LinearRgb(r, g, b).Hsl()
		return Sample{Space: to, C0: h, C1: sat, C2: l}
	default:
		return Sample{Space: to, C0: math.NaN(), C1: math.NaN(), C2: math.NaN()}
	}
}
