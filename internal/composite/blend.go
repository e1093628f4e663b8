package composite

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/chewxy/math32"
)

// BlendMode selects how a layer's color combines with the backdrop,
// following the W3C Compositing and Blending Level 1 definitions.
type BlendMode int

const (
	Normal BlendMode = iota
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity
)

var modeNames = [...]string{
	Normal:     "normal",
	Multiply:   "multiply",
	Screen:     "screen",
	Overlay:    "overlay",
	Darken:     "darken",
	Lighten:    "lighten",
	ColorDodge: "color-dodge",
	ColorBurn:  "color-burn",
	HardLight:  "hard-light",
	SoftLight:  "soft-light",
	Difference: "difference",
	Exclusion:  "exclusion",
	Hue:        "hue",
	Saturation: "saturation",
	Color:      "color",
	Luminosity: "luminosity",
}

// Modes returns all sixteen blend modes.
func Modes() []BlendMode {
	out := make([]BlendMode, len(modeNames))
	for i := range out {
		out[i] = BlendMode(i)
	}
	return out
}

func (m BlendMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
	return modeNames[m]
}

// Operator returns the canvas globalCompositeOperation name for m.
// Unknown modes map to source-over.
func (m BlendMode) Operator() string {
	if m <= Normal || int(m) >= len(modeNames) {
		return "source-over"
	}
	return modeNames[m]
}

// ParseBlendMode accepts the kebab-case names as well as snake_case and
// "source-over".
func ParseBlendMode(s string) (BlendMode, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if s == "" || s == "source-over" {
		return Normal, nil
	}
	for m, name := range modeNames {
		if name == s {
			return BlendMode(m), nil
		}
	}
	return Normal, fmt.Errorf("blend mode %q: %w", s, errs.ErrUnknownKind)
}

func (m BlendMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *BlendMode) UnmarshalText(b []byte) error {
	v, err := ParseBlendMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// separable reports whether m is defined channel by channel.
func (m BlendMode) separable() bool { return m < Hue }

// mix returns B(cb, cs) for straight-alpha colors in [0,1].
func (m BlendMode) mix(br, bg, bb, sr, sg, sb float32) (float32, float32, float32) {
	if m.separable() {
		f := m.channelFunc()
		return f(br, sr), f(bg, sg), f(bb, sb)
	}
	switch m {
	case Hue:
		r, g, b := setSat(sr, sg, sb, sat(br, bg, bb))
		return setLum(r, g, b, lum(br, bg, bb))
	case Saturation:
		r, g, b := setSat(br, bg, bb, sat(sr, sg, sb))
		return setLum(r, g, b, lum(br, bg, bb))
	case Color:
		return setLum(sr, sg, sb, lum(br, bg, bb))
	default:
		return setLum(br, bg, bb, lum(sr, sg, sb))
	}
}

func (m BlendMode) channelFunc() func(cb, cs float32) float32 {
	switch m {
	case Multiply:
		return func(cb, cs float32) float32 { return cb * cs }
	case Screen:
		return screen
	case Overlay:
		return func(cb, cs float32) float32 { return hardLight(cs, cb) }
	case Darken:
		return func(cb, cs float32) float32 { return min(cb, cs) }
	case Lighten:
		return func(cb, cs float32) float32 { return max(cb, cs) }
	case ColorDodge:
		return colorDodge
	case ColorBurn:
		return colorBurn
	case HardLight:
		return hardLight
	case SoftLight:
		return softLight
	case Difference:
		return func(cb, cs float32) float32 { return math32.Abs(cb - cs) }
	case Exclusion:
		return func(cb, cs float32) float32 { return cb + cs - 2*cb*cs }
	default:
		return func(_, cs float32) float32 { return cs }
	}
}

func screen(cb, cs float32) float32 { return cb + cs - cb*cs }

func hardLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb * 2 * cs
	}
	return screen(cb, 2*cs-1)
}

func colorDodge(cb, cs float32) float32 {
	switch {
	case cb == 0:
		return 0
	case cs >= 1:
		return 1
	}
	return min(1, cb/(1-cs))
}

func colorBurn(cb, cs float32) float32 {
	switch {
	case cb >= 1:
		return 1
	case cs <= 0:
		return 0
	}
	return 1 - min(1, (1-cb)/cs)
}

func softLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float32
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math32.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

func lum(r, g, b float32) float32 { return 0.3*r + 0.59*g + 0.11*b }

func sat(r, g, b float32) float32 { return max(r, g, b) - min(r, g, b) }

func clipColor(r, g, b float32) (float32, float32, float32) {
	l := lum(r, g, b)
	n, x := min(r, g, b), max(r, g, b)
	if n < 0 && l-n > 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 && x-l > 0 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

func setLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - lum(r, g, b)
	return clipColor(r+d, g+d, b+d)
}

func setSat(r, g, b, s float32) (float32, float32, float32) {
	c := [3]float32{r, g, b}
	lo, mid, hi := order(c)
	if c[hi] > c[lo] {
		c[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		c[hi] = s
	} else {
		c[mid], c[hi] = 0, 0
	}
	c[lo] = 0
	return c[0], c[1], c[2]
}

// order returns the indices of the smallest, middle and largest entries.
func order(c [3]float32) (lo, mid, hi int) {
	lo, mid, hi = 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	return lo, mid, hi
}
