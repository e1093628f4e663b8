// Package gradient samples colors between gradient stops in a chosen color
// space and renders gradients as CSS, Tailwind and SVG.
package gradient

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
)

// DefaultSpace is the interpolation space used when none is given.
const DefaultSpace = colorspace.SpaceOklch

// neutralGray is returned by ColorAt for an empty stop list.
const neutralGray = "#808080"

// achromatic is the chroma (or HSL saturation) below which a hue is
// considered meaningless and the other endpoint's hue is used instead.
const achromatic = 1e-4

// Stop is a color at a position in [0,100].
type Stop struct {
	Color    string  `json:"color" yaml:"color" toml:"color"`
	Position float64 `json:"position" yaml:"position" toml:"position"`
}

// Kind is the geometric form of a gradient.
type Kind int

const (
	Linear Kind = iota
	Radial
	Conic
	Mesh
)

var kindNames = [...]string{Linear: "linear", Radial: "radial", Conic: "conic", Mesh: "mesh"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves "linear", "radial", "conic" or "mesh".
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, s) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("gradient kind %q: %w", s, errs.ErrUnknownKind)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Gradient is a renderable gradient. Zero Angle, CenterX and CenterY take
// the formatter defaults.
type Gradient struct {
	Name    string  `json:"name"`
	Kind    Kind    `json:"kind"`
	Angle   float64 `json:"angle,omitempty"`
	CenterX float64 `json:"centerX,omitempty"`
	CenterY float64 `json:"centerY,omitempty"`
	Stops   []Stop  `json:"stops"`
}

// Sorted returns a copy of stops ordered by position. Equal positions keep
// their input order.
func Sorted(stops []Stop) []Stop {
	out := slices.Clone(stops)
	slices.SortStableFunc(out, func(a, b Stop) int { return cmp.Compare(a.Position, b.Position) })
	return out
}

type parsedStop struct {
	Stop
	rgb colorspace.RGB
}

func parseStops(stops []Stop) ([]parsedStop, error) {
	sorted := Sorted(stops)
	out := make([]parsedStop, len(sorted))
	for i, s := range sorted {
		c, err := colorspace.ParseHex(s.Color)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		out[i] = parsedStop{Stop: s, rgb: c}
	}
	return out, nil
}

// Interpolate samples steps evenly spaced colors from the first stop's
// position to the last stop's, mixing the bracketing pair in space. It
// needs at least two stops.
func Interpolate(stops []Stop, steps int, space colorspace.Space) ([]string, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("interpolate: %d stops: %w", len(stops), errs.ErrDegenerateInput)
	}
	if steps < 1 {
		return nil, fmt.Errorf("interpolate: steps=%d: %w", steps, errs.ErrDegenerateInput)
	}
	ps, err := parseStops(stops)
	if err != nil {
		return nil, fmt.Errorf("interpolate: %w", err)
	}

	first, last := ps[0].Position, ps[len(ps)-1].Position
	out := make([]string, steps)
	for i := range out {
		p := first
		if steps > 1 {
			p = first + (last-first)*float64(i)/float64(steps-1)
		}
		out[i] = sampleAt(ps, p, space).Hex()
	}
	return out, nil
}

// ColorAt returns the color at position p. At or beyond either end it
// returns that stop's color string unchanged; an empty list yields mid
// gray.
func ColorAt(stops []Stop, p float64, space colorspace.Space) (string, error) {
	if len(stops) == 0 {
		return neutralGray, nil
	}
	ps, err := parseStops(stops)
	if err != nil {
		return "", fmt.Errorf("color at: %w", err)
	}
	if len(ps) == 1 || p <= ps[0].Position {
		return ps[0].Color, nil
	}
	if p >= ps[len(ps)-1].Position {
		return ps[len(ps)-1].Color, nil
	}
	return sampleAt(ps, p, space).Hex(), nil
}

func sampleAt(ps []parsedStop, p float64, space colorspace.Space) colorspace.RGB {
	if p <= ps[0].Position {
		return ps[0].rgb
	}
	for i := 0; i < len(ps)-1; i++ {
		a, b := ps[i], ps[i+1]
		if p > b.Position {
			continue
		}
		span := b.Position - a.Position
		if span <= 0 {
			return b.rgb
		}
		return Mix(a.rgb, b.rgb, (p-a.Position)/span, space)
	}
	return ps[len(ps)-1].rgb
}

// Mix blends a toward b by t in [0,1] in the given space. Hue components
// travel the shorter arc.
func Mix(a, b colorspace.RGB, t float64, space colorspace.Space) colorspace.RGB {
	sa := colorspace.SampleOf(a, space)
	sb := colorspace.SampleOf(b, space)
	out := colorspace.Sample{
		Space: space,
		C0:    lerp(sa.C0, sb.C0, t),
		C1:    lerp(sa.C1, sb.C1, t),
		C2:    lerp(sa.C2, sb.C2, t),
		Alpha: 1,
	}

	switch space.HueIndex() {
	case 0:
		out.C0 = mixHue(sa.C0, sb.C0, sa.C1, sb.C1, t)
	case 2:
		out.C2 = mixHue(sa.C2, sb.C2, sa.C1, sb.C1, t)
	}
	return out.RGB()
}

// mixHue interpolates h1 to h2 along the shorter arc. A side whose chroma
// is negligible adopts the other side's hue.
func mixHue(h1, h2, c1, c2, t float64) float64 {
	switch {
	case c1 < achromatic && c2 < achromatic:
		return 0
	case c1 < achromatic:
		return h2
	case c2 < achromatic:
		return h1
	}
	d := h2 - h1
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return colorspace.WrapHue(h1 + d*t)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// round2 trims float noise from generated coordinates.
func round2(v float64) float64 { return math.Round(v*100) / 100 }
