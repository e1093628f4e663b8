package palette

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
)

// Harmony names a hue-rotation scheme around a base color.
type Harmony int

const (
	Complementary Harmony = iota
	Analogous
	Triadic
	SplitComplementary
	Monochromatic
)

var harmonyNames = map[Harmony]string{
	Complementary:      "complementary",
	Analogous:          "analogous",
	Triadic:            "triadic",
	SplitComplementary: "split-complementary",
	Monochromatic:      "monochromatic",
}

func (h Harmony) String() string {
	if n, ok := harmonyNames[h]; ok {
		return n
	}
	return fmt.Sprintf("Harmony(%d)", int(h))
}

// ParseHarmony resolves a harmony by name.
func ParseHarmony(s string) (Harmony, error) {
	for h, n := range harmonyNames {
		if strings.EqualFold(n, s) {
			return h, nil
		}
	}
	return 0, fmt.Errorf("harmony %q: %w", s, errs.ErrUnknownKind)
}

// Harmonize returns the base color followed by the colors of the scheme.
func Harmonize(base string, h Harmony) ([]string, error) {
	c, err := colorspace.ParseHex(base)
	if err != nil {
		return nil, fmt.Errorf("harmonize: %w", err)
	}
	hsl := colorspace.RGBToHSL(c)
	rotate := func(deg float64) string {
		return colorspace.HSLToRGB(colorspace.HSL{H: hsl.H + deg, S: hsl.S, L: hsl.L}).Hex()
	}

	out := []string{c.Hex()}
	switch h {
	case Complementary:
		out = append(out, rotate(180))
	case Analogous:
		out = append(out, rotate(-30), rotate(30))
	case Triadic:
		out = append(out, rotate(120), rotate(240))
	case SplitComplementary:
		out = append(out, rotate(150), rotate(210))
	case Monochromatic:
		out = monochromatic(hsl, 4)
	default:
		return nil, fmt.Errorf("harmonize: %v: %w", h, errs.ErrUnknownKind)
	}
	return out, nil
}

// monochromatic steps lightness by 0.2 around the base and alternates a
// small saturation swing.
func monochromatic(base colorspace.HSL, count int) []string {
	out := make([]string, count)
	for i := range out {
		l := clamp(base.L+float64(i-1)*0.2, 0.1, 0.9)
		ds := 0.15
		if i%2 != 0 {
			ds = -ds
		}
		s := clamp(base.S+ds, 0.1, 1)
		out[i] = colorspace.HSLToRGB(colorspace.HSL{H: base.H, S: s, L: l}).Hex()
	}
	return out
}

// Mood selects the saturation and lightness band of a generated palette.
type Mood int

const (
	Pastel Mood = iota
	Neon
	Earthy
	Muted
	Jewel
)

type band struct{ lo, hi float64 }

var moods = map[Mood]struct {
	name string
	s, l band
}{
	Pastel: {"pastel", band{0.30, 0.50}, band{0.75, 0.90}},
	Neon:   {"neon", band{0.90, 1.00}, band{0.50, 0.60}},
	Earthy: {"earthy", band{0.20, 0.50}, band{0.30, 0.60}},
	Muted:  {"muted", band{0.15, 0.40}, band{0.40, 0.70}},
	Jewel:  {"jewel", band{0.60, 0.90}, band{0.35, 0.55}},
}

func (m Mood) String() string {
	if d, ok := moods[m]; ok {
		return d.name
	}
	return fmt.Sprintf("Mood(%d)", int(m))
}

// ParseMood resolves a mood by name.
func ParseMood(s string) (Mood, error) {
	for m, d := range moods {
		if strings.EqualFold(d.name, s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mood %q: %w", s, errs.ErrUnknownKind)
}

// Generate spreads count hues evenly around the seed's hue and draws
// saturation and lightness from the mood's band.
func Generate(seed string, m Mood, count int, rng *rand.Rand) ([]string, error) {
	d, ok := moods[m]
	if !ok {
		return nil, fmt.Errorf("generate: %v: %w", m, errs.ErrUnknownKind)
	}
	if count < 1 {
		return nil, fmt.Errorf("generate: count=%d: %w", count, errs.ErrDegenerateInput)
	}
	c, err := colorspace.ParseHex(seed)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	h0 := colorspace.RGBToHSL(c).H
	out := make([]string, count)
	for i := range out {
		hsl := colorspace.HSL{
			H: h0 + float64(i)*360/float64(count),
			S: d.s.lo + rng.Float64()*(d.s.hi-d.s.lo),
			L: d.l.lo + rng.Float64()*(d.l.hi-d.l.lo),
		}
		out[i] = colorspace.HSLToRGB(hsl).Hex()
	}
	return out, nil
}

// Adjustment shifts every unlocked color of a palette in HSL. Saturation
// and Lightness are deltas in [-1,1]; results are clamped.
type Adjustment struct {
	Hue        float64
	Saturation float64
	Lightness  float64
	Locked     []int
}

// Adjust applies a to colors and returns a new slice. Locked indices pass
// through untouched.
func Adjust(colors []string, a Adjustment) ([]string, error) {
	rgb, err := parseAll(colors)
	if err != nil {
		return nil, fmt.Errorf("adjust: %w", err)
	}
	locked := make(map[int]bool, len(a.Locked))
	for _, i := range a.Locked {
		locked[i] = true
	}
	out := make([]string, len(colors))
	for i, c := range rgb {
		if locked[i] {
			out[i] = colors[i]
			continue
		}
		hsl := colorspace.RGBToHSL(c)
		hsl.H += a.Hue
		hsl.S = clamp(hsl.S+a.Saturation, 0, 1)
		hsl.L = clamp(hsl.L+a.Lightness, 0, 1)
		out[i] = colorspace.HSLToRGB(hsl).Hex()
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
