package gradient

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
)

// Mood selects hue spread, saturation and lightness for a generated
// gradient.
type Mood int

const (
	Calm Mood = iota
	Energetic
	Corporate
	Playful
	Luxury
	Natural
)

type moodConfig struct {
	name     string
	sLo, sHi float64
	lLo, lHi float64
	hueShift float64
}

var moods = [...]moodConfig{
	Calm:      {"calm", 0.3, 0.5, 0.6, 0.85, 30},
	Energetic: {"energetic", 0.8, 1, 0.4, 0.6, 60},
	Corporate: {"corporate", 0.4, 0.6, 0.3, 0.5, 20},
	Playful:   {"playful", 0.7, 0.9, 0.5, 0.7, 90},
	Luxury:    {"luxury", 0.2, 0.4, 0.1, 0.3, 15},
	Natural:   {"natural", 0.4, 0.6, 0.4, 0.6, 40},
}

func (m Mood) String() string {
	if m >= 0 && int(m) < len(moods) {
		return moods[m].name
	}
	return fmt.Sprintf("Mood(%d)", int(m))
}

// ParseMood resolves a gradient mood by name.
func ParseMood(s string) (Mood, error) {
	for i, c := range moods {
		if strings.EqualFold(c.name, s) {
			return Mood(i), nil
		}
	}
	return 0, fmt.Errorf("gradient mood %q: %w", s, errs.ErrUnknownKind)
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Moody fans count colors around base's hue in steps of the mood's hue
// shift, centered on the middle color. Lightness ramps across the mood's
// range; saturation is drawn from rng. An empty base picks a random seed.
func Moody(m Mood, base string, count int, rng *rand.Rand) ([]string, error) {
	if m < 0 || int(m) >= len(moods) {
		return nil, fmt.Errorf("moody: %v: %w", m, errs.ErrUnknownKind)
	}
	if count < 2 {
		return nil, fmt.Errorf("moody: count=%d: %w", count, errs.ErrDegenerateInput)
	}
	rng = ensureRand(rng)
	cfg := moods[m]

	var h float64
	if base == "" {
		h = rng.Float64() * 360
	} else {
		c, err := colorspace.ParseHex(base)
		if err != nil {
			return nil, fmt.Errorf("moody: %w", err)
		}
		h = colorspace.RGBToHSL(c).H
	}

	out := make([]string, count)
	for i := range out {
		offset := float64(i-count/2) * cfg.hueShift
		s := cfg.sLo + rng.Float64()*(cfg.sHi-cfg.sLo)
		l := cfg.lLo + float64(i)/float64(count-1)*(cfg.lHi-cfg.lLo)
		out[i] = colorspace.HSLToRGB(colorspace.HSL{H: h + offset, S: s, L: l}).Hex()
	}
	return out, nil
}

// Random spreads count hues evenly from a random base with +/-15 degrees
// of jitter, moderate saturation and lightness.
func Random(count int, rng *rand.Rand) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("random gradient: count=%d: %w", count, errs.ErrDegenerateInput)
	}
	rng = ensureRand(rng)
	base := rng.Float64() * 360
	out := make([]string, count)
	for i := range out {
		h := base + float64(i)*360/float64(count) + rng.Float64()*30 - 15
		s := 0.5 + rng.Float64()*0.4
		l := 0.3 + rng.Float64()*0.4
		out[i] = colorspace.HSLToRGB(colorspace.HSL{H: h, S: s, L: l}).Hex()
	}
	return out, nil
}

// DefaultMesh returns four points around a random hue.
func DefaultMesh(rng *rand.Rand) []MeshPoint {
	rng = ensureRand(rng)
	h := rng.Float64() * 360
	hex := func(dh, s, l float64) string {
		return colorspace.HSLToRGB(colorspace.HSL{H: h + dh, S: s, L: l}).Hex()
	}
	return []MeshPoint{
		NewMeshPoint(20, 20, hex(0, 0.7, 0.55)),
		NewMeshPoint(80, 20, hex(120, 0.7, 0.55)),
		NewMeshPoint(50, 80, hex(240, 0.7, 0.55)),
		NewMeshPoint(50, 50, hex(60, 0.6, 0.6)),
	}
}
