// Package effects implements the stylised whole-image effects of the
// editor: posterize, pixelate, solarize, duotone, halftone, VHS, glitch,
// emboss and sharpen. Each effect mutates a pixbuf.Buffer in place and
// takes an intensity in [0,100].
package effects

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
)

// Kind names one effect.
type Kind int

const (
	None Kind = iota
	Posterize
	Pixelate
	Solarize
	Duotone
	Halftone
	VHS
	Glitch
	Emboss
	Sharpen
)

var kindNames = [...]string{
	None:      "none",
	Posterize: "posterize",
	Pixelate:  "pixelate",
	Solarize:  "solarize",
	Duotone:   "duotone",
	Halftone:  "halftone",
	VHS:       "vhs",
	Glitch:    "glitch",
	Emboss:    "emboss",
	Sharpen:   "sharpen",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every effect except None, in menu order.
func Kinds() []Kind {
	return []Kind{Posterize, Pixelate, Solarize, Duotone, Halftone, VHS, Glitch, Emboss, Sharpen}
}

// ParseKind maps a case-insensitive name to a Kind. The empty string is None.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return None, fmt.Errorf("effect %q: %w", s, errs.ErrUnknownKind)
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

// Default duotone endpoints.
const (
	DefaultDark  = "#000000"
	DefaultLight = "#FFFFFF"
)

// Descriptor is one entry of an effect stack. Dark and Light are only read
// by Duotone; empty values fall back to black and white.
type Descriptor struct {
	Kind      Kind    `json:"kind" yaml:"kind" toml:"kind"`
	Intensity float64 `json:"intensity" yaml:"intensity" toml:"intensity"`
	Dark      string  `json:"dark,omitempty" yaml:"dark,omitempty" toml:"dark,omitempty"`
	Light     string  `json:"light,omitempty" yaml:"light,omitempty" toml:"light,omitempty"`
}

// Apply runs a single effect. VHS and Glitch draw from rng; a nil rng is
// replaced by an unseeded generator.
func Apply(buf *pixbuf.Buffer, d Descriptor, rng *rand.Rand) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("effect %s: %w", d.Kind, err)
	}
	if buf.Empty() {
		return nil
	}
	intensity := clampIntensity(d.Intensity)

	switch d.Kind {
	case None:
	case Posterize:
		applyPosterize(buf, intensity)
	case Pixelate:
		applyPixelate(buf, intensity)
	case Solarize:
		applySolarize(buf, intensity)
	case Duotone:
		dark, err := endpoint(d.Dark, DefaultDark)
		if err != nil {
			return fmt.Errorf("duotone dark: %w", err)
		}
		light, err := endpoint(d.Light, DefaultLight)
		if err != nil {
			return fmt.Errorf("duotone light: %w", err)
		}
		applyDuotone(buf, intensity, dark, light)
	case Halftone:
		applyHalftone(buf, intensity)
	case VHS:
		applyVHS(buf, intensity, ensureRand(rng))
	case Glitch:
		applyGlitch(buf, intensity, ensureRand(rng))
	case Emboss:
		applyEmboss(buf, intensity)
	case Sharpen:
		applySharpen(buf, intensity)
	default:
		return fmt.Errorf("effect %s: %w", d.Kind, errs.ErrUnknownKind)
	}
	return nil
}

// Stack applies ds in order, each on the output of the previous one.
func Stack(buf *pixbuf.Buffer, ds []Descriptor, rng *rand.Rand) error {
	rng = ensureRand(rng)
	for i, d := range ds {
		if err := Apply(buf, d, rng); err != nil {
			return fmt.Errorf("stack[%d]: %w", i, err)
		}
	}
	return nil
}

func endpoint(s, fallback string) (colorspace.RGB, error) {
	if s == "" {
		s = fallback
	}
	return colorspace.ParseHex(s)
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func clampIntensity(v float64) float64 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
