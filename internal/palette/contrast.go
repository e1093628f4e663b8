package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
)

// ContrastRatio returns the WCAG 2 contrast ratio between two colors, in
// [1,21].
func ContrastRatio(a, b colorspace.RGB) float64 {
	la, lb := a.RelativeLuminance(), b.RelativeLuminance()
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// Compliance reports which WCAG thresholds a foreground/background pair
// passes.
type Compliance struct {
	Ratio    float64 `json:"ratio"`
	AA       bool    `json:"aa"`
	AALarge  bool    `json:"aaLarge"`
	AAA      bool    `json:"aaa"`
	AAALarge bool    `json:"aaaLarge"`
}

// CheckContrast parses both colors and grades their contrast.
func CheckContrast(fg, bg string) (Compliance, error) {
	f, err := colorspace.ParseHex(fg)
	if err != nil {
		return Compliance{}, fmt.Errorf("contrast: %w", err)
	}
	b, err := colorspace.ParseHex(bg)
	if err != nil {
		return Compliance{}, fmt.Errorf("contrast: %w", err)
	}
	r := ContrastRatio(f, b)
	return Compliance{
		Ratio:    r,
		AA:       r >= 4.5,
		AALarge:  r >= 3,
		AAA:      r >= 7,
		AAALarge: r >= 4.5,
	}, nil
}

// TextColor picks black or white text for the given background by
// perceived brightness.
func TextColor(bg colorspace.RGB) string {
	if bg.Luminance() > 127.5 {
		return "#000000"
	}
	return "#FFFFFF"
}

// Deficiency is a dichromatic color-vision deficiency.
type Deficiency int

const (
	Protanopia Deficiency = iota
	Deuteranopia
	Tritanopia
)

var deficiencies = map[Deficiency]struct {
	name string
	m    [3][3]float64
}{
	Protanopia:   {"protanopia", [3][3]float64{{0.567, 0.433, 0}, {0.558, 0.442, 0}, {0, 0.242, 0.758}}},
	Deuteranopia: {"deuteranopia", [3][3]float64{{0.625, 0.375, 0}, {0.7, 0.3, 0}, {0, 0.3, 0.7}}},
	Tritanopia:   {"tritanopia", [3][3]float64{{0.95, 0.05, 0}, {0, 0.433, 0.567}, {0, 0.475, 0.525}}},
}

func (d Deficiency) String() string {
	if v, ok := deficiencies[d]; ok {
		return v.name
	}
	return fmt.Sprintf("Deficiency(%d)", int(d))
}

// ParseDeficiency resolves a deficiency by name.
func ParseDeficiency(s string) (Deficiency, error) {
	for d, v := range deficiencies {
		if strings.EqualFold(v.name, s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("deficiency %q: %w", s, errs.ErrUnknownKind)
}

// Simulate approximates how c appears under deficiency d.
func Simulate(c colorspace.RGB, d Deficiency) colorspace.RGB {
	v, ok := deficiencies[d]
	if !ok {
		return c
	}
	r, g, b := c.Float()
	m := v.m
	return colorspace.FromFloat(
		m[0][0]*r+m[0][1]*g+m[0][2]*b,
		m[1][0]*r+m[1][1]*g+m[1][2]*b,
		m[2][0]*r+m[2][1]*g+m[2][2]*b,
	)
}

// SimulatePalette maps Simulate over a hex palette.
func SimulatePalette(colors []string, d Deficiency) ([]string, error) {
	rgb, err := parseAll(colors)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	out := make([]string, len(rgb))
	for i, c := range rgb {
		out[i] = Simulate(c, d).Hex()
	}
	return out, nil
}
