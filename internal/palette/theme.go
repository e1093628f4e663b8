package palette

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
)

// Theme maps UI roles to colors.
type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Surface    string `json:"surface,omitempty"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Muted      string `json:"muted,omitempty"`
}

// defaultOklchTheme is returned by ExtractTheme when the palette is empty.
var defaultOklchTheme = Theme{
	Primary:    "oklch(65% 0.22 30)",
	Secondary:  "oklch(55% 0.25 290)",
	Background: "oklch(15% 0.05 280)",
	Text:       "oklch(95% 0.01 280)",
	Accent:     "oklch(70% 0.15 40)",
}

// ExtractTheme derives an Oklch theme from a palette: the most chromatic
// color (chroma > 0.1) is primary, the next vibrant color at least 60
// degrees of hue away is secondary, and background and text are near-neutral
// tints of the primary on the side of its lightness.
func ExtractTheme(colors []string) (Theme, error) {
	rgb, err := parseAll(colors)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: %w", err)
	}
	if len(rgb) == 0 {
		return defaultOklchTheme, nil
	}

	all := make([]colorspace.Oklch, len(rgb))
	var vibrant []colorspace.Oklch
	for i, c := range rgb {
		all[i] = colorspace.RGBToOklch(c)
		if all[i].C > 0.1 {
			vibrant = append(vibrant, all[i])
		}
	}
	slices.SortStableFunc(vibrant, func(a, b colorspace.Oklch) int { return cmp.Compare(b.C, a.C) })

	primary := all[0]
	if len(vibrant) > 0 {
		primary = vibrant[0]
	}
	secondary := primary
	for _, c := range vibrant {
		if math.Abs(c.H-primary.H) > 60 {
			secondary = c
			break
		}
	}

	dark := primary.L < 0.5
	bg := colorspace.Oklch{L: pick(dark, 0.1, 0.95), C: 0.02, H: primary.H}
	text := colorspace.Oklch{L: pick(dark, 0.95, 0.1), C: 0.01, H: primary.H}
	accent := secondary
	accent.L = pick(dark, 0.8, 0.4)

	return Theme{
		Primary:    colorspace.FormatOklch(primary),
		Secondary:  colorspace.FormatOklch(secondary),
		Background: colorspace.FormatOklch(bg),
		Text:       colorspace.FormatOklch(text),
		Accent:     colorspace.FormatOklch(accent),
	}, nil
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// SemanticTheme builds a full hex theme around a seed color by HSL
// rotation and fixed neutral tints of its hue.
func SemanticTheme(seed string) (Theme, error) {
	c, err := colorspace.ParseHex(seed)
	if err != nil {
		return Theme{}, fmt.Errorf("semantic theme: %w", err)
	}
	h := colorspace.RGBToHSL(c)
	hex := func(hue, s, l float64) string {
		return colorspace.HSLToRGB(colorspace.HSL{H: hue, S: s, L: l}).Hex()
	}
	return Theme{
		Primary:    c.Hex(),
		Secondary:  hex(h.H+30, math.Max(0.2, h.S-0.2), h.L),
		Accent:     hex(h.H+180, math.Min(1, h.S+0.2), math.Min(0.6, h.L+0.1)),
		Surface:    hex(h.H, 0.05, 0.98),
		Background: hex(h.H, 0.08, 0.95),
		Text:       hex(h.H, 0.10, 0.10),
		Muted:      hex(h.H, 0.10, 0.60),
	}, nil
}

// fallbackRoles is used by AssignRoles for an empty palette.
var fallbackRoles = Theme{
	Primary:    "#3B82F6",
	Secondary:  "#6B7280",
	Accent:     "#F59E0B",
	Surface:    "#1E1E2E",
	Background: "#11111B",
	Text:       "#FFFFFF",
	Muted:      "#6B7280",
}

type analyzed struct {
	hex string
	hsl colorspace.HSL
}

// AssignRoles distributes an existing palette over UI roles. Dark palettes
// (mean HSL lightness below 0.5) take their darkest colors for background
// and surface and the lightest for text; light palettes do the opposite.
// Roles with no suitable candidate are synthesized from the primary's hue.
func AssignRoles(colors []string) (Theme, error) {
	rgb, err := parseAll(colors)
	if err != nil {
		return Theme{}, fmt.Errorf("assign roles: %w", err)
	}
	if len(rgb) == 0 {
		return fallbackRoles, nil
	}

	items := make([]analyzed, len(rgb))
	var sumL float64
	for i, c := range rgb {
		items[i] = analyzed{hex: c.Hex(), hsl: colorspace.RGBToHSL(c)}
		sumL += items[i].hsl.L
	}
	byL := slices.Clone(items)
	slices.SortStableFunc(byL, func(a, b analyzed) int { return cmp.Compare(a.hsl.L, b.hsl.L) })
	byS := slices.Clone(items)
	slices.SortStableFunc(byS, func(a, b analyzed) int { return cmp.Compare(b.hsl.S, a.hsl.S) })
	saturated := filter(byS, func(a analyzed) bool { return a.hsl.S > 0.3 })

	hex := func(hue, s, l float64) string {
		return colorspace.HSLToRGB(colorspace.HSL{H: hue, S: s, L: l}).Hex()
	}
	first := func(list []analyzed, fallback string) string {
		if len(list) > 0 {
			return list[0].hex
		}
		return fallback
	}

	var t Theme
	darkest, lightest := byL[0], byL[len(byL)-1]
	dark := sumL/float64(len(items)) < 0.5

	if dark {
		t.Background = darkest.hex
		t.Surface = byL[min(1, len(byL)-1)].hex
		t.Text = lightest.hex
		t.Primary = first(filter(saturated, func(a analyzed) bool { return a.hsl.L > 0.3 && a.hsl.L < 0.7 }),
			first(saturated, items[0].hex))
	} else {
		t.Background = lightest.hex
		t.Surface = byL[max(0, len(byL)-2)].hex
		t.Text = darkest.hex
		t.Primary = first(filter(saturated, func(a analyzed) bool { return a.hsl.L < 0.6 }),
			first(saturated, items[0].hex))
	}

	pc, _ := colorspace.ParseHex(t.Primary)
	ph := colorspace.RGBToHSL(pc).H

	if dark {
		t.Secondary = first(filter(items, func(a analyzed) bool { return a.hex != t.Primary && a.hsl.S > 0.2 }),
			hex(ph+30, 0.3, 0.4))
	} else {
		t.Secondary = first(filter(items, func(a analyzed) bool {
			return a.hex != t.Primary && a.hsl.S > 0.2 && a.hsl.L < 0.7
		}), hex(ph+30, 0.4, 0.5))
	}

	accents := filter(saturated, func(a analyzed) bool {
		d := math.Abs(a.hsl.H - ph)
		return d > 60 && d < 300 && a.hex != t.Primary
	})
	if dark {
		t.Accent = first(accents, hex(ph+180, 0.8, 0.55))
		t.Muted = first(filter(items, func(a analyzed) bool {
			return a.hsl.S < 0.4 && a.hsl.L > 0.3 && a.hsl.L < 0.7
		}), hex(0, 0.1, 0.5))
	} else {
		t.Accent = first(accents, hex(ph+150, 0.7, 0.5))
		t.Muted = first(filter(items, func(a analyzed) bool {
			return a.hsl.S < 0.3 && a.hsl.L > 0.4 && a.hsl.L < 0.8
		}), hex(0, 0.05, 0.6))
	}
	return t, nil
}

func filter(in []analyzed, keep func(analyzed) bool) []analyzed {
	var out []analyzed
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
