package colorspace

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/errs"
	"golang.org/x/image/colornames"
)

var (
	rgbPattern = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*(0?\.\d+|1|0))?\s*\)$`)
	hslPattern = regexp.MustCompile(`^hsla?\(\s*(\d{1,3})\s*,\s*(\d{1,3})%\s*,\s*(\d{1,3})%\s*(?:,\s*(0?\.\d+|1|0))?\s*\)$`)

	// CSS Color 4 names missing from the SVG 1.1 table in colornames.
	extraNames = map[string]RGB{
		"rebeccapurple": {R: 0x66, G: 0x33, B: 0x99},
	}
)

// ParseCSS accepts hex (3, 6 or 8 digits, with or without '#'), rgb()/rgba(),
// hsl()/hsla() and CSS named colors. Alpha is parsed and discarded.
func ParseCSS(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	if m := rgbPattern.FindStringSubmatch(lower); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return RGB{}, fmt.Errorf("%q: channel out of range: %w", s, errs.ErrInvalidColorFormat)
		}
		return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
	}

	if m := hslPattern.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		sat, _ := strconv.Atoi(m[2])
		l, _ := strconv.Atoi(m[3])
		if h > 360 || sat > 100 || l > 100 {
			return RGB{}, fmt.Errorf("%q: component out of range: %w", s, errs.ErrInvalidColorFormat)
		}
		return HSLToRGB(HSL{H: float64(h), S: float64(sat) / 100, L: float64(l) / 100}), nil
	}

	if c, ok := colornames.Map[lower]; ok {
		return RGB{R: c.R, G: c.G, B: c.B}, nil
	}
	if c, ok := extraNames[lower]; ok {
		return c, nil
	}

	if hex, err := NormalizeHex(s); err == nil {
		return ParseHex(hex)
	}
	return RGB{}, fmt.Errorf("%q: %w", s, errs.ErrInvalidColorFormat)
}

// FormatRGB renders c as rgb(r, g, b).
func FormatRGB(c RGB) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// FormatHSL renders c as hsl(h, s%, l%) with integer components.
func FormatHSL(c RGB) string {
	h := RGBToHSL(c)
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)",
		int(math.Round(h.H))%360, int(math.Round(h.S*100)), int(math.Round(h.L*100)))
}

// FormatOklch renders c as oklch(L% C H).
func FormatOklch(c Oklch) string {
	return fmt.Sprintf("oklch(%.2f%% %.3f %.2f)", c.L*100, c.C, c.H)
}

// Format renders a hex color in one of "hex", "rgb", "hsl" or "oklch".
// Unknown formats return the normalized hex.
func Format(c RGB, format string) string {
	switch strings.ToLower(format) {
	case "rgb":
		return FormatRGB(c)
	case "hsl":
		return FormatHSL(c)
	case "oklch":
		return FormatOklch(RGBToOklch(c))
	default:
		return c.Hex()
	}
}
