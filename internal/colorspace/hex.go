package colorspace

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/errs"
)

var hexPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// ParseHex parses #RGB or #RRGGBB (case-insensitive). Anything else fails
// with errs.ErrInvalidColorFormat.
func ParseHex(s string) (RGB, error) {
	if !hexPattern.MatchString(s) {
		return RGB{}, fmt.Errorf("%q: %w", s, errs.ErrInvalidColorFormat)
	}
	digits := s[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%q: %w", s, errs.ErrInvalidColorFormat)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// IsHex reports whether s is a valid #RGB or #RRGGBB string.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Hex formats c as uppercase #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string { return c.Hex() }

// NormalizeHex expands shorthand, drops an 8-digit alpha suffix, adds a
// missing leading '#', and uppercases.
func NormalizeHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 9 {
		s = s[:7]
	}
	c, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}
