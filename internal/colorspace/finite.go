package colorspace

import (
	"fmt"
	"math"

	"github.com/AnyUserName/phoenyx/internal/errs"
)

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CheckFinite returns errs.ErrConversionOverflow when s has a non-finite
// component. Higher layers use it to substitute a default instead of
// letting NaN propagate.
func CheckFinite(s Sample) error {
	if s.Finite() {
		return nil
	}
	return fmt.Errorf("%s sample (%v, %v, %v): %w", s.Space, s.C0, s.C1, s.C2, errs.ErrConversionOverflow)
}

// HexOr re-encodes s to hex, or returns fallback when s is not finite.
func HexOr(s Sample, fallback string) string {
	if CheckFinite(s) != nil {
		return fallback
	}
	return s.Hex()
}
