// Package tone implements the photographic adjustments: white balance,
// shadows and highlights, vibrance, clarity, vignette and the basic
// CSS-style filters. Every operator mutates the buffer in place and is a
// no-op at its neutral value.
package tone

import (
	"fmt"

	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/chewxy/math32"
)

// Options carries the slider values of the tonal adjustments, each in
// [-100,100] (Vignette in [0,100]).
type Options struct {
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" toml:"temperature,omitempty"`
	Tint        float64 `json:"tint,omitempty" yaml:"tint,omitempty" toml:"tint,omitempty"`
	Shadows     float64 `json:"shadows,omitempty" yaml:"shadows,omitempty" toml:"shadows,omitempty"`
	Highlights  float64 `json:"highlights,omitempty" yaml:"highlights,omitempty" toml:"highlights,omitempty"`
	Vibrance    float64 `json:"vibrance,omitempty" yaml:"vibrance,omitempty" toml:"vibrance,omitempty"`
	Clarity     float64 `json:"clarity,omitempty" yaml:"clarity,omitempty" toml:"clarity,omitempty"`
	Vignette    float64 `json:"vignette,omitempty" yaml:"vignette,omitempty" toml:"vignette,omitempty"`
}

// IsZero reports whether o changes nothing.
func (o Options) IsZero() bool { return o == Options{} }

// ApplyAll runs temperature, tint, shadows/highlights, vibrance, clarity
// and vignette in that order, skipping zero values.
func ApplyAll(buf *pixbuf.Buffer, o Options) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("tone: %w", err)
	}
	steps := []func() error{
		func() error { return Temperature(buf, o.Temperature) },
		func() error { return Tint(buf, o.Tint) },
		func() error { return ShadowsHighlights(buf, o.Shadows, o.Highlights) },
		func() error { return Vibrance(buf, o.Vibrance) },
		func() error { return Clarity(buf, o.Clarity) },
		func() error { return Vignette(buf, o.Vignette) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// luma is the BT.601 weighted sum in channel units.
func luma(r, g, b float32) float32 {
	return 0.299*r + 0.587*g + 0.114*b
}

// toByte rounds and clamps to [0,255].
func toByte(v float32) uint8 {
	if v <= 0 || math32.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math32.Round(v))
}

func rgbAt(pix []byte, i int) (r, g, b float32) {
	return float32(pix[i]), float32(pix[i+1]), float32(pix[i+2])
}

func setRGB(pix []byte, i int, r, g, b float32) {
	pix[i] = toByte(r)
	pix[i+1] = toByte(g)
	pix[i+2] = toByte(b)
}

// prepare validates buf before an operator touches it. It reports false
// when there is nothing to do, along with any validation error.
func prepare(op string, buf *pixbuf.Buffer) (bool, error) {
	if err := buf.Validate(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return !buf.Empty(), nil
}
