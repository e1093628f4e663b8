// Package render applies a complete editor state to a source image: crop,
// downscale, basic filters, geometric transforms, curves, tonal
// adjustments and the effect stack, always in that order.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/AnyUserName/phoenyx/internal/curve"
	"github.com/AnyUserName/phoenyx/internal/effects"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/logging"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/AnyUserName/phoenyx/internal/tone"
	"github.com/disintegration/imaging"
)

// Crop selects a rectangle of the source in source pixels.
type Crop struct {
	X      int `json:"x" yaml:"x" toml:"x"`
	Y      int `json:"y" yaml:"y" toml:"y"`
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// State is everything the editor knows about one image.
type State struct {
	Crop     *Crop        `json:"crop,omitempty" yaml:"crop,omitempty" toml:"crop,omitempty"`
	MaxSize  int          `json:"maxSize,omitempty" yaml:"maxSize,omitempty" toml:"maxSize,omitempty"`
	Filters  tone.Filters `json:"filters" yaml:"filters" toml:"filters"`
	FlipX    bool         `json:"flipX,omitempty" yaml:"flipX,omitempty" toml:"flipX,omitempty"`
	FlipY    bool         `json:"flipY,omitempty" yaml:"flipY,omitempty" toml:"flipY,omitempty"`
	Rotation float64      `json:"rotation,omitempty" yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	Curves   curve.Spec   `json:"curves,omitempty" yaml:"curves,omitempty" toml:"curves,omitempty"`
	Tone     tone.Options `json:"tone,omitempty" yaml:"tone,omitempty" toml:"tone,omitempty"`
	// Effects are applied in order; Preview, if set, runs after them.
	Effects []effects.Descriptor `json:"effects,omitempty" yaml:"effects,omitempty" toml:"effects,omitempty"`
	Preview *effects.Descriptor  `json:"preview,omitempty" yaml:"preview,omitempty" toml:"preview,omitempty"`
}

// Default returns the untouched state.
func Default() State {
	return State{
		Filters: tone.DefaultFilters(),
		Curves:  curve.DefaultSpec(),
	}
}

// IsDefault reports whether rendering s would only copy the source.
func (s State) IsDefault() bool {
	if s.Crop != nil || s.FlipX || s.FlipY || normalizeDegrees(s.Rotation) != 0 {
		return false
	}
	if !s.filters().IsNeutral() || !s.Curves.IsIdentity() || !s.Tone.IsZero() {
		return false
	}
	for _, e := range s.Effects {
		if e.Kind != effects.None {
			return false
		}
	}
	return s.Preview == nil || s.Preview.Kind == effects.None
}

// FilterString returns the CSS filter value for the basic filters of s.
func (s State) FilterString() string { return s.filters().String() }

// filters treats an all-zero Filters value as neutral so that a bare State{}
// renders the source unchanged.
func (s State) filters() tone.Filters {
	if s.Filters == (tone.Filters{}) {
		return tone.DefaultFilters()
	}
	return s.Filters
}

// Size returns the output dimensions for a w x h source.
func (s State) Size(w, h int) (int, int) {
	if s.Crop != nil {
		r := cropRect(s.Crop, w, h)
		w, h = r.Dx(), r.Dy()
	}
	if s.MaxSize > 0 && (w > s.MaxSize || h > s.MaxSize) {
		scale := math.Min(float64(s.MaxSize)/float64(w), float64(s.MaxSize)/float64(h))
		w = max(1, int(math.Round(float64(w)*scale)))
		h = max(1, int(math.Round(float64(h)*scale)))
	}
	return w, h
}

// Render returns a new buffer with s applied to src. src is not modified.
// rng feeds the randomized effects; nil means unseeded.
func Render(src *pixbuf.Buffer, s State, rng *rand.Rand) (*pixbuf.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	start := time.Now()

	buf := src
	if s.Crop != nil {
		r := cropRect(s.Crop, src.Width, src.Height)
		if r.Empty() {
			return nil, fmt.Errorf("render: crop %+v outside %dx%d: %w",
				*s.Crop, src.Width, src.Height, errs.ErrInvalidBufferDimensions)
		}
		buf = pixbuf.FromImage(imaging.Crop(src.NRGBA(), r))
	}

	w, h := s.Size(src.Width, src.Height)
	if w != buf.Width || h != buf.Height {
		buf = buf.Resize(w, h, imaging.Linear)
	} else if buf == src {
		buf = src.Clone()
	}

	if err := s.filters().Apply(buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	buf = transform(buf, s)

	if err := curve.Apply(buf, s.Curves); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := tone.ApplyAll(buf, s.Tone); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	stack := s.Effects
	if s.Preview != nil {
		stack = append(stack[:len(stack):len(stack)], *s.Preview)
	}
	if err := effects.Stack(buf, stack, rng); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	logging.Logger().Debug("rendered",
		"src", fmt.Sprintf("%dx%d", src.Width, src.Height),
		"out", fmt.Sprintf("%dx%d", buf.Width, buf.Height),
		"filter", s.FilterString(),
		"effects", len(stack),
		"elapsed", time.Since(start))
	return buf, nil
}

func cropRect(c *Crop, w, h int) image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height).Intersect(image.Rect(0, 0, w, h))
}

// transform rotates buf clockwise about its centre, keeping the canvas
// size and leaving uncovered corners transparent, then mirrors it.
func transform(buf *pixbuf.Buffer, s State) *pixbuf.Buffer {
	deg := normalizeDegrees(s.Rotation)
	if deg == 0 && !s.FlipX && !s.FlipY {
		return buf
	}
	var img image.Image = buf.NRGBA()
	if deg != 0 {
		rotated := imaging.Rotate(img, -deg, color.Transparent)
		img = imaging.PasteCenter(imaging.New(buf.Width, buf.Height, color.Transparent), rotated)
	}
	if s.FlipX {
		img = imaging.FlipH(img)
	}
	if s.FlipY {
		img = imaging.FlipV(img)
	}
	return pixbuf.FromImage(img)
}

func normalizeDegrees(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
