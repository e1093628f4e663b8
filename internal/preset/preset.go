// Package preset defines named edit presets: a partial set of adjustment
// sliders plus optional curves, effects and output parameters, resolved
// into a render.State for batch processing.
package preset

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/curve"
	"github.com/AnyUserName/phoenyx/internal/effects"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/render"
)

// Category groups presets in listings.
type Category string

const (
	Custom    Category = "custom"
	Portrait  Category = "portrait"
	Landscape Category = "landscape"
	Urban     Category = "urban"
	Vintage   Category = "vintage"
	Creative  Category = "creative"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Custom, Portrait, Landscape, Urban, Vintage, Creative}
}

// ParseCategory accepts a case-insensitive category name. The empty string
// is Custom.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Custom, nil
	}
	if c := Category(s); slices.Contains(Categories(), c) {
		return c, nil
	}
	return Custom, fmt.Errorf("category %q: %w", s, errs.ErrUnknownKind)
}

// Settings are the slider values a preset overrides. Nil fields keep the
// value of the state the preset is applied to.
type Settings struct {
	Brightness  *float64 `json:"brightness,omitempty" yaml:"brightness,omitempty" toml:"brightness,omitempty"`
	Contrast    *float64 `json:"contrast,omitempty" yaml:"contrast,omitempty" toml:"contrast,omitempty"`
	Saturation  *float64 `json:"saturation,omitempty" yaml:"saturation,omitempty" toml:"saturation,omitempty"`
	HueRotate   *float64 `json:"hueRotate,omitempty" yaml:"hueRotate,omitempty" toml:"hueRotate,omitempty"`
	Sepia       *float64 `json:"sepia,omitempty" yaml:"sepia,omitempty" toml:"sepia,omitempty"`
	Invert      *float64 `json:"invert,omitempty" yaml:"invert,omitempty" toml:"invert,omitempty"`
	Blur        *float64 `json:"blur,omitempty" yaml:"blur,omitempty" toml:"blur,omitempty"`
	IsGrayscale *bool    `json:"isGrayscale,omitempty" yaml:"isGrayscale,omitempty" toml:"isGrayscale,omitempty"`
	Shadows     *float64 `json:"shadows,omitempty" yaml:"shadows,omitempty" toml:"shadows,omitempty"`
	Highlights  *float64 `json:"highlights,omitempty" yaml:"highlights,omitempty" toml:"highlights,omitempty"`
	Vibrance    *float64 `json:"vibrance,omitempty" yaml:"vibrance,omitempty" toml:"vibrance,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" toml:"temperature,omitempty"`
	Tint        *float64 `json:"tint,omitempty" yaml:"tint,omitempty" toml:"tint,omitempty"`
	Clarity     *float64 `json:"clarity,omitempty" yaml:"clarity,omitempty" toml:"clarity,omitempty"`
	Vignette    *float64 `json:"vignette,omitempty" yaml:"vignette,omitempty" toml:"vignette,omitempty"`
}

// Preset is a named edit applied to every image of a batch.
type Preset struct {
	Name     string               `json:"name" yaml:"name" toml:"name"`
	Category Category             `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Settings Settings             `json:"settings" yaml:"settings" toml:"settings"`
	Curves   *curve.Spec          `json:"curves,omitempty" yaml:"curves,omitempty" toml:"curves,omitempty"`
	Effects  []effects.Descriptor `json:"effects,omitempty" yaml:"effects,omitempty" toml:"effects,omitempty"`

	// Output parameters.
	MaxSize int    `json:"maxSize,omitempty" yaml:"maxSize,omitempty" toml:"maxSize,omitempty"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	Quality int    `json:"quality,omitempty" yaml:"quality,omitempty" toml:"quality,omitempty"`
	Colors  int    `json:"colors,omitempty" yaml:"colors,omitempty" toml:"colors,omitempty"` // palette size
}

// Output defaults used when a preset leaves them unset.
const (
	DefaultFormat  = "jpeg"
	DefaultQuality = 85
	DefaultColors  = 5
)

// Validate checks the fields that cannot be repaired by defaults.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("preset without name: %w", errs.ErrDegenerateInput)
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}
	if p.Quality < 0 || p.Quality > 100 {
		return fmt.Errorf("preset %s: quality %d out of range: %w", p.Name, p.Quality, errs.ErrDegenerateInput)
	}
	for i, e := range p.Effects {
		if e.Kind < effects.None || e.Kind > effects.Sharpen {
			return fmt.Errorf("preset %s: effect %d: %w", p.Name, i, errs.ErrUnknownKind)
		}
	}
	return nil
}

// WithDefaults fills the unset output parameters.
func (p Preset) WithDefaults() Preset {
	if p.Category == "" {
		p.Category = Custom
	}
	if p.Format == "" {
		p.Format = DefaultFormat
	}
	if p.Quality == 0 {
		p.Quality = DefaultQuality
	}
	if p.Colors == 0 {
		p.Colors = DefaultColors
	}
	return p
}

// Apply returns base with the preset's settings, curves and effects
// layered on top. Effects are appended to any already present.
func (p Preset) Apply(base render.State) render.State {
	s := p.Settings
	f := &base.Filters
	set(&f.Brightness, s.Brightness)
	set(&f.Contrast, s.Contrast)
	set(&f.Saturation, s.Saturation)
	set(&f.HueRotate, s.HueRotate)
	set(&f.Sepia, s.Sepia)
	set(&f.Invert, s.Invert)
	set(&f.Blur, s.Blur)
	set(&f.Grayscale, s.IsGrayscale)

	t := &base.Tone
	set(&t.Shadows, s.Shadows)
	set(&t.Highlights, s.Highlights)
	set(&t.Vibrance, s.Vibrance)
	set(&t.Temperature, s.Temperature)
	set(&t.Tint, s.Tint)
	set(&t.Clarity, s.Clarity)
	set(&t.Vignette, s.Vignette)

	if p.Curves != nil {
		base.Curves = *p.Curves
	}
	if len(p.Effects) > 0 {
		base.Effects = append(slices.Clip(base.Effects), p.Effects...)
	}
	if p.MaxSize > 0 {
		base.MaxSize = p.MaxSize
	}
	return base
}

// State is Apply over render.Default.
func (p Preset) State() render.State {
	return p.Apply(render.Default())
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
