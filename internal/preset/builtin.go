package preset

import (
	"cmp"
	"slices"

	"github.com/AnyUserName/phoenyx/internal/curve"
	"github.com/AnyUserName/phoenyx/internal/effects"
)

// Fallback is the preset returned for unknown names.
const Fallback = "none"

func f(v float64) *float64 { return &v }

func yes() *bool {
	v := true
	return &v
}

// Built-in presets.
var builtin = map[string]Preset{
	"none": {
		Name:     "none",
		Category: Custom,
	},
	"portrait-soft": {
		Name:     "portrait-soft",
		Category: Portrait,
		Settings: Settings{Brightness: f(104), Contrast: f(94), Shadows: f(20), Highlights: f(-10), Temperature: f(12), Clarity: f(-15)},
		Quality:  88,
	},
	"portrait-bw": {
		Name:     "portrait-bw",
		Category: Portrait,
		Settings: Settings{IsGrayscale: yes(), Contrast: f(115), Shadows: f(10), Clarity: f(20), Vignette: f(25)},
	},
	"landscape-vivid": {
		Name:     "landscape-vivid",
		Category: Landscape,
		Settings: Settings{Saturation: f(120), Vibrance: f(35), Clarity: f(30), Highlights: f(-20), Shadows: f(15)},
		Curves:   &curve.Spec{RGB: []curve.Point{{X: 0, Y: 0}, {X: 64, Y: 56}, {X: 192, Y: 204}, {X: 255, Y: 255}}},
		Quality:  90,
	},
	"golden-hour": {
		Name:     "golden-hour",
		Category: Landscape,
		Settings: Settings{Temperature: f(45), Tint: f(8), Vibrance: f(20), Highlights: f(-15)},
	},
	"urban-grit": {
		Name:     "urban-grit",
		Category: Urban,
		Settings: Settings{Contrast: f(130), Saturation: f(75), Clarity: f(60), Temperature: f(-15), Vignette: f(35)},
		Effects:  []effects.Descriptor{{Kind: effects.Sharpen, Intensity: 30}},
	},
	"night-city": {
		Name:     "night-city",
		Category: Urban,
		Settings: Settings{Temperature: f(-35), Tint: f(20), Contrast: f(115), Shadows: f(-20), Vibrance: f(40)},
	},
	"vintage-fade": {
		Name:     "vintage-fade",
		Category: Vintage,
		Settings: Settings{Sepia: f(35), Contrast: f(88), Saturation: f(80), Temperature: f(20), Vignette: f(40)},
		Curves:   &curve.Spec{RGB: []curve.Point{{X: 0, Y: 28}, {X: 128, Y: 128}, {X: 255, Y: 236}}},
	},
	"polaroid": {
		Name:     "polaroid",
		Category: Vintage,
		Settings: Settings{Brightness: f(108), Contrast: f(92), Temperature: f(15), Tint: f(-6), Highlights: f(-25)},
		Curves:   &curve.Spec{Blue: []curve.Point{{X: 0, Y: 30}, {X: 255, Y: 230}}},
	},
	"noir": {
		Name:     "noir",
		Category: Vintage,
		Settings: Settings{IsGrayscale: yes(), Contrast: f(145), Brightness: f(92), Vignette: f(55)},
	},
	"pop-art": {
		Name:     "pop-art",
		Category: Creative,
		Settings: Settings{Saturation: f(160), Contrast: f(120)},
		Effects:  []effects.Descriptor{{Kind: effects.Posterize, Intensity: 70}},
		Format:   "png",
	},
	"retro-tape": {
		Name:     "retro-tape",
		Category: Creative,
		Settings: Settings{Saturation: f(85), Temperature: f(10)},
		Effects:  []effects.Descriptor{{Kind: effects.VHS, Intensity: 55}},
	},
	"cyber-glitch": {
		Name:     "cyber-glitch",
		Category: Creative,
		Settings: Settings{HueRotate: f(200), Contrast: f(125)},
		Effects:  []effects.Descriptor{{Kind: effects.Glitch, Intensity: 45}},
		Format:   "png",
	},
	"newsprint": {
		Name:     "newsprint",
		Category: Creative,
		Settings: Settings{IsGrayscale: yes()},
		Effects:  []effects.Descriptor{{Kind: effects.Halftone, Intensity: 60}},
		Format:   "png",
	},
	"midnight-duotone": {
		Name:     "midnight-duotone",
		Category: Creative,
		Effects:  []effects.Descriptor{{Kind: effects.Duotone, Intensity: 100, Dark: "#1A1A2E", Light: "#E94560"}},
	},
}

// Get returns a built-in preset by name. Unknown names fall back to "none"
// with the requested name preserved.
func Get(name string) Preset {
	return Builtin().Lookup(name)
}

// Catalog is a set of presets keyed by name.
type Catalog struct {
	m map[string]Preset
}

// Builtin returns a catalog holding a copy of the built-in presets.
func Builtin() *Catalog {
	c := &Catalog{m: make(map[string]Preset, len(builtin))}
	for k, p := range builtin {
		c.m[k] = p
	}
	return c
}

// Add inserts or replaces presets after validating them.
func (c *Catalog) Add(ps ...Preset) error {
	for _, p := range ps {
		if err := p.Validate(); err != nil {
			return err
		}
		c.m[p.Name] = p
	}
	return nil
}

// Get reports whether name is in the catalog.
func (c *Catalog) Get(name string) (Preset, bool) {
	p, ok := c.m[name]
	return p, ok
}

// Lookup returns name, or the fallback preset renamed to name. The result
// has its output defaults filled.
func (c *Catalog) Lookup(name string) Preset {
	if p, ok := c.m[name]; ok {
		return p.WithDefaults()
	}
	p := c.m[Fallback]
	p.Name = name
	return p.WithDefaults()
}

// All returns every preset ordered by category, then name.
func (c *Catalog) All() []Preset {
	order := map[Category]int{}
	for i, cat := range Categories() {
		order[cat] = i
	}
	out := make([]Preset, 0, len(c.m))
	for _, p := range c.m {
		out = append(out, p.WithDefaults())
	}
	slices.SortFunc(out, func(a, b Preset) int {
		if d := cmp.Compare(order[a.Category], order[b.Category]); d != 0 {
			return d
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// ByCategory returns the presets in cat ordered by name.
func (c *Catalog) ByCategory(cat Category) []Preset {
	var out []Preset
	for _, p := range c.All() {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}
