package gradient

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/errs"
)

// Category groups built-in gradients.
type Category string

const (
	Trending    Category = "trending"
	Nature      Category = "nature"
	Vibrant     Category = "vibrant"
	Dark        Category = "dark"
	PastelTones Category = "pastel"
	Holographic Category = "holographic"
	Aurora      Category = "aurora"
	Duotone     Category = "duotone"
	MeshStyle   Category = "mesh"
)

// Preset is a named built-in gradient.
type Preset struct {
	Name     string
	Category Category
	Kind     Kind
	Angle    float64
	Colors   []string
}

// Gradient expands the preset into evenly spaced stops.
func (p Preset) Gradient() Gradient {
	return Gradient{Name: p.Name, Kind: p.Kind, Angle: p.Angle, Stops: FromColors(p.Colors)}
}

var presets = []Preset{
	{"Sunset Vibes", Trending, Linear, 135, []string{"#ff9a9e", "#fecfef", "#fecfef"}},
	{"Ocean Breeze", Trending, Linear, 45, []string{"#667eea", "#764ba2"}},
	{"Northern Lights", Trending, Radial, 0, []string{"#00c3f7", "#9921e8"}},
	{"Cyber Wave", Trending, Linear, 90, []string{"#4facfe", "#00f2fe"}},
	{"Peach Blossom", Trending, Linear, 120, []string{"#ffecd2", "#fcb69f"}},

	{"Forest Dawn", Nature, Linear, 45, []string{"#134e5e", "#71b280"}},
	{"Desert Sand", Nature, Linear, 135, []string{"#ffeaa7", "#fab1a0"}},
	{"Mountain Peak", Nature, Linear, 0, []string{"#74b9ff", "#0984e3", "#2d3436"}},
	{"Tropical Storm", Nature, Radial, 0, []string{"#00b894", "#00cec9"}},
	{"Autumn Leaves", Nature, Linear, 45, []string{"#f39c12", "#e74c3c", "#9b59b6"}},

	{"Electric Lime", Vibrant, Linear, 45, []string{"#00f260", "#0575e6"}},
	{"Pink Burst", Vibrant, Radial, 0, []string{"#f093fb", "#f5576c"}},
	{"Neon Dreams", Vibrant, Linear, 90, []string{"#ff0844", "#00dbde"}},
	{"Rainbow Explosion", Vibrant, Conic, 0, []string{"#ff006e", "#fb5607", "#ffbe0b", "#8338ec"}},
	{"Laser Beam", Vibrant, Linear, 45, []string{"#ff00ff", "#00ffff"}},

	{"Midnight", Dark, Linear, 45, []string{"#232526", "#414345"}},
	{"Deep Space", Dark, Radial, 0, []string{"#000428", "#004e92"}},
	{"Shadow Realm", Dark, Linear, 135, []string{"#1a1a2e", "#16213e", "#0f3460"}},
	{"Obsidian", Dark, Linear, 45, []string{"#0f0c29", "#302b63", "#24243e"}},
	{"Black Hole", Dark, Radial, 0, []string{"#000000", "#130f40", "#000000"}},

	{"Cotton Candy", PastelTones, Linear, 45, []string{"#ffecd2", "#fcb69f"}},
	{"Dreamy Cloud", PastelTones, Radial, 0, []string{"#a8edea", "#fed6e3"}},
	{"Soft Sunrise", PastelTones, Linear, 90, []string{"#fff1eb", "#ace0f9"}},
	{"Lavender Mist", PastelTones, Linear, 120, []string{"#e0c3fc", "#8ec5fc"}},
	{"Mint Fresh", PastelTones, Linear, 45, []string{"#d4fc79", "#96e6a1"}},

	{"Hologram", Holographic, Linear, 45, []string{"#a8ff78", "#78ffd6", "#78c6ff", "#a878ff", "#ff78f0"}},
	{"Iridescent", Holographic, Linear, 135, []string{"#667eea", "#764ba2", "#f093fb", "#f5576c", "#ffecd2"}},
	{"Oil Slick", Holographic, Conic, 0, []string{"#0f0c29", "#302b63", "#24243e", "#667eea", "#764ba2"}},
	{"Prism", Holographic, Linear, 90, []string{"#ff0000", "#ff7f00", "#ffff00", "#00ff00", "#0000ff", "#4b0082", "#8f00ff"}},

	{"Aurora Borealis", Aurora, Linear, 45, []string{"#00d2ff", "#3a7bd5", "#00d2ff", "#928dab"}},
	{"Northern Sky", Aurora, Linear, 135, []string{"#1a2a6c", "#b21f1f", "#fdbb2d"}},
	{"Polar Night", Aurora, Linear, 0, []string{"#0f2027", "#203a43", "#2c5364", "#00d4ff"}},
	{"Cosmic Aurora", Aurora, Conic, 0, []string{"#000046", "#1cb5e0", "#00d4ff", "#7f00ff"}},

	{"Sunset Duo", Duotone, Linear, 45, []string{"#ff6b6b", "#feca57"}},
	{"Ocean Duo", Duotone, Linear, 90, []string{"#0077b6", "#00b4d8"}},
	{"Forest Duo", Duotone, Linear, 135, []string{"#2d6a4f", "#95d5b2"}},
	{"Berry Duo", Duotone, Linear, 45, []string{"#7b2cbf", "#e0aaff"}},
	{"Fire Duo", Duotone, Linear, 45, []string{"#d00000", "#ffba08"}},

	{"Mesh Sunset", MeshStyle, Radial, 0, []string{"#ff9a9e", "#fad0c4", "#ffecd2", "#fcb69f"}},
	{"Mesh Ocean", MeshStyle, Conic, 0, []string{"#667eea", "#764ba2", "#f093fb", "#a8edea"}},
	{"Mesh Aurora", MeshStyle, Conic, 0, []string{"#00d2ff", "#3a7bd5", "#667eea", "#764ba2", "#f093fb"}},
}

// Presets returns the built-in gradients, optionally filtered by category.
// An empty category returns all of them.
func Presets(c Category) []Preset {
	var out []Preset
	for _, p := range presets {
		if c == "" || p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// LookupPreset finds a built-in gradient by case-insensitive name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("gradient preset %q: %w", name, errs.ErrUnknownKind)
}
