package preset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/phoenyx/internal/effects"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFallback(t *testing.T) {
	p := Get("does-not-exist")
	assert.Equal(t, "does-not-exist", p.Name)
	assert.Equal(t, Custom, p.Category)
	assert.Equal(t, DefaultFormat, p.Format)
	assert.Equal(t, DefaultQuality, p.Quality)
	assert.True(t, p.State().IsDefault())

	noir := Get("noir")
	assert.Equal(t, Vintage, noir.Category)
	assert.True(t, noir.State().Filters.Grayscale)
}

func TestBuiltinsAreValid(t *testing.T) {
	c := Builtin()
	all := c.All()
	require.NotEmpty(t, all)
	for _, p := range all {
		assert.NoError(t, p.Validate(), p.Name)
	}
	for _, cat := range Categories() {
		for _, p := range c.ByCategory(cat) {
			assert.Equal(t, cat, p.Category)
		}
	}
	// custom first
	assert.Equal(t, Custom, all[0].Category)
}

func TestBuiltinCatalogIsACopy(t *testing.T) {
	c := Builtin()
	require.NoError(t, c.Add(Preset{Name: "noir", Category: Custom}))
	p, ok := c.Get("noir")
	require.True(t, ok)
	assert.Equal(t, Custom, p.Category)
	assert.Equal(t, Vintage, Get("noir").Category)
}

func TestApplyIsPartial(t *testing.T) {
	base := render.Default()
	base.Filters.Contrast = 140
	base.Tone.Tint = 12
	base.Effects = []effects.Descriptor{{Kind: effects.Solarize, Intensity: 20}}

	p := Preset{
		Name:     "warm",
		Settings: Settings{Temperature: f(30), Brightness: f(110)},
		Effects:  []effects.Descriptor{{Kind: effects.Sharpen, Intensity: 40}},
		MaxSize:  800,
	}
	got := p.Apply(base)
	assert.Equal(t, 110.0, got.Filters.Brightness)
	assert.Equal(t, 140.0, got.Filters.Contrast, "unset fields keep the base value")
	assert.Equal(t, 100.0, got.Filters.Saturation)
	assert.Equal(t, 30.0, got.Tone.Temperature)
	assert.Equal(t, 12.0, got.Tone.Tint)
	assert.Equal(t, 800, got.MaxSize)
	require.Len(t, got.Effects, 2)
	assert.Equal(t, effects.Solarize, got.Effects[0].Kind)
	assert.Equal(t, effects.Sharpen, got.Effects[1].Kind)
	assert.Len(t, base.Effects, 1)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Preset{}.Validate(), errs.ErrDegenerateInput)
	assert.ErrorIs(t, Preset{Name: "x", Category: "sports"}.Validate(), errs.ErrUnknownKind)
	assert.ErrorIs(t, Preset{Name: "x", Quality: 101}.Validate(), errs.ErrDegenerateInput)
	assert.ErrorIs(t, Preset{Name: "x", Effects: []effects.Descriptor{{Kind: 42}}}.Validate(), errs.ErrUnknownKind)
	assert.NoError(t, Preset{Name: "x"}.Validate())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Urban ")
	require.NoError(t, err)
	assert.Equal(t, Urban, c)
	c, err = ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, Custom, c)
}

const yamlPresets = `presets:
  - name: moody
    category: urban
    settings:
      contrast: 125.0
      isGrayscale: true
    curves:
      rgb:
        - {x: 0.0, y: 10.0}
        - {x: 255.0, y: 245.0}
    effects:
      - kind: vhs
        intensity: 40.0
    format: png
    quality: 80
`

const tomlPresets = `[[presets]]
name = "crisp"
category = "landscape"
maxSize = 1200

[presets.settings]
clarity = 45.0
vibrance = 20.0

[[presets.effects]]
kind = "sharpen"
intensity = 25.0
`

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlPresets), 0o644))

	ps, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	p := ps[0]
	assert.Equal(t, "moody", p.Name)
	assert.Equal(t, Urban, p.Category)
	require.NotNil(t, p.Settings.Contrast)
	assert.Equal(t, 125.0, *p.Settings.Contrast)
	assert.Nil(t, p.Settings.Brightness)
	require.Len(t, p.Effects, 1)
	assert.Equal(t, effects.VHS, p.Effects[0].Kind)
	require.NotNil(t, p.Curves)
	assert.Len(t, p.Curves.RGB, 2)

	st := p.State()
	assert.True(t, st.Filters.Grayscale)
	assert.Equal(t, 100.0, st.Filters.Brightness)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlPresets), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	p := c.Lookup("crisp")
	assert.Equal(t, Landscape, p.Category)
	assert.Equal(t, 1200, p.MaxSize)
	assert.Equal(t, DefaultFormat, p.Format)
	require.NotNil(t, p.Settings.Clarity)
	assert.Equal(t, 45.0, *p.Settings.Clarity)
	require.Len(t, p.Effects, 1)
	assert.Equal(t, effects.Sharpen, p.Effects[0].Kind)

	_, ok := c.Get("noir")
	assert.True(t, ok, "built-ins stay available")
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("presets:\n  - name: a\n    bogus: 1\n"), ".yaml")
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("presets:\n  - name: a\n  - name: a\n"), ".yml")
	assert.ErrorContains(t, err, "duplicate")

	_, err = Decode(strings.NewReader("presets:\n  - category: urban\n"), ".yaml")
	assert.ErrorIs(t, err, errs.ErrDegenerateInput)

	_, err = Decode(strings.NewReader("presets:\n  - name: a\n    effects:\n      - kind: sparkle\n"), ".yaml")
	assert.ErrorIs(t, err, errs.ErrUnknownKind)

	_, err = Decode(strings.NewReader(""), ".ini")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	ps, err := Decode(strings.NewReader(""), ".yaml")
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestEncodeDecode(t *testing.T) {
	src := []Preset{Get("landscape-vivid"), Get("midnight-duotone")}
	for _, ext := range []string{".yaml", ".toml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, ext, src))
			got, err := Decode(&buf, ext)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, src[0].State(), got[0].State())
			assert.Equal(t, src[1].Effects, got[1].Effects)
		})
	}
}
