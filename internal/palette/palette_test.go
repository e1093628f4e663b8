package palette

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func solid(w, h int, c colorspace.RGB, a uint8) *pixbuf.Buffer {
	b := pixbuf.New(w, h)
	b.Fill(c.R, c.G, c.B, a)
	return b
}

func assertHexClose(t *testing.T, want, got string) {
	t.Helper()
	w, err := colorspace.ParseHex(want)
	require.NoError(t, err)
	g, err := colorspace.ParseHex(got)
	require.NoError(t, err)
	assert.InDelta(t, int(w.R), int(g.R), 1, "%s vs %s", want, got)
	assert.InDelta(t, int(w.G), int(g.G), 1, "%s vs %s", want, got)
	assert.InDelta(t, int(w.B), int(g.B), 1, "%s vs %s", want, got)
}

func TestExtractSingleColor(t *testing.T) {
	buf := solid(10, 10, colorspace.RGB{R: 0x33, G: 0x66, B: 0xCC}, 255)
	got, err := Extract(buf, 1, Balanced, seeded())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assertHexClose(t, "#3366CC", got[0])
}

func TestExtractDownsamplesLargeImage(t *testing.T) {
	buf := solid(300, 200, colorspace.RGB{R: 200, G: 40, B: 90}, 255)
	got, err := Extract(buf, 1, Fast, seeded())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assertHexClose(t, "#C8285A", got[0])
}

func TestExtractTransparentFallsBack(t *testing.T) {
	buf := solid(4, 4, colorspace.RGB{R: 255}, 127)
	got, err := Extract(buf, 3, Best, seeded())
	require.NoError(t, err)
	assert.Equal(t, []string{Fallback}, got)
}

func TestExtractTwoClusters(t *testing.T) {
	buf := pixbuf.New(2, 1)
	copy(buf.Pix, []byte{0, 0, 0, 255, 255, 255, 255, 255})

	got, err := Extract(buf, 2, Balanced, seeded())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"#000000", "#FFFFFF"}, got)

	got, err = Extract(buf, 5, Balanced, seeded())
	require.NoError(t, err)
	assert.Len(t, got, 2, "k is capped by the number of points")
}

func TestExtractSeededIsReproducible(t *testing.T) {
	buf := pixbuf.New(16, 16)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = uint8(i * 7)
		buf.Pix[i+1] = uint8(i * 13)
		buf.Pix[i+2] = uint8(i * 3)
		buf.Pix[i+3] = 255
	}
	a, err := Extract(buf, 4, Balanced, seeded())
	require.NoError(t, err)
	b, err := Extract(buf, 4, Balanced, seeded())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract(solid(2, 2, colorspace.RGB{}, 255), 0, Fast, nil)
	assert.ErrorIs(t, err, errs.ErrDegenerateInput)

	_, err = Extract(&pixbuf.Buffer{Pix: make([]byte, 7), Width: 2, Height: 1}, 1, Fast, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidBufferDimensions)
}

func TestParseQuality(t *testing.T) {
	q, err := ParseQuality("BEST")
	require.NoError(t, err)
	assert.Equal(t, Best, q)
	assert.Equal(t, 256, q.MaxSide())
	assert.Equal(t, 20, q.Iterations())
	assert.Equal(t, 64, Fast.MaxSide())
	assert.Equal(t, 10, Balanced.Iterations())

	_, err = ParseQuality("ultra")
	assert.ErrorIs(t, err, errs.ErrUnknownKind)
}

func TestSequenceGreedyNeutrals(t *testing.T) {
	got, err := SequenceGreedy([]string{"#FFFFFF", "#000000", "#808080"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#000000", "#808080", "#FFFFFF"}, got)
}

func TestSequenceGreedyIsPermutation(t *testing.T) {
	in := []string{"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#202020", "#FF8800", "#00FFFF"}
	got, err := SequenceGreedy(in)
	require.NoError(t, err)
	assert.ElementsMatch(t, in, got)
	assert.Equal(t, "#202020", got[0], "tour starts at the darkest color")

	again, err := SequenceGreedy(in)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestSequenceOklab(t *testing.T) {
	got, err := SequenceOklab([]string{"#FFFFFF", "#000000", "#808080"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#000000", "#808080", "#FFFFFF"}, got)
}

func TestSequenceShortInputUnchanged(t *testing.T) {
	for _, fn := range []func([]string) ([]string, error){SequenceGreedy, SequenceOklab, SequenceByHueThenLightness} {
		got, err := fn([]string{"#FFFFFF", "#000000"})
		require.NoError(t, err)
		assert.Equal(t, []string{"#FFFFFF", "#000000"}, got)

		got, err = fn(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestSequenceRejectsMalformed(t *testing.T) {
	_, err := SequenceGreedy([]string{"#000000", "nope", "#FFFFFF"})
	assert.ErrorIs(t, err, errs.ErrInvalidColorFormat)
	_, err = SequenceByHueThenLightness([]string{"#12"})
	assert.ErrorIs(t, err, errs.ErrInvalidColorFormat)
}

func TestSequenceByHueThenLightness(t *testing.T) {
	got, err := SequenceByHueThenLightness([]string{"#0000FF", "#FF0000", "#00FF00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#FF0000", "#00FF00", "#0000FF"}, got)

	// Neutrals lead by lightness; equal colors keep their input order.
	got, err = SequenceByHueThenLightness([]string{"#808080", "#777777", "#808080", "#777"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#777777", "#777", "#808080", "#808080"}, got)

	got, err = SequenceByHueThenLightness([]string{"#FF0000", "#808080", "#0000FF", "#FFFFFF", "#000000"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#000000", "#808080", "#FFFFFF", "#FF0000", "#0000FF"}, got)
}

func TestSortMorton(t *testing.T) {
	got, err := SortMorton([]string{"#FFFFFF", "#FF0000", "#0000FF", "#000000"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#000000", "#0000FF", "#FF0000", "#FFFFFF"}, got)
}

func TestHarmonize(t *testing.T) {
	got, err := Harmonize("#ff0000", Complementary)
	require.NoError(t, err)
	assert.Equal(t, []string{"#FF0000", "#00FFFF"}, got)

	got, err = Harmonize("#FF0000", Triadic)
	require.NoError(t, err)
	assert.Equal(t, []string{"#FF0000", "#00FF00", "#0000FF"}, got)

	got, err = Harmonize("#3366CC", Monochromatic)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = Harmonize("#3366CC", SplitComplementary)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = ParseHarmony("tetradic")
	assert.ErrorIs(t, err, errs.ErrUnknownKind)
	h, err := ParseHarmony("split-complementary")
	require.NoError(t, err)
	assert.Equal(t, SplitComplementary, h)
}

func TestContrast(t *testing.T) {
	c, err := CheckContrast("#000000", "#FFFFFF")
	require.NoError(t, err)
	assert.InDelta(t, 21, c.Ratio, 1e-9)
	assert.True(t, c.AAA)

	c, err = CheckContrast("#777777", "#888888")
	require.NoError(t, err)
	assert.False(t, c.AALarge)

	assert.Equal(t, "#000000", TextColor(colorspace.RGB{R: 255, G: 255, B: 255}))
	assert.Equal(t, "#FFFFFF", TextColor(colorspace.RGB{R: 20, G: 20, B: 80}))
}

func TestSimulateKeepsGrays(t *testing.T) {
	for _, d := range []Deficiency{Protanopia, Deuteranopia, Tritanopia} {
		got, err := SimulatePalette([]string{"#808080", "#FFFFFF"}, d)
		require.NoError(t, err)
		assert.Equal(t, []string{"#808080", "#FFFFFF"}, got, d.String())
	}
	got, err := SimulatePalette([]string{"#FF0000"}, Protanopia)
	require.NoError(t, err)
	assert.NotEqual(t, "#FF0000", got[0])
}

func TestAdjustSkipsLocked(t *testing.T) {
	got, err := Adjust([]string{"#FF0000", "#ff0000"}, Adjustment{Hue: 120, Locked: []int{1}})
	require.NoError(t, err)
	assert.Equal(t, []string{"#00FF00", "#ff0000"}, got)
}

func TestGenerateMood(t *testing.T) {
	a, err := Generate("#3366CC", Pastel, 5, seeded())
	require.NoError(t, err)
	b, err := Generate("#3366CC", Pastel, 5, seeded())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 5)
	for _, c := range a {
		rgb, err := colorspace.ParseHex(c)
		require.NoError(t, err)
		assert.Greater(t, colorspace.RGBToHSL(rgb).L, 0.7)
	}

	_, err = Generate("#3366CC", Neon, 0, seeded())
	assert.ErrorIs(t, err, errs.ErrDegenerateInput)
}

func TestExtractTheme(t *testing.T) {
	th, err := ExtractTheme(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultOklchTheme, th)

	th, err = ExtractTheme([]string{"#FF0000", "#0000FF", "#808080"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(th.Primary, "oklch("))
	assert.NotEqual(t, th.Primary, th.Secondary)
}

func TestSemanticTheme(t *testing.T) {
	th, err := SemanticTheme("#3366cc")
	require.NoError(t, err)
	assert.Equal(t, "#3366CC", th.Primary)
	assert.NotEmpty(t, th.Muted)

	_, err = SemanticTheme("blue")
	assert.ErrorIs(t, err, errs.ErrInvalidColorFormat)
}

func TestAssignRoles(t *testing.T) {
	th, err := AssignRoles([]string{"#000000", "#FFFFFF", "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", th.Background)
	assert.Equal(t, "#000000", th.Text)
	assert.Equal(t, "#FF0000", th.Primary)

	th, err = AssignRoles(nil)
	require.NoError(t, err)
	assert.Equal(t, fallbackRoles, th)
}

func TestExport(t *testing.T) {
	assert.Equal(t, ":root {\n  --my-pal-1: #111111;\n}", Export([]string{"#111111"}, "My  Pal", "css"))
	assert.Equal(t, "$x-1: #111111;\n$x-2: #222222;\n\n$x: (\n  1: #111111,\n  2: #222222\n);",
		SCSS([]string{"#111111", "#222222"}, "X"))
	tw := Tailwind([]string{"#111111", "#222222"}, "Brand")
	assert.Contains(t, tw, "'50': '#111111',")
	assert.Contains(t, tw, "'100': '#222222'\n")
}

func BenchmarkExtract(b *testing.B) {
	buf := pixbuf.New(256, 256)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(i * 31)
	}
	for i := 3; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = 255
	}
	rng := seeded()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Extract(buf, 8, Balanced, rng)
	}
}
