package composite

import (
	"math/rand/v2"
	"testing"

	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(w, h int, r, g, b, a uint8) *pixbuf.Buffer {
	buf := pixbuf.New(w, h)
	buf.Fill(r, g, b, a)
	return buf
}

func opaqueNoise(w, h int) *pixbuf.Buffer {
	rng := rand.New(rand.NewPCG(3, 5))
	buf := pixbuf.New(w, h)
	for i := range buf.Pix {
		if i%4 == 3 {
			buf.Pix[i] = 255
			continue
		}
		buf.Pix[i] = uint8(rng.IntN(256))
	}
	return buf
}

func first(buf *pixbuf.Buffer) [4]uint8 {
	return [4]uint8{buf.Pix[0], buf.Pix[1], buf.Pix[2], buf.Pix[3]}
}

func TestIdenticalOpaqueLayerKeepsBase(t *testing.T) {
	base := opaqueNoise(6, 4)
	out, err := Composite(base, []Layer{{Source: base.Clone(), Opacity: 1, Visible: true}}, 6, 4)
	require.NoError(t, err)
	assert.Equal(t, base.Pix, out.Pix)

	big := opaqueNoise(12, 8)
	out, err = Composite(big, []Layer{{Source: big.Clone(), Opacity: 1, Visible: true}}, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, big.Resize(5, 3, imaging.Linear).Pix, out.Pix)
}

func TestSkippedLayers(t *testing.T) {
	base := opaqueNoise(4, 4)
	red := filled(4, 4, 255, 0, 0, 255)
	layers := []Layer{
		{Name: "hidden", Source: red, Opacity: 1, Visible: false},
		{Name: "empty", Source: nil, Opacity: 1, Visible: true},
		{Name: "clear", Source: red, Opacity: 0, Visible: true},
		// hidden layers are not validated
		{Name: "broken", Source: &pixbuf.Buffer{Pix: []byte{1}, Width: 3, Height: 3}},
	}
	out, err := Composite(base, layers, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, base.Pix, out.Pix)
}

func TestLayersDrawBottomToTop(t *testing.T) {
	base := filled(2, 2, 0, 0, 0, 255)
	out, err := Composite(base, []Layer{
		{Source: filled(2, 2, 255, 0, 0, 255), Opacity: 1, Visible: true},
		{Source: filled(2, 2, 0, 0, 255, 255), Opacity: 1, Visible: true},
	}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{0, 0, 255, 255}, first(out))
}

func TestOpacity(t *testing.T) {
	out, err := Composite(filled(1, 1, 0, 0, 0, 255),
		[]Layer{{Source: filled(1, 1, 255, 255, 255, 255), Opacity: 0.5, Visible: true}}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{128, 128, 128, 255}, first(out))
}

func TestSeparableModes(t *testing.T) {
	tests := []struct {
		mode  BlendMode
		base  uint8
		layer uint8
		want  uint8
	}{
		{Multiply, 200, 128, 100},
		{Screen, 90, 0, 90},
		{Screen, 90, 255, 255},
		{Darken, 90, 40, 40},
		{Lighten, 90, 40, 90},
		{Difference, 90, 90, 0},
		{Difference, 200, 50, 150},
		{Exclusion, 255, 255, 0},
		{ColorDodge, 0, 255, 0},
		{ColorDodge, 100, 255, 255},
		{ColorBurn, 255, 0, 255},
		{ColorBurn, 100, 0, 0},
		{HardLight, 100, 0, 0},
		{Overlay, 0, 200, 0},
		{SoftLight, 255, 0, 255},
		{Normal, 10, 200, 200},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			out, err := Composite(filled(1, 1, tt.base, tt.base, tt.base, 255),
				[]Layer{{Source: filled(1, 1, tt.layer, tt.layer, tt.layer, 255), Opacity: 1, Mode: tt.mode, Visible: true}}, 1, 1)
			require.NoError(t, err)
			got := first(out)
			assert.InDelta(t, int(tt.want), int(got[0]), 1)
			assert.Equal(t, uint8(255), got[3])
		})
	}
}

func TestColorModeTakesBackdropLuminosity(t *testing.T) {
	out, err := Composite(filled(1, 1, 0, 255, 0, 255),
		[]Layer{{Source: filled(1, 1, 100, 100, 100, 255), Opacity: 1, Mode: Color, Visible: true}}, 1, 1)
	require.NoError(t, err)
	// lum(green) = 0.59
	assert.Equal(t, [4]uint8{150, 150, 150, 255}, first(out))
}

func TestLuminosityKeepsHue(t *testing.T) {
	out, err := Composite(filled(1, 1, 200, 100, 50, 255),
		[]Layer{{Source: filled(1, 1, 128, 128, 128, 255), Opacity: 1, Mode: Luminosity, Visible: true}}, 1, 1)
	require.NoError(t, err)
	p := first(out)
	assert.Greater(t, p[0], p[1])
	assert.Greater(t, p[1], p[2])
	l := 0.3*float64(p[0]) + 0.59*float64(p[1]) + 0.11*float64(p[2])
	assert.InDelta(t, 128, l, 1.5)
}

func TestEveryModeStaysInRange(t *testing.T) {
	base := opaqueNoise(8, 8)
	layer := opaqueNoise(8, 8)
	for i := 0; i < len(layer.Pix); i += 4 {
		layer.Pix[i], layer.Pix[i+2] = layer.Pix[i+2], 255-layer.Pix[i]
	}
	for _, m := range Modes() {
		out, err := Composite(base, []Layer{{Source: layer, Opacity: 0.7, Mode: m, Visible: true}}, 8, 8)
		require.NoError(t, err, m.String())
		for i := 3; i < len(out.Pix); i += 4 {
			require.Equal(t, uint8(255), out.Pix[i], m.String())
		}
	}
}

func TestTransparentBackdropShowsSource(t *testing.T) {
	src := filled(2, 2, 12, 34, 56, 255)
	for _, m := range Modes() {
		out, err := Composite(nil, []Layer{{Source: src, Opacity: 1, Mode: m, Visible: true}}, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, src.Pix, out.Pix, m.String())
	}
}

func TestSetSatAndClip(t *testing.T) {
	r, g, b := setSat(0.2, 0.6, 0.4, 0.5)
	assert.InDelta(t, 0, r, 1e-6)
	assert.InDelta(t, 0.5, g, 1e-6)
	assert.InDelta(t, 0.25, b, 1e-6)

	r, g, b = setSat(0.3, 0.3, 0.3, 0.8)
	assert.Equal(t, [3]float32{0, 0, 0}, [3]float32{r, g, b})

	r, g, b = setLum(0.9, 0.9, 0.1, 0.95)
	assert.LessOrEqual(t, max(r, g, b), float32(1.0000001))
	assert.InDelta(t, 0.95, lum(r, g, b), 1e-4)
}

func TestParseBlendMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseBlendMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	m, err := ParseBlendMode("Color_Dodge")
	require.NoError(t, err)
	assert.Equal(t, ColorDodge, m)

	m, err = ParseBlendMode("source-over")
	require.NoError(t, err)
	assert.Equal(t, Normal, m)
	assert.Equal(t, "source-over", Normal.Operator())
	assert.Equal(t, "soft-light", SoftLight.Operator())
	assert.Equal(t, "source-over", BlendMode(40).Operator())

	_, err = ParseBlendMode("xor")
	assert.ErrorIs(t, err, errs.ErrUnknownKind)
	assert.Len(t, Modes(), 16)
}

func TestCompositeErrors(t *testing.T) {
	_, err := Composite(nil, nil, 0, 4)
	assert.ErrorIs(t, err, errs.ErrInvalidBufferDimensions)

	_, err = Composite(&pixbuf.Buffer{Pix: []byte{1, 2}, Width: 1, Height: 1}, nil, 1, 1)
	assert.ErrorIs(t, err, errs.ErrInvalidBufferDimensions)

	bad := Layer{Name: "bad", Source: &pixbuf.Buffer{Pix: []byte{1}, Width: 1, Height: 1}, Visible: true}
	_, err = Composite(nil, []Layer{bad}, 1, 1)
	assert.ErrorIs(t, err, errs.ErrInvalidBufferDimensions)
	assert.Contains(t, err.Error(), "bad")
}

func TestFlatten(t *testing.T) {
	img, err := Flatten(filled(3, 2, 1, 2, 3, 255), nil, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, []uint8{1, 2, 3, 255}, img.Pix[:4])
}

func TestThumbnail(t *testing.T) {
	th, err := Thumbnail(filled(200, 100, 9, 9, 9, 255), 0)
	require.NoError(t, err)
	assert.Equal(t, 64, th.Width)
	assert.Equal(t, 32, th.Height)

	th, err = Thumbnail(filled(10, 5, 9, 9, 9, 255), 64)
	require.NoError(t, err)
	assert.Equal(t, 10, th.Width)
	assert.Equal(t, 5, th.Height)

	_, err = Thumbnail(nil, 64)
	assert.ErrorIs(t, err, errs.ErrInvalidBufferDimensions)
}

func BenchmarkComposite(b *testing.B) {
	base := opaqueNoise(256, 256)
	layers := []Layer{
		{Source: opaqueNoise(256, 256), Opacity: 0.5, Mode: Overlay, Visible: true},
		{Source: opaqueNoise(256, 256), Opacity: 0.8, Mode: Hue, Visible: true},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Composite(base, layers, 256, 256)
	}
}
