package effects

import (
	"math/rand/v2"
	"testing"

	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }

func filled(w, h int, r, g, b uint8) *pixbuf.Buffer {
	buf := pixbuf.New(w, h)
	buf.Fill(r, g, b, 255)
	return buf
}

func noisy(w, h int) *pixbuf.Buffer {
	buf := pixbuf.New(w, h)
	rng := seeded()
	for i := range buf.Pix {
		buf.Pix[i] = uint8(rng.IntN(256))
	}
	return buf
}

func px(buf *pixbuf.Buffer, x, y int) [4]uint8 {
	i := buf.Offset(x, y)
	return [4]uint8{buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3]}
}

func apply(t *testing.T, buf *pixbuf.Buffer, k Kind, intensity float64) {
	t.Helper()
	require.NoError(t, Apply(buf, Descriptor{Kind: k, Intensity: intensity}, seeded()))
}

func TestParseKind(t *testing.T) {
	for _, k := range append(Kinds(), None) {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	k, err := ParseKind(" VHS ")
	require.NoError(t, err)
	assert.Equal(t, VHS, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, None, k)

	_, err = ParseKind("sparkle")
	assert.ErrorIs(t, err, errs.ErrUnknownKind)

	var d Kind
	require.NoError(t, d.UnmarshalText([]byte("glitch")))
	assert.Equal(t, Glitch, d)
}

func TestNoneIsNoOp(t *testing.T) {
	buf := noisy(6, 5)
	orig := buf.Clone()
	apply(t, buf, None, 100)
	assert.Equal(t, orig.Pix, buf.Pix)
}

func TestZeroIntensityIsNoOp(t *testing.T) {
	for _, k := range Kinds() {
		if k == Posterize {
			continue
		}
		t.Run(k.String(), func(t *testing.T) {
			buf := noisy(9, 7)
			orig := buf.Clone()
			apply(t, buf, k, 0)
			assert.Equal(t, orig.Pix, buf.Pix)
		})
	}
}

func TestAlphaPreserved(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			buf := noisy(12, 10)
			orig := buf.Clone()
			apply(t, buf, k, 80)
			for i := 3; i < len(buf.Pix); i += 4 {
				require.Equal(t, orig.Pix[i], buf.Pix[i], "alpha at byte %d", i)
			}
		})
	}
}

func TestPosterizeTwoLevels(t *testing.T) {
	buf := pixbuf.New(3, 1)
	for x, v := range []uint8{10, 130, 250} {
		i := buf.Offset(x, 0)
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = v, v, v, 255
	}
	assert.Equal(t, 2, PosterizeLevels(100))
	apply(t, buf, Posterize, 100)

	distinct := map[uint8]bool{}
	for x := 0; x < 3; x++ {
		distinct[px(buf, x, 0)[0]] = true
	}
	assert.Len(t, distinct, 2)
	assert.Equal(t, uint8(0), px(buf, 0, 0)[0])
	assert.Equal(t, uint8(128), px(buf, 1, 0)[0])
	assert.Equal(t, uint8(128), px(buf, 2, 0)[0])
}

func TestPosterizeIdempotent(t *testing.T) {
	ramp := pixbuf.New(256, 1)
	for x := 0; x < 256; x++ {
		i := ramp.Offset(x, 0)
		ramp.Pix[i], ramp.Pix[i+1], ramp.Pix[i+2], ramp.Pix[i+3] = uint8(x), uint8(255-x), uint8(x/2), 255
	}
	for intensity := 0.0; intensity <= 100; intensity += 5 {
		once := ramp.Clone()
		apply(t, once, Posterize, intensity)
		twice := once.Clone()
		apply(t, twice, Posterize, intensity)
		assert.Equal(t, once.Pix, twice.Pix, "intensity %v", intensity)

		distinct := map[uint8]bool{}
		for i := 0; i < len(once.Pix); i += 4 {
			distinct[once.Pix[i]] = true
		}
		assert.Len(t, distinct, PosterizeLevels(intensity), "intensity %v", intensity)
	}
}

func TestPixelateBlockMean(t *testing.T) {
	buf := pixbuf.New(3, 2)
	for i, v := range []uint8{0, 10, 200, 20, 31, 200} {
		buf.Pix[i*4], buf.Pix[i*4+1], buf.Pix[i*4+2], buf.Pix[i*4+3] = v, v, v, 255
	}
	require.Equal(t, 2, PixelateSize(10))
	apply(t, buf, Pixelate, 10)

	// (0+10+20+31)/4 = 15.25
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		assert.Equal(t, [4]uint8{15, 15, 15, 255}, px(buf, p[0], p[1]))
	}
	// the clipped right column is its own block
	assert.Equal(t, [4]uint8{200, 200, 200, 255}, px(buf, 2, 0))
}

func TestSolarize(t *testing.T) {
	assert.Equal(t, uint8(128), SolarizeThreshold(50))
	buf := pixbuf.New(2, 1)
	copy(buf.Pix, []uint8{200, 100, 128, 255, 129, 0, 255, 255})
	apply(t, buf, Solarize, 50)
	assert.Equal(t, []uint8{55, 100, 128, 255, 126, 0, 0, 255}, buf.Pix)
}

func TestDuotone(t *testing.T) {
	buf := pixbuf.New(2, 1)
	copy(buf.Pix, []uint8{0, 0, 0, 255, 255, 255, 255, 255})
	d := Descriptor{Kind: Duotone, Intensity: 100, Dark: "#102030", Light: "#F0E0D0"}
	require.NoError(t, Apply(buf, d, nil))
	assert.Equal(t, [4]uint8{0x10, 0x20, 0x30, 255}, px(buf, 0, 0))
	assert.Equal(t, [4]uint8{0xF0, 0xE0, 0xD0, 255}, px(buf, 1, 0))

	half := filled(1, 1, 0, 0, 0)
	require.NoError(t, Apply(half, Descriptor{Kind: Duotone, Intensity: 50, Light: "#FFF"}, nil))
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, px(half, 0, 0))

	err := Apply(filled(1, 1, 0, 0, 0), Descriptor{Kind: Duotone, Intensity: 50, Dark: "navy"}, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidColorFormat)
}

func TestEmbossFlatAddsMidGrayInside(t *testing.T) {
	buf := filled(5, 4, 50, 60, 200)
	apply(t, buf, Emboss, 100)
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if x == 0 || y == 0 || x == 4 || y == 3 {
				assert.Equal(t, [4]uint8{50, 60, 200, 255}, px(buf, x, y), "border %d,%d", x, y)
				continue
			}
			// the kernel sums to 1, so a flat field maps to v+128
			assert.Equal(t, [4]uint8{178, 188, 255, 255}, px(buf, x, y), "interior %d,%d", x, y)
		}
	}
}

func TestEmbossHalfIntensity(t *testing.T) {
	buf := filled(3, 3, 100, 100, 100)
	apply(t, buf, Emboss, 50)
	// 100*0.5 + 228*0.5
	assert.Equal(t, [4]uint8{164, 164, 164, 255}, px(buf, 1, 1))
}

func TestConvolutionSkipsTinyImages(t *testing.T) {
	buf := noisy(2, 8)
	orig := buf.Clone()
	apply(t, buf, Emboss, 100)
	apply(t, buf, Sharpen, 100)
	assert.Equal(t, orig.Pix, buf.Pix)
}

func TestSharpen(t *testing.T) {
	flat := filled(6, 6, 90, 120, 30)
	orig := flat.Clone()
	apply(t, flat, Sharpen, 100)
	assert.Equal(t, orig.Pix, flat.Pix)

	spot := filled(3, 3, 100, 100, 100)
	i := spot.Offset(1, 1)
	spot.Pix[i], spot.Pix[i+1], spot.Pix[i+2] = 120, 120, 120
	apply(t, spot, Sharpen, 50)
	// convolved: 5*120 - 4*100 = 200, mixed halfway with 120
	assert.Equal(t, [4]uint8{160, 160, 160, 255}, px(spot, 1, 1))
}

func TestHalftone(t *testing.T) {
	white := filled(20, 20, 255, 255, 255)
	apply(t, white, Halftone, 100)
	assert.Equal(t, filled(20, 20, 255, 255, 255).Pix, white.Pix)

	black := filled(32, 32, 0, 0, 0)
	require.Equal(t, 8, HalftoneDotSize(100))
	apply(t, black, Halftone, 100)
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, px(black, 8, 8), "dot centre")
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, px(black, 0, 0), "between dots")
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, px(black, 16, 16), "between dots")
}

func TestVHSDeterministicWithSeed(t *testing.T) {
	a, b := noisy(16, 9), noisy(16, 9)
	require.NoError(t, Apply(a, Descriptor{Kind: VHS, Intensity: 70}, seeded()))
	require.NoError(t, Apply(b, Descriptor{Kind: VHS, Intensity: 70}, seeded()))
	assert.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, noisy(16, 9).Pix, a.Pix)
}

func TestVHSChannelShift(t *testing.T) {
	buf := pixbuf.New(10, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 10; x++ {
			i := buf.Offset(x, y)
			v := uint8(x * 20)
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = v, v, v, 255
		}
	}
	// noise amplitude at intensity 40 is at most 4
	apply(t, buf, VHS, 40)
	p := px(buf, 5, 1)
	assert.InDelta(t, 60, int(p[0]), 4, "red from x-2")
	assert.InDelta(t, 100, int(p[1]), 4, "green in place")
	assert.InDelta(t, 140, int(p[2]), 4, "blue from x+2")
}

func TestGlitchDeterministicWithSeed(t *testing.T) {
	a, b := noisy(40, 40), noisy(40, 40)
	require.NoError(t, Apply(a, Descriptor{Kind: Glitch, Intensity: 90}, seeded()))
	require.NoError(t, Apply(b, Descriptor{Kind: Glitch, Intensity: 90}, seeded()))
	assert.Equal(t, a.Pix, b.Pix)
}

func TestGlitchBandsReadSnapshot(t *testing.T) {
	const w, h = 64, 60
	buf := pixbuf.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.Offset(x, y)
			buf.Pix[i+1], buf.Pix[i+3] = uint8(x*4), 255
		}
	}
	for seed := uint64(0); seed < 20; seed++ {
		out := buf.Clone()
		require.NoError(t, Apply(out, Descriptor{Kind: Glitch, Intensity: 100}, rand.New(rand.NewPCG(seed, seed))))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				src := int(px(out, x, y)[1]) / 4
				// one band moves a column by at most 15; overlapping bands
				// must not compound
				require.LessOrEqual(t, abs(src-x), 15, "seed %d at %d,%d", seed, x, y)
			}
		}
	}
}

func TestStackAppliesInOrder(t *testing.T) {
	stack := []Descriptor{{Kind: Posterize, Intensity: 100}, {Kind: Solarize, Intensity: 60}}
	a := noisy(8, 8)
	require.NoError(t, Stack(a, stack, seeded()))

	b := noisy(8, 8)
	apply(t, b, Posterize, 100)
	apply(t, b, Solarize, 60)
	assert.Equal(t, b.Pix, a.Pix)
}

func TestApplyErrors(t *testing.T) {
	bad := &pixbuf.Buffer{Pix: make([]byte, 7), Width: 2, Height: 1}
	assert.ErrorIs(t, Apply(bad, Descriptor{Kind: Posterize, Intensity: 10}, nil), errs.ErrInvalidBufferDimensions)
	assert.ErrorIs(t, Apply(filled(1, 1, 0, 0, 0), Descriptor{Kind: Kind(99)}, nil), errs.ErrUnknownKind)

	err := Stack(filled(1, 1, 0, 0, 0), []Descriptor{{Kind: None}, {Kind: Kind(-1)}}, nil)
	assert.ErrorIs(t, err, errs.ErrUnknownKind)
	assert.Contains(t, err.Error(), "stack[1]")

	require.NoError(t, Apply(pixbuf.New(0, 0), Descriptor{Kind: Glitch, Intensity: 100}, nil))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func BenchmarkEmboss(b *testing.B) {
	buf := noisy(512, 512)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		applyEmboss(buf, 60)
	}
}

func BenchmarkGlitch(b *testing.B) {
	buf := noisy(512, 512)
	rng := seeded()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		applyGlitch(buf, 60, rng)
	}
}
