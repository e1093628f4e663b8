package curve

import (
	"testing"

	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityLUT(t *testing.T) {
	lut := CompileLUT([]Point{{0, 0}, {255, 255}})
	for i := 0; i < 256; i++ {
		require.Equal(t, uint8(i), lut[i])
	}
	assert.Equal(t, IdentityLUT(), CompileLUT(nil))
	assert.Equal(t, IdentityLUT(), CompileLUT([]Point{{10, 40}}))
}

func TestCollinearPointsStayIdentity(t *testing.T) {
	assert.Equal(t, IdentityLUT(), CompileLUT([]Point{{0, 0}, {64, 64}, {128, 128}, {255, 255}}))
}

func TestInvertedLine(t *testing.T) {
	lut := CompileLUT([]Point{{0, 255}, {255, 0}})
	for i := 0; i < 256; i++ {
		require.Equal(t, uint8(255-i), lut[i], "input %d", i)
	}
}

func TestCurvePassesThroughControlPoints(t *testing.T) {
	pts := []Point{{0, 0}, {64, 40}, {128, 200}, {255, 255}}
	lut := CompileLUT(pts)
	for _, p := range pts {
		assert.InDelta(t, p.Y, float64(lut[int(p.X)]), 2, "at x=%v", p.X)
	}
	// A rising curve stays rising away from the control points.
	assert.Less(t, lut[64], lut[100])
	assert.Less(t, lut[100], lut[128])
}

func TestOutsideControlRange(t *testing.T) {
	lut := CompileLUT([]Point{{50, 20}, {200, 230}})
	assert.Equal(t, uint8(20), lut[0])
	assert.Equal(t, uint8(20), lut[50])
	assert.Equal(t, uint8(230), lut[200])
	assert.Equal(t, uint8(230), lut[255])
}

func TestUnsortedInput(t *testing.T) {
	sorted := CompileLUT([]Point{{0, 10}, {100, 180}, {255, 240}})
	shuffled := CompileLUT([]Point{{255, 240}, {0, 10}, {100, 180}})
	assert.Equal(t, sorted, shuffled)
}

func TestDuplicatePointsDoNotBreak(t *testing.T) {
	lut := CompileLUT([]Point{{0, 0}, {128, 128}, {128, 128}, {255, 255}})
	assert.InDelta(t, 128, float64(lut[128]), 1)
	assert.Equal(t, uint8(0), lut[0])
	assert.Equal(t, uint8(255), lut[255])
}

func TestDuplicateXKeepsLastPoint(t *testing.T) {
	want := CompileLUT([]Point{{0, 0}, {128, 200}, {255, 255}})
	assert.Equal(t, want, CompileLUT([]Point{{0, 0}, {128, 40}, {128, 200}, {255, 255}}))
	assert.Equal(t, want, CompileLUT([]Point{{128, 40}, {255, 255}, {0, 0}, {128, 200}}))
	assert.InDelta(t, 200, float64(want[128]), 1)

	flat := CompileLUT([]Point{{90, 10}, {90, 30}})
	for i := 0; i < 256; i++ {
		require.Equal(t, uint8(30), flat[i], "input %d", i)
	}
}

func TestCompileComposesChannelThenMaster(t *testing.T) {
	invert := []Point{{0, 255}, {255, 0}}
	tables := Compile(Spec{RGB: invert, Red: invert})
	assert.Equal(t, IdentityLUT(), tables.R)

	var inv LUT
	for i := range inv {
		inv[i] = uint8(255 - i)
	}
	assert.Equal(t, inv, tables.G)
	assert.Equal(t, inv, tables.B)
}

func TestApply(t *testing.T) {
	buf := pixbuf.New(2, 1)
	copy(buf.Pix, []byte{10, 20, 30, 40, 200, 100, 0, 255})

	require.NoError(t, Apply(buf, DefaultSpec()))
	assert.Equal(t, []byte{10, 20, 30, 40, 200, 100, 0, 255}, buf.Pix)

	require.NoError(t, Apply(buf, Spec{Green: []Point{{0, 255}, {255, 0}}}))
	assert.Equal(t, []byte{10, 235, 30, 40, 200, 155, 0, 255}, buf.Pix)

	err := Apply(&pixbuf.Buffer{Pix: make([]byte, 3), Width: 1, Height: 1}, DefaultSpec())
	assert.ErrorIs(t, err, errs.ErrInvalidBufferDimensions)
}

func TestSpecIsIdentity(t *testing.T) {
	assert.True(t, Spec{}.IsIdentity())
	assert.True(t, DefaultSpec().IsIdentity())
	assert.False(t, Spec{Blue: []Point{{0, 30}, {255, 255}}}.IsIdentity())
}

func BenchmarkCompileLUT(b *testing.B) {
	pts := []Point{{0, 0}, {40, 60}, {128, 140}, {200, 220}, {255, 255}}
	for i := 0; i < b.N; i++ {
		_ = CompileLUT(pts)
	}
}
