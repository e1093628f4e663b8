package metric

import (
	"math"
	"testing"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

// Reference pairs from Sharma, Wu & Dalal (2005).
var sharma = []struct {
	a, b colorspace.Lab
	want float64
}{
	{colorspace.Lab{L: 50, A: 2.6772, B: -79.7751}, colorspace.Lab{L: 50, A: 0, B: -82.7485}, 2.0425},
	{colorspace.Lab{L: 50, A: 3.1571, B: -77.2803}, colorspace.Lab{L: 50, A: 0, B: -82.7485}, 2.8615},
	{colorspace.Lab{L: 50, A: 0, B: 0}, colorspace.Lab{L: 50, A: -1, B: 2}, 2.3669},
	{colorspace.Lab{L: 50, A: 2.5, B: 0}, colorspace.Lab{L: 73, A: 25, B: -18}, 27.1492},
	{colorspace.Lab{L: 50, A: 2.5, B: 0}, colorspace.Lab{L: 61, A: -5, B: 29}, 22.8977},
	{colorspace.Lab{L: 60.2574, A: -34.0099, B: 36.2677}, colorspace.Lab{L: 60.4626, A: -34.1751, B: 39.4387}, 1.2644},
}

func TestDeltaE2000Reference(t *testing.T) {
	for i, tc := range sharma {
		assert.InDelta(t, tc.want, DeltaE2000(tc.a, tc.b), 1e-4, "pair %d", i)
		assert.InDelta(t, tc.want, DeltaE2000(tc.b, tc.a), 1e-4, "pair %d reversed", i)
	}
}

func sampleColors() []colorspace.RGB {
	var out []colorspace.RGB
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				out = append(out, colorspace.RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
			}
		}
	}
	return out
}

func TestDeltaE2000Symmetry(t *testing.T) {
	colors := sampleColors()
	for i, a := range colors {
		la := colorspace.RGBToLab(a)
		assert.Equal(t, 0.0, DeltaE2000(la, la), "%s vs itself", a)
		for _, b := range colors[i+1:] {
			lb := colorspace.RGBToLab(b)
			d1 := DeltaE2000(la, lb)
			d2 := DeltaE2000(lb, la)
			assert.InDelta(t, d1, d2, 1e-9, "%s vs %s", a, b)
			assert.GreaterOrEqual(t, d1, 0.0)
		}
	}
}

func TestDeltaE2000MatchesColorful(t *testing.T) {
	colors := sampleColors()
	for i := 0; i+1 < len(colors); i += 7 {
		a, b := colors[i], colors[i+1]
		ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
		cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
		assert.InDelta(t, ca.DistanceCIEDE2000(cb)*100, DeltaE2000RGB(a, b), 0.25, "%s vs %s", a, b)
	}
}

func TestNeutralSingularity(t *testing.T) {
	// Both achromatic: hue terms must not produce NaN.
	d := DeltaE2000RGB(colorspace.RGB{}, colorspace.RGB{R: 128, G: 128, B: 128})
	assert.Greater(t, d, 0.0)
	assert.False(t, math.IsNaN(d))
}

func TestEuclideanOklab(t *testing.T) {
	a := colorspace.Oklab{L: 0.5, A: 0.1, B: -0.1}
	b := colorspace.Oklab{L: 0.8, A: -0.3, B: 0.2}
	assert.Equal(t, EuclideanOklab(a, b), EuclideanOklab(b, a))
	assert.Equal(t, 0.0, EuclideanOklab(a, a))
	assert.InDelta(t, 0.3*0.3+0.4*0.4+0.3*0.3, SquaredOklab(a, b), 1e-12)
}

func BenchmarkDeltaE2000(b *testing.B) {
	x := colorspace.Lab{L: 50, A: 2.5, B: 0}
	y := colorspace.Lab{L: 73, A: 25, B: -18}
	for i := 0; i < b.N; i++ {
		_ = DeltaE2000(x, y)
	}
}
