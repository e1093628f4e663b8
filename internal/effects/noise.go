package effects

import (
	"math/rand/v2"

	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/chewxy/math32"
)

const scanlineSpacing = 3

// shiftChannels pulls red from dx pixels to the left and blue from dx
// pixels to the right of each pixel in src, clamping at the row ends.
func shiftChannels(dst, src *pixbuf.Buffer, dx int) {
	w := src.Width
	for y := 0; y < src.Height; y++ {
		for x := 0; x < w; x++ {
			i := src.Offset(x, y)
			dst.Pix[i] = src.Pix[src.Offset(clampInt(x-dx, 0, w-1), y)]
			dst.Pix[i+1] = src.Pix[i+1]
			dst.Pix[i+2] = src.Pix[src.Offset(clampInt(x+dx, 0, w-1), y)+2]
		}
	}
}

func applyVHS(buf *pixbuf.Buffer, intensity float64, rng *rand.Rand) {
	f := float32(intensity) / 100
	if f == 0 {
		return
	}
	if off := int(math32.Round(f * 5)); off > 0 {
		shiftChannels(buf, buf.Clone(), off)
	}

	pix := buf.Pix
	darken := 0.8 + (1-f)*0.2
	for y := 0; y < buf.Height; y += scanlineSpacing {
		for x := 0; x < buf.Width; x++ {
			i := buf.Offset(x, y)
			pix[i] = toByte(float32(pix[i]) * darken)
			pix[i+1] = toByte(float32(pix[i+1]) * darken)
			pix[i+2] = toByte(float32(pix[i+2]) * darken)
		}
	}

	amount := f * 20
	for i := 0; i < len(pix); i += 4 {
		n := (rng.Float32() - 0.5) * amount
		pix[i] = toByte(float32(pix[i]) + n)
		pix[i+1] = toByte(float32(pix[i+1]) + n)
		pix[i+2] = toByte(float32(pix[i+2]) + n)
	}
}

// applyGlitch offsets red and blue in opposite directions, then copies a
// number of horizontal bands from a shifted position. Bands always read the
// channel-shifted snapshot, never rows already displaced by an earlier band.
func applyGlitch(buf *pixbuf.Buffer, intensity float64, rng *rand.Rand) {
	f := float32(intensity) / 100
	if f == 0 {
		return
	}
	w, h := buf.Width, buf.Height
	shiftChannels(buf, buf.Clone(), int(math32.Round(f*10)))

	slices := int(math32.Round(f * 10))
	sliceH := int(math32.Round(float32(h) / 20))
	if slices == 0 || sliceH == 0 {
		return
	}
	snap := buf.Clone()
	for s := 0; s < slices; s++ {
		y0 := int(math32.Floor(rng.Float32() * float32(h-sliceH)))
		disp := int(math32.Round((rng.Float32() - 0.5) * f * 30))
		for y := y0; y < min(y0+sliceH, h); y++ {
			for x := 0; x < w; x++ {
				dst := buf.Offset(x, y)
				src := snap.Offset(clampInt(x+disp, 0, w-1), y)
				copy(buf.Pix[dst:dst+3], snap.Pix[src:src+3])
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
