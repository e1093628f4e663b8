package effects

import (
	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/chewxy/math32"
)

// PosterizeLevels returns the number of quantization levels used at the
// given intensity: 10 at 0, 2 at 100.
func PosterizeLevels(intensity float64) int {
	return max(2, int(math32.Round(10-float32(clampIntensity(intensity))/100*8)))
}

// posterizeLUT quantizes to multiples of 256/levels. Non-integer multiples
// are rounded up so that a second pass maps every output to itself.
func posterizeLUT(levels int) [256]uint8 {
	var lut [256]uint8
	step := 256 / float32(levels)
	for v := range lut {
		q := math32.Ceil(math32.Floor(float32(v)/step) * step)
		lut[v] = uint8(min(q, 255))
	}
	return lut
}

func applyPosterize(buf *pixbuf.Buffer, intensity float64) {
	lut := posterizeLUT(PosterizeLevels(intensity))
	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = lut[pix[i]]
		pix[i+1] = lut[pix[i+1]]
		pix[i+2] = lut[pix[i+2]]
	}
}

// PixelateSize returns the block edge in pixels at the given intensity.
func PixelateSize(intensity float64) int {
	return max(1, int(math32.Round(float32(clampIntensity(intensity))/100*20)))
}

func applyPixelate(buf *pixbuf.Buffer, intensity float64) {
	size := PixelateSize(intensity)
	if size == 1 {
		return
	}
	w, h, pix := buf.Width, buf.Height, buf.Pix
	for by := 0; by < h; by += size {
		ey := min(by+size, h)
		for bx := 0; bx < w; bx += size {
			ex := min(bx+size, w)

			var r, g, b, n int
			for y := by; y < ey; y++ {
				for x := bx; x < ex; x++ {
					i := buf.Offset(x, y)
					r += int(pix[i])
					g += int(pix[i+1])
					b += int(pix[i+2])
					n++
				}
			}
			ar, ag, ab := meanByte(r, n), meanByte(g, n), meanByte(b, n)
			for y := by; y < ey; y++ {
				for x := bx; x < ex; x++ {
					i := buf.Offset(x, y)
					pix[i], pix[i+1], pix[i+2] = ar, ag, ab
				}
			}
		}
	}
}

// meanByte is round(sum/n) with halves rounded up.
func meanByte(sum, n int) uint8 {
	return uint8((2*sum + n) / (2 * n))
}

// SolarizeThreshold returns the channel value above which solarize inverts.
func SolarizeThreshold(intensity float64) uint8 {
	return uint8(math32.Round(255 * (1 - float32(clampIntensity(intensity))/100)))
}

func applySolarize(buf *pixbuf.Buffer, intensity float64) {
	var lut [256]uint8
	t := SolarizeThreshold(intensity)
	for v := range lut {
		if uint8(v) > t {
			lut[v] = 255 - uint8(v)
		} else {
			lut[v] = uint8(v)
		}
	}
	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = lut[pix[i]]
		pix[i+1] = lut[pix[i+1]]
		pix[i+2] = lut[pix[i+2]]
	}
}

func applyDuotone(buf *pixbuf.Buffer, intensity float64, dark, light colorspace.RGB) {
	f := float32(intensity) / 100
	if f == 0 {
		return
	}
	dr, dg, db := float32(dark.R), float32(dark.G), float32(dark.B)
	lr, lg, lb := float32(light.R), float32(light.G), float32(light.B)

	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		r, g, b := float32(pix[i]), float32(pix[i+1]), float32(pix[i+2])
		lum := luma(r, g, b) / 255
		pix[i] = blend(r, dr+(lr-dr)*lum, f)
		pix[i+1] = blend(g, dg+(lg-dg)*lum, f)
		pix[i+2] = blend(b, db+(lb-db)*lum, f)
	}
}

func luma(r, g, b float32) float32 {
	return 0.299*r + 0.587*g + 0.114*b
}

// blend mixes orig toward v by f and rounds to a byte.
func blend(orig, v, f float32) uint8 {
	return toByte(orig*(1-f) + v*f)
}

func toByte(v float32) uint8 {
	if v <= 0 || math32.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math32.Round(v))
}
