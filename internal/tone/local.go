package tone

import (
	"fmt"
	"sync"

	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/chewxy/math32"
)

// ShadowsHighlights lifts or lowers dark and bright tones. Each pixel's
// luma L gains max(0, 1-L/127.5)*s/2 plus max(0, (L/255-0.5)*2)*h/2, and
// every channel is scaled by newL/L so hue is preserved.
func ShadowsHighlights(buf *pixbuf.Buffer, shadows, highlights float64) error {
	ok, err := prepare("shadows/highlights", buf)
	if !ok || (shadows == 0 && highlights == 0) {
		return err
	}
	sf, hf := float32(shadows/100), float32(highlights/100)
	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		r, g, b := rgbAt(pix, i)
		l := luma(r, g, b)
		n := l / 255
		sw := math32.Max(0, 1-n*2)
		hw := math32.Max(0, (n-0.5)*2)
		nl := clampF(l+sw*sf*50+hw*hf*50, 0, 255)
		ratio := float32(1)
		if l > 0 {
			ratio = nl / l
		}
		setRGB(pix, i, r*ratio, g*ratio, b*ratio)
	}
	return nil
}

// Vibrance saturates (or, when negative, desaturates) muted pixels more
// than already saturated ones.
func Vibrance(buf *pixbuf.Buffer, v float64) error {
	ok, err := prepare("vibrance", buf)
	if !ok || v == 0 {
		return err
	}
	f := float32(v / 100)
	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		r, g, b := rgbAt(pix, i)
		hi := math32.Max(r, math32.Max(g, b))
		lo := math32.Min(r, math32.Min(g, b))
		var sat float32
		if hi > 0 {
			sat = (hi - lo) / hi
		}
		amt := f * (1 - sat) * 0.5
		gray := luma(r, g, b)
		if amt > 0 {
			setRGB(pix, i, r+(r-gray)*amt, g+(g-gray)*amt, b+(b-gray)*amt)
		} else {
			a := -amt
			setRGB(pix, i, r+(gray-r)*a, g+(gray-g)*a, b+(gray-b)*a)
		}
	}
	return nil
}

// clarityRadius is the box-blur radius of the clarity unsharp mask.
const clarityRadius = 3

// Clarity is a midtone-weighted unsharp mask: each channel moves away from
// its local mean by amount = c/100 * (1 - 2|L/255 - 0.5|) * 1.5.
func Clarity(buf *pixbuf.Buffer, c float64) error {
	ok, err := prepare("clarity", buf)
	if !ok || c == 0 {
		return err
	}
	f := float32(c / 100)
	blurred := getFloats(len(buf.Pix))
	defer putFloats(blurred)
	boxBlur(buf, blurred, clarityRadius)

	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		r, g, b := rgbAt(pix, i)
		lum := luma(r, g, b) / 255
		amount := f * (1 - math32.Abs(lum-0.5)*2) * 1.5
		setRGB(pix, i,
			r+(r-blurred[i])*amount,
			g+(g-blurred[i+1])*amount,
			b+(b-blurred[i+2])*amount)
	}
	return nil
}

// BoxBlur writes a separable box blur of buf's RGB channels into dst (len
// == len(buf.Pix)), extending edges by clamping. Alpha slots of dst are
// left as zero.
func BoxBlur(buf *pixbuf.Buffer, dst []float32, radius int) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("box blur: %w", err)
	}
	if len(dst) != len(buf.Pix) {
		return fmt.Errorf("box blur: dst length %d, want %d: %w", len(dst), len(buf.Pix), errs.ErrInvalidBufferDimensions)
	}
	if buf.Empty() {
		return nil
	}
	boxBlur(buf, dst, max(radius, 0))
	return nil
}

func boxBlur(buf *pixbuf.Buffer, dst []float32, radius int) {
	w, h := buf.Width, buf.Height
	tmp := getFloats(len(buf.Pix))
	defer putFloats(tmp)
	norm := 1 / float32(2*radius+1)

	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			var r, g, b float32
			for k := -radius; k <= radius; k++ {
				i := row + clampInt(x+k, 0, w-1)*4
				r += float32(buf.Pix[i])
				g += float32(buf.Pix[i+1])
				b += float32(buf.Pix[i+2])
			}
			o := row + x*4
			tmp[o], tmp[o+1], tmp[o+2] = r*norm, g*norm, b*norm
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float32
			for k := -radius; k <= radius; k++ {
				i := (clampInt(y+k, 0, h-1)*w + x) * 4
				r += tmp[i]
				g += tmp[i+1]
				b += tmp[i+2]
			}
			o := (y*w + x) * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = r*norm, g*norm, b*norm, 0
		}
	}
}

// Vignette darkens toward the corners: each pixel is scaled by
// 1 - v/100 * d^2, d being the distance from the center normalized so the
// corners sit at 1.
func Vignette(buf *pixbuf.Buffer, v float64) error {
	ok, err := prepare("vignette", buf)
	if !ok || v <= 0 {
		return err
	}
	f := float32(math32.Min(float32(v), 100) / 100)
	w, h := buf.Width, buf.Height
	cx, cy := float32(w-1)/2, float32(h-1)/2
	maxD2 := cx*cx + cy*cy
	if maxD2 == 0 {
		return nil
	}
	pix := buf.Pix
	for y := 0; y < h; y++ {
		dy := float32(y) - cy
		for x := 0; x < w; x++ {
			dx := float32(x) - cx
			k := 1 - f*(dx*dx+dy*dy)/maxD2
			i := (y*w + x) * 4
			r, g, b := rgbAt(pix, i)
			setRGB(pix, i, r*k, g*k, b*k)
		}
	}
	return nil
}

var floatPool sync.Pool

func getFloats(n int) []float32 {
	if v := floatPool.Get(); v != nil {
		buf := *(v.(*[]float32))
		if cap(buf) >= n {
			return buf[:n]
		}
	}
	return make([]float32, n)
}

func putFloats(buf []float32) {
	floatPool.Put(&buf)
}

func clampF(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
