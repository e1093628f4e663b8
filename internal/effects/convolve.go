package effects

import (
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/anthonynsimon/bild/convolution"
)

var (
	embossKernel  = [9]float64{-2, -1, 0, -1, 1, 1, 0, 1, 2}
	sharpenKernel = [9]float64{0, -1, 0, -1, 5, -1, 0, -1, 0}
)

// applyEmboss adds 128 to the kernel response and mixes it with the source
// by intensity. The one-pixel border is left untouched.
func applyEmboss(buf *pixbuf.Buffer, intensity float64) {
	f := intensity / 100
	convolveInterior(buf, embossKernel, f, 128*f)
}

// applySharpen mixes the sharpened response with the source by intensity.
func applySharpen(buf *pixbuf.Buffer, intensity float64) {
	convolveInterior(buf, sharpenKernel, intensity/100, 0)
}

// convolveInterior computes round(src*(1-f) + (K*src + offset/f)*f) for
// every interior pixel. The mix is linear, so it is folded into the kernel
// as f*K + (1-f)*identity and evaluated in a single pass.
func convolveInterior(buf *pixbuf.Buffer, k [9]float64, f, offset float64) {
	w, h := buf.Width, buf.Height
	if f == 0 || w < 3 || h < 3 {
		return
	}
	kernel := convolution.NewKernel(3, 3)
	for i, v := range k {
		kernel.Matrix[i] = f * v
	}
	kernel.Matrix[4] += 1 - f

	// bild truncates after clamping; the extra half rounds to nearest.
	out := convolution.Convolve(buf.RGBA(), kernel, &convolution.Options{
		Bias:      offset + 0.5,
		KeepAlpha: true,
	})

	pix := buf.Pix
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := buf.Offset(x, y)
			j := out.PixOffset(x, y)
			pix[i] = out.Pix[j]
			pix[i+1] = out.Pix[j+1]
			pix[i+2] = out.Pix[j+2]
		}
	}
}
