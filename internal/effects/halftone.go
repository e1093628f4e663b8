package effects

import (
	"image"
	"image/draw"

	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/chewxy/math32"
	"golang.org/x/image/vector"
)

// HalftoneDotSize returns the maximum dot radius at the given intensity.
// Dots sit on a grid of twice that spacing.
func HalftoneDotSize(intensity float64) int {
	return max(2, int(math32.Round(float32(clampIntensity(intensity))/100*8)))
}

// bezierCircle is the control distance approximating a quarter circle.
const bezierCircle = 0.5522847498

func applyHalftone(buf *pixbuf.Buffer, intensity float64) {
	f := float32(intensity) / 100
	if f == 0 {
		return
	}
	dot := HalftoneDotSize(intensity)
	spacing := dot * 2
	w, h, pix := buf.Width, buf.Height, buf.Pix

	ras := vector.NewRasterizer(w, h)
	for y := 0; y < h; y += spacing {
		for x := 0; x < w; x += spacing {
			var total float32
			var n int
			for sy := y; sy < min(y+spacing, h); sy++ {
				for sx := x; sx < min(x+spacing, w); sx++ {
					i := buf.Offset(sx, sy)
					total += luma(float32(pix[i]), float32(pix[i+1]), float32(pix[i+2])) / 255
					n++
				}
			}
			r := (1 - total/float32(n)) * float32(dot)
			if r > 0.5 {
				addCircle(ras, float32(x)+float32(spacing)/2, float32(y)+float32(spacing)/2, r)
			}
		}
	}

	canvas := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	ras.Draw(canvas, canvas.Bounds(), image.Black, image.Point{})

	for y := 0; y < h; y++ {
		row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+w]
		for x, v := range row {
			i := buf.Offset(x, y)
			tone := float32(v)
			pix[i] = blend(float32(pix[i]), tone, f)
			pix[i+1] = blend(float32(pix[i+1]), tone, f)
			pix[i+2] = blend(float32(pix[i+2]), tone, f)
		}
	}
}

// addCircle appends a closed circle of radius r centred on (cx, cy) built
// from four cubic segments.
func addCircle(ras *vector.Rasterizer, cx, cy, r float32) {
	k := r * bezierCircle
	ras.MoveTo(cx+r, cy)
	ras.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	ras.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	ras.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	ras.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	ras.ClosePath()
}
