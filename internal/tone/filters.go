package tone

import (
	"fmt"
	"math"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/chewxy/math32"
)

// Filters are the basic adjustments with CSS filter semantics. Brightness,
// Contrast and Saturation are percentages where 100 is neutral; Sepia and
// Invert are percentages where 0 is neutral; HueRotate is in degrees and
// Blur in pixels.
type Filters struct {
	Grayscale  bool    `json:"grayscale,omitempty" yaml:"grayscale,omitempty" toml:"grayscale,omitempty"`
	Sepia      float64 `json:"sepia,omitempty" yaml:"sepia,omitempty" toml:"sepia,omitempty"`
	Invert     float64 `json:"invert,omitempty" yaml:"invert,omitempty" toml:"invert,omitempty"`
	Brightness float64 `json:"brightness" yaml:"brightness" toml:"brightness"`
	Contrast   float64 `json:"contrast" yaml:"contrast" toml:"contrast"`
	Saturation float64 `json:"saturation" yaml:"saturation" toml:"saturation"`
	HueRotate  float64 `json:"hueRotate,omitempty" yaml:"hueRotate,omitempty" toml:"hueRotate,omitempty"`
	Blur       float64 `json:"blur,omitempty" yaml:"blur,omitempty" toml:"blur,omitempty"`
}

// DefaultFilters is the neutral setting.
func DefaultFilters() Filters {
	return Filters{Brightness: 100, Contrast: 100, Saturation: 100}
}

// IsNeutral reports whether f changes nothing.
func (f Filters) IsNeutral() bool { return f == DefaultFilters() }

// String renders f as a CSS filter property value, or "none".
func (f Filters) String() string {
	var parts []string
	if f.Grayscale {
		parts = append(parts, "grayscale(100%)")
	}
	if f.Sepia != 0 {
		parts = append(parts, fmt.Sprintf("sepia(%g%%)", f.Sepia))
	}
	if f.Invert != 0 {
		parts = append(parts, fmt.Sprintf("invert(%g%%)", f.Invert))
	}
	if f.Brightness != 100 {
		parts = append(parts, fmt.Sprintf("brightness(%g%%)", f.Brightness))
	}
	if f.Contrast != 100 {
		parts = append(parts, fmt.Sprintf("contrast(%g%%)", f.Contrast))
	}
	if f.Saturation != 100 {
		parts = append(parts, fmt.Sprintf("saturate(%g%%)", f.Saturation))
	}
	if f.HueRotate != 0 {
		parts = append(parts, fmt.Sprintf("hue-rotate(%gdeg)", f.HueRotate))
	}
	if f.Blur > 0 {
		parts = append(parts, fmt.Sprintf("blur(%gpx)", f.Blur))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Apply runs the filters in CSS order. The blur step replaces buf.Pix with
// a new slice of the same length.
func (f Filters) Apply(buf *pixbuf.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("filters: %w", err)
	}
	if buf.Empty() {
		return nil
	}
	if f.Grayscale {
		grayscaleMatrix(1).apply(buf)
	}
	if f.Sepia != 0 {
		sepiaMatrix(pct(f.Sepia)).apply(buf)
	}
	if f.Invert != 0 {
		invertMatrix(pct(f.Invert)).apply(buf)
	}
	if f.Brightness != 100 {
		scaleMatrix(float32(f.Brightness/100), 0).apply(buf)
	}
	if f.Contrast != 100 {
		c := float32(f.Contrast / 100)
		scaleMatrix(c, 127.5*(1-c)).apply(buf)
	}
	if f.Saturation != 100 {
		saturateMatrix(float32(f.Saturation / 100)).apply(buf)
	}
	if f.HueRotate != 0 {
		hueRotateMatrix(float32(f.HueRotate)).apply(buf)
	}
	if f.Blur > 0 {
		return Blur(buf, f.Blur)
	}
	return nil
}

// Blur applies a separable Gaussian blur with standard deviation radius,
// as CSS blur() does. Edges are extended and each pass rounds to nearest.
func Blur(buf *pixbuf.Buffer, radius float64) error {
	ok, err := prepare("blur", buf)
	if !ok || radius <= 0 {
		return err
	}
	k := gaussianKernel(radius)
	opts := &convolution.Options{Bias: 0.5}
	img := convolution.Convolve(buf.NRGBA(), k, opts)
	img = convolution.Convolve(img, k.Transposed(), opts)
	copy(buf.Pix, pixbuf.FromImage(img).Pix)
	return nil
}

// gaussianKernel returns an odd-length row kernel spanning 3 sigma on
// each side, so its center tap sits at width/2.
func gaussianKernel(sigma float64) *convolution.Kernel {
	half := max(int(math.Ceil(3*sigma)), 1)
	n := 2*half + 1
	k := convolution.NewKernel(n, 1)
	for i := range n {
		x := float64(i - half)
		k.Matrix[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	return k.Normalized().(*convolution.Kernel)
}

// pct converts a percentage to an amount clamped to [0,1].
func pct(v float64) float32 {
	return clampF(float32(v/100), 0, 1)
}

// colorMatrix is a 3x3 RGB transform plus a per-channel offset, in
// channel units.
type colorMatrix struct {
	m      [3][3]float32
	offset [3]float32
}

func (c colorMatrix) apply(buf *pixbuf.Buffer) {
	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		r, g, b := rgbAt(pix, i)
		setRGB(pix, i,
			c.m[0][0]*r+c.m[0][1]*g+c.m[0][2]*b+c.offset[0],
			c.m[1][0]*r+c.m[1][1]*g+c.m[1][2]*b+c.offset[1],
			c.m[2][0]*r+c.m[2][1]*g+c.m[2][2]*b+c.offset[2])
	}
}

func scaleMatrix(k, offset float32) colorMatrix {
	return colorMatrix{
		m:      [3][3]float32{{k, 0, 0}, {0, k, 0}, {0, 0, k}},
		offset: [3]float32{offset, offset, offset},
	}
}

func grayscaleMatrix(a float32) colorMatrix {
	s := 1 - a
	return colorMatrix{m: [3][3]float32{
		{0.2126 + 0.7874*s, 0.7152 - 0.7152*s, 0.0722 - 0.0722*s},
		{0.2126 - 0.2126*s, 0.7152 + 0.2848*s, 0.0722 - 0.0722*s},
		{0.2126 - 0.2126*s, 0.7152 - 0.7152*s, 0.0722 + 0.9278*s},
	}}
}

func sepiaMatrix(a float32) colorMatrix {
	s := 1 - a
	return colorMatrix{m: [3][3]float32{
		{0.393 + 0.607*s, 0.769 - 0.769*s, 0.189 - 0.189*s},
		{0.349 - 0.349*s, 0.686 + 0.314*s, 0.168 - 0.168*s},
		{0.272 - 0.272*s, 0.534 - 0.534*s, 0.131 + 0.869*s},
	}}
}

func invertMatrix(a float32) colorMatrix {
	k := 1 - 2*a
	return scaleMatrix(k, 255*a)
}

func saturateMatrix(s float32) colorMatrix {
	return colorMatrix{m: [3][3]float32{
		{0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s},
		{0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s},
		{0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s},
	}}
}

func hueRotateMatrix(deg float32) colorMatrix {
	sin, cos := math32.Sincos(deg * math32.Pi / 180)
	return colorMatrix{m: [3][3]float32{
		{0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928},
		{0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283},
		{0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072},
	}}
}
