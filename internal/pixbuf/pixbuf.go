// Package pixbuf defines the raw pixel buffer every tone, effect, curve and
// compositing operator works on: interleaved, straight-alpha RGBA bytes,
// row-major, no padding.
package pixbuf

import (
	"fmt"
	"image"

	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/disintegration/imaging"
)

// Buffer is a width*height*4 byte RGBA image. Operators mutate Pix in place
// and never resize it.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
}

// New allocates a zeroed (transparent black) buffer.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Pix:    make([]byte, width*height*4),
		Width:  width,
		Height: height,
	}
}

// Wrap validates pix against the given dimensions and returns a buffer that
// shares it.
func Wrap(pix []byte, width, height int) (*Buffer, error) {
	b := &Buffer{Pix: pix, Width: width, Height: height}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the length invariant. It must be called before any pixel
// is touched by a public operator.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("nil buffer: %w", errs.ErrInvalidBufferDimensions)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("negative size %dx%d: %w", b.Width, b.Height, errs.ErrInvalidBufferDimensions)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("length %d for %dx%d (want %d): %w",
			len(b.Pix), b.Width, b.Height, b.Width*b.Height*4, errs.ErrInvalidBufferDimensions)
	}
	return nil
}

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool {
	return b.Width == 0 || b.Height == 0
}

// Offset returns the index of the R byte of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Pix: pix, Width: b.Width, Height: b.Height}
}

// CopyFrom overwrites b's pixels with src's. Sizes must match.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if src.Width != b.Width || src.Height != b.Height {
		return fmt.Errorf("copy %dx%d into %dx%d: %w",
			src.Width, src.Height, b.Width, b.Height, errs.ErrInvalidBufferDimensions)
	}
	copy(b.Pix, src.Pix)
	return nil
}

// FromImage decodes any image.Image into a straight-alpha buffer.
func FromImage(img image.Image) *Buffer {
	n := imaging.Clone(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()
	if n.Stride == w*4 {
		return &Buffer{Pix: n.Pix, Width: w, Height: h}
	}
	out := New(w, h)
	for y := 0; y < h; y++ {
		copy(out.Pix[y*w*4:(y+1)*w*4], n.Pix[y*n.Stride:])
	}
	return out
}

// NRGBA returns an image view sharing the buffer's pixels.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// RGBA returns an *image.RGBA view sharing the buffer's pixels. The bytes
// are reinterpreted, not converted: it is meant for byte-level kernels that
// treat every channel identically.
func (b *Buffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Fill sets every pixel to the given color.
func (b *Buffer) Fill(r, g, bl, a uint8) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = r
		b.Pix[i+1] = g
		b.Pix[i+2] = bl
		b.Pix[i+3] = a
	}
}

// Resize returns a copy scaled to w x h with the given filter. A buffer
// already at that size is cloned.
func (b *Buffer) Resize(w, h int, filter imaging.ResampleFilter) *Buffer {
	if w == b.Width && h == b.Height {
		return b.Clone()
	}
	if b.Empty() || w <= 0 || h <= 0 {
		return New(w, h)
	}
	return FromImage(imaging.Resize(b.NRGBA(), w, h, filter))
}

// FitWithin returns the dimensions of a w x h image scaled so its longest
// side is at most maxSide, preserving aspect ratio. Images already within
// bounds are returned unchanged.
func FitWithin(w, h, maxSide int) (int, int) {
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return w, h
	}
	if w > h {
		nh := int(float64(h)*float64(maxSide)/float64(w) + 0.5)
		if nh < 1 {
			nh = 1
		}
		return maxSide, nh
	}
	nw := int(float64(w)*float64(maxSide)/float64(h) + 0.5)
	if nw < 1 {
		nw = 1
	}
	return nw, maxSide
}
