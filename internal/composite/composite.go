// Package composite flattens a base image and a stack of layers into a
// single buffer, drawing each layer with an opacity and a blend mode the way
// a 2D canvas does with globalAlpha and globalCompositeOperation.
package composite

import (
	"fmt"
	"image"

	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/chewxy/math32"
	"github.com/disintegration/imaging"
)

// DefaultThumbnailSize is the longest side of a layer thumbnail.
const DefaultThumbnailSize = 64

// Layer is one entry of the stack. Index 0 is the bottom layer.
type Layer struct {
	Name    string
	Source  *pixbuf.Buffer
	Opacity float64 // 0..1
	Mode    BlendMode
	Visible bool
}

// drawable reports whether l takes part in a pass at all.
func (l Layer) drawable() bool {
	return l.Visible && l.Source != nil
}

// Composite draws base scaled to w x h, then every visible layer with a
// source, bottom to top, each scaled to w x h. A nil base starts from a
// transparent canvas.
func Composite(base *pixbuf.Buffer, layers []Layer, w, h int) (*pixbuf.Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("composite %dx%d: %w", w, h, errs.ErrInvalidBufferDimensions)
	}
	for i, l := range layers {
		if !l.drawable() {
			continue
		}
		if err := l.Source.Validate(); err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, l.Name, err)
		}
	}

	var dst *pixbuf.Buffer
	if base == nil {
		dst = pixbuf.New(w, h)
	} else {
		if err := base.Validate(); err != nil {
			return nil, fmt.Errorf("base: %w", err)
		}
		dst = scaleTo(base, w, h)
	}

	for _, l := range layers {
		if !l.drawable() {
			continue
		}
		drawLayer(dst, scaleTo(l.Source, w, h), opacity(l.Opacity), l.Mode)
	}
	return dst, nil
}

// Flatten is Composite returning an image ready for encoding.
func Flatten(base *pixbuf.Buffer, layers []Layer, w, h int) (*image.NRGBA, error) {
	buf, err := Composite(base, layers, w, h)
	if err != nil {
		return nil, err
	}
	return buf.NRGBA(), nil
}

// Thumbnail scales buf down so that neither side exceeds maxSize. Smaller
// images are returned as a copy at their own size.
func Thumbnail(buf *pixbuf.Buffer, maxSize int) (*pixbuf.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("thumbnail: %w", err)
	}
	if maxSize <= 0 {
		maxSize = DefaultThumbnailSize
	}
	if buf.Empty() {
		return buf.Clone(), nil
	}
	w, h := float64(buf.Width), float64(buf.Height)
	scale := min(float64(maxSize)/w, float64(maxSize)/h, 1)
	tw := max(1, int(math32.Round(float32(w*scale))))
	th := max(1, int(math32.Round(float32(h*scale))))
	return buf.Resize(tw, th, imaging.Lanczos), nil
}

func scaleTo(src *pixbuf.Buffer, w, h int) *pixbuf.Buffer {
	return src.Resize(w, h, imaging.Linear)
}

func opacity(v float64) float32 {
	switch {
	case v != v, v <= 0:
		return 0
	case v >= 1:
		return 1
	}
	return float32(v)
}

// drawLayer composites src over dst in place. The blended color replaces
// the source color where the backdrop is opaque, then source-over applies:
//
//	cs' = (1-ab)*cs + ab*B(cb, cs)
//	co  = cs'*as + cb*ab*(1-as)
//	ao  = as + ab*(1-as)
func drawLayer(dst, src *pixbuf.Buffer, alpha float32, mode BlendMode) {
	if alpha == 0 {
		return
	}
	d, s := dst.Pix, src.Pix
	for i := 0; i < len(d); i += 4 {
		as := float32(s[i+3]) / 255 * alpha
		if as == 0 {
			continue
		}
		if as == 1 && mode == Normal {
			copy(d[i:i+4], s[i:i+4])
			continue
		}
		ab := float32(d[i+3]) / 255
		sr, sg, sb := float32(s[i])/255, float32(s[i+1])/255, float32(s[i+2])/255
		br, bg, bb := float32(d[i])/255, float32(d[i+1])/255, float32(d[i+2])/255

		if mode != Normal && ab > 0 {
			mr, mg, mb := mode.mix(br, bg, bb, sr, sg, sb)
			sr = (1-ab)*sr + ab*mr
			sg = (1-ab)*sg + ab*mg
			sb = (1-ab)*sb + ab*mb
		}

		ao := as + ab*(1-as)
		k := ab * (1 - as)
		d[i] = unit((sr*as + br*k) / ao)
		d[i+1] = unit((sg*as + bg*k) / ao)
		d[i+2] = unit((sb*as + bb*k) / ao)
		d[i+3] = unit(ao)
	}
}

// unit converts [0,1] to a rounded byte.
func unit(v float32) uint8 {
	if v <= 0 || math32.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math32.Round(v * 255))
}
