// Package encoder turns rendered images into file bytes. Every encoder is
// pure Go; the registry resolves format names and file extensions.
package encoder

import (
	"fmt"
	"image"
	"path/filepath"
	"slices"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/errs"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the canonical format name (e.g. "jpeg", "png").
	Format() string

	// Encode converts the image to bytes. Quality (1-100) is ignored by
	// lossless formats.
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string

	// Alpha reports whether the format keeps transparency.
	Alpha() bool
}

// Registry maps format names to encoders.
type Registry struct {
	encoders map[string]Encoder
	aliases  map[string]string
}

// NewRegistry returns a registry holding every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
		aliases:  map[string]string{"jpg": "jpeg", "tif": "tiff"},
	}
	for _, enc := range []Encoder{
		&JPEGEncoder{},
		&PNGEncoder{},
		&BMPEncoder{},
		&TIFFEncoder{},
	} {
		r.Register(enc)
	}
	return r
}

// Register adds or replaces an encoder under its format name.
func (r *Registry) Register(enc Encoder) {
	r.encoders[enc.Format()] = enc
}

func (r *Registry) canonical(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if a, ok := r.aliases[f]; ok {
		return a
	}
	return f
}

// Get returns the encoder for format (or one of its aliases).
func (r *Registry) Get(format string) (Encoder, error) {
	if enc, ok := r.encoders[r.canonical(format)]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("format %q: %w", format, errs.ErrUnknownKind)
}

// ForPath selects an encoder from the extension of path.
func (r *Registry) ForPath(path string) (Encoder, error) {
	return r.Get(filepath.Ext(path))
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.encoders))
	for f := range r.encoders {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Resolve returns the encoder for format, switching to PNG when the image
// has transparency the format cannot keep.
func (r *Registry) Resolve(format string, hasAlpha bool) (Encoder, error) {
	enc, err := r.Get(format)
	if err != nil {
		return nil, err
	}
	if hasAlpha && !enc.Alpha() {
		if png, ok := r.encoders["png"]; ok {
			return png, nil
		}
	}
	return enc, nil
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.Formats(), ", "))
}
