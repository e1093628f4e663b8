// Package imageio loads images from disk into pixel buffers and writes
// rendered buffers back out through the encoder registry.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/encoder"
	"github.com/AnyUserName/phoenyx/internal/logging"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/disintegration/imaging"
	"github.com/mitchellh/go-homedir"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes a decoded source.
type Info struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	HasAlpha bool   `json:"has_alpha"`
}

// Extensions lists the file extensions Open understands.
var Extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// IsImage reports whether path has a decodable extension.
func IsImage(path string) bool {
	return Extensions[strings.ToLower(filepath.Ext(path))]
}

// Decode reads an image from r, applying any EXIF orientation.
func Decode(r io.Reader) (*pixbuf.Buffer, Info, error) {
	// DecodeConfig needs its own copy of the header.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Info{}, fmt.Errorf("read image: %w", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode config: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode %s: %w", format, err)
	}
	buf := pixbuf.FromImage(img)
	return buf, Info{
		Width:    buf.Width,
		Height:   buf.Height,
		Format:   format,
		HasAlpha: HasAlpha(buf),
	}, nil
}

// Open decodes the image at path. A leading "~" is expanded.
func Open(path string) (*pixbuf.Buffer, Info, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("expand %s: %w", path, err)
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, Info{}, err
	}
	defer f.Close()

	buf, info, err := Decode(f)
	if err != nil {
		return nil, Info{}, fmt.Errorf("%s: %w", path, err)
	}
	logging.Logger().Debug("decoded", "path", path, "format", info.Format,
		"width", info.Width, "height", info.Height, "alpha", info.HasAlpha)
	return buf, info, nil
}

// HasAlpha reports whether any pixel is not fully opaque.
func HasAlpha(buf *pixbuf.Buffer) bool {
	for i := 3; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] != 255 {
			return true
		}
	}
	return false
}

// Encode encodes buf with the encoder registered for format.
func Encode(reg *encoder.Registry, buf *pixbuf.Buffer, format string, quality int) ([]byte, encoder.Encoder, error) {
	if err := buf.Validate(); err != nil {
		return nil, nil, err
	}
	enc, err := reg.Get(format)
	if err != nil {
		return nil, nil, err
	}
	data, err := enc.Encode(buf.NRGBA(), quality)
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	return data, enc, nil
}

// Save encodes buf in the format implied by the extension of path and
// writes it, creating parent directories as needed.
func Save(reg *encoder.Registry, buf *pixbuf.Buffer, path string, quality int) error {
	p, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand %s: %w", path, err)
	}
	enc, err := reg.ForPath(p)
	if err != nil {
		return err
	}
	data, _, err := Encode(reg, buf, enc.Format(), quality)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return err
	}
	logging.Logger().Debug("saved", "path", path, "format", enc.Format(), "bytes", len(data))
	return nil
}
