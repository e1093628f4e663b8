package pipeline

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/composite"
	"github.com/AnyUserName/phoenyx/internal/encoder"
	"github.com/AnyUserName/phoenyx/internal/hasher"
	"github.com/AnyUserName/phoenyx/internal/imageio"
	"github.com/AnyUserName/phoenyx/internal/manifest"
	"github.com/AnyUserName/phoenyx/internal/palette"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/AnyUserName/phoenyx/internal/render"
	"github.com/cespare/xxhash/v2"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// job is the per-run state shared by every worker.
type job struct {
	cfg      Config
	state    render.State
	registry *encoder.Registry
}

// rng returns the generator for one source. With a fixed seed every key
// gets its own stream, so results do not depend on scheduling.
func (j *job) rng(key string) *rand.Rand {
	if j.cfg.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(j.cfg.Seed, xxhash.Sum64String(key)))
}

// processImage handles a single source image: decode, render, extract a
// palette, encode the full render and its thumbnail.
func (j *job) processImage(src Source) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	img, info, err := imageio.Decode(bytes.NewReader(data))
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	rng := j.rng(src.Key)
	out, err := render.Render(img, j.state, rng)
	if err != nil {
		result.err = fmt.Errorf("render %s: %w", src.RelPath, err)
		return result
	}

	colors, err := palette.Extract(out, j.cfg.Preset.Colors, j.cfg.Palette, rng)
	if err != nil {
		result.err = fmt.Errorf("palette %s: %w", src.RelPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:    info.Width,
			Height:   info.Height,
			Format:   info.Format,
			Size:     int64(len(data)),
			HasAlpha: info.HasAlpha,
			Hash:     hasher.ContentHash(data, 16),
		},
		AspectRatio: float64(out.Width) / float64(out.Height),
		Palette:     colors,
	}
	if c, err := colorspace.ParseHex(colors[0]); err == nil {
		result.asset.TextColor = palette.TextColor(c)
	}

	enc, err := j.registry.Resolve(j.cfg.Preset.Format, imageio.HasAlpha(out))
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	// Ensure output subdirectory exists.
	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(j.cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = err
			return result
		}
	}

	v, err := j.writeVariant(src.Key, manifest.RoleFull, out, enc)
	if err != nil {
		result.err = err
		return result
	}
	result.asset.Variants = append(result.asset.Variants, v)

	if j.cfg.Thumbnail > 0 {
		thumb, err := composite.Thumbnail(out, j.cfg.Thumbnail)
		if err != nil {
			result.err = fmt.Errorf("thumbnail %s: %w", src.RelPath, err)
			return result
		}
		v, err := j.writeVariant(src.Key, manifest.RoleThumb, thumb, enc)
		if err != nil {
			result.err = err
			return result
		}
		result.asset.Variants = append(result.asset.Variants, v)
	}

	return result
}

// writeVariant encodes buf and stores it as key[.thumb].hash8.ext.
func (j *job) writeVariant(key, role string, buf *pixbuf.Buffer, enc encoder.Encoder) (manifest.Variant, error) {
	data, err := enc.Encode(buf.NRGBA(), j.cfg.Preset.Quality)
	if err != nil {
		return manifest.Variant{}, fmt.Errorf("encode %s as %s: %w", key, enc.Format(), err)
	}

	contentHash := hasher.ContentHash(data, 16)
	name := filepath.Base(key)
	if role != manifest.RoleFull {
		name += "." + role
	}
	fileName := fmt.Sprintf("%s.%s.%s", name, contentHash[:8], enc.Extension())
	relPath := filepath.ToSlash(filepath.Join(filepath.Dir(key), fileName))

	if err := os.WriteFile(filepath.Join(j.cfg.OutputDir, relPath), data, 0o644); err != nil {
		return manifest.Variant{}, fmt.Errorf("write %s: %w", relPath, err)
	}

	return manifest.Variant{
		Role:   role,
		Format: enc.Format(),
		Width:  buf.Width,
		Height: buf.Height,
		Size:   int64(len(data)),
		Hash:   contentHash,
		Path:   relPath,
	}, nil
}
