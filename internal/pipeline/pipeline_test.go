package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/phoenyx/internal/encoder"
	"github.com/AnyUserName/phoenyx/internal/imageio"
	"github.com/AnyUserName/phoenyx/internal/manifest"
	"github.com/AnyUserName/phoenyx/internal/palette"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/AnyUserName/phoenyx/internal/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, w, h int, alpha uint8) {
	t.Helper()
	buf := pixbuf.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.Offset(x, y)
			buf.Pix[i] = uint8(x * 255 / max(1, w-1))
			buf.Pix[i+1] = uint8(y * 255 / max(1, h-1))
			buf.Pix[i+2] = 90
			buf.Pix[i+3] = alpha
		}
	}
	require.NoError(t, imageio.Save(encoder.NewRegistry(), buf, path, 90))
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "hero.png"), 40, 20, 255)
	writeImage(t, filepath.Join(dir, "icons", "star.png"), 12, 12, 128)
	writeImage(t, filepath.Join(dir, "photos", "beach.jpg"), 30, 30, 255)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".cache"), 0o755))
	writeImage(t, filepath.Join(dir, ".cache", "hidden.png"), 4, 4, 255)
	return dir
}

func TestScanImages(t *testing.T) {
	dir := fixtureDir(t)
	sources, err := ScanImages(dir)
	require.NoError(t, err)

	var keys []string
	for _, s := range sources {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"hero", "icons/star", "photos/beach"}, keys)
	assert.Equal(t, "jpeg", sources[2].Format)
	assert.Equal(t, "photos/beach.jpg", sources[2].RelPath)
	assert.Positive(t, sources[0].Size)

	sources, err = ScanImages(dir, filepath.Join(dir, "icons"))
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}

func TestRun(t *testing.T) {
	in := fixtureDir(t)
	out := filepath.Join(t.TempDir(), "out")

	p := New(Config{
		InputDir:  in,
		OutputDir: out,
		Preset:    preset.Get("noir"),
		Workers:   2,
		Palette:   palette.Fast,
		Thumbnail: 8,
		Seed:      7,
	})
	m, path, err := p.WriteManifest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, manifest.Filename), path)

	assert.Equal(t, "noir", m.Preset)
	assert.Equal(t, 3, m.Stats.TotalAssets)
	assert.Equal(t, 6, m.Stats.TotalVariants)
	assert.Zero(t, m.Stats.Failed)
	require.NotNil(t, m.BuildInfo)
	assert.Equal(t, "jpeg", m.BuildInfo.Format)
	assert.Contains(t, m.BuildInfo.Filter, "grayscale(100%)")

	hero := m.Assets["hero"]
	assert.Equal(t, 40, hero.Original.Width)
	assert.Equal(t, "png", hero.Original.Format)
	assert.Len(t, hero.Original.Hash, 16)
	assert.InDelta(t, 2.0, hero.AspectRatio, 1e-9)
	assert.NotEmpty(t, hero.Palette)
	assert.Contains(t, []string{"#000000", "#FFFFFF"}, hero.TextColor)
	require.Len(t, hero.Variants, 2)
	assert.Equal(t, manifest.RoleFull, hero.Variants[0].Role)
	assert.Equal(t, "jpeg", hero.Variants[0].Format)
	assert.Equal(t, manifest.RoleThumb, hero.Variants[1].Role)
	assert.Equal(t, 8, hero.Variants[1].Width)
	assert.Equal(t, 4, hero.Variants[1].Height)

	// Translucent sources fall back to an alpha-capable format.
	star := m.Assets["icons/star"]
	assert.True(t, star.Original.HasAlpha)
	assert.Equal(t, "png", star.Variants[0].Format)
	assert.Regexp(t, `^icons/star\.[0-9a-f]{8}\.png$`, star.Variants[0].Path)

	loaded, err := manifest.ReadJSON(out)
	require.NoError(t, err)
	assert.Empty(t, manifest.Validate(loaded, out))
}

func TestRunIsReproducibleWithSeed(t *testing.T) {
	in := fixtureDir(t)
	run := func() *manifest.Manifest {
		p := New(Config{InputDir: in, OutputDir: t.TempDir(), Preset: preset.Get("retro-tape"), Seed: 42})
		m, err := p.Run(context.Background())
		require.NoError(t, err)
		return m
	}
	a, b := run(), run()
	for key, asset := range a.Assets {
		assert.Equal(t, asset.Variants[0].Hash, b.Assets[key].Variants[0].Hash, key)
		assert.Equal(t, asset.Palette, b.Assets[key].Palette, key)
	}
}

func TestRunPartialFailure(t *testing.T) {
	in := fixtureDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("not a png"), 0o644))

	p := New(Config{InputDir: in, OutputDir: t.TempDir(), Preset: preset.Get("none"), Seed: 1})
	m, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, m.Stats.Failed)
	assert.Len(t, m.Assets, 3)
	assert.NotContains(t, m.Assets, "broken")
}

func TestRunErrors(t *testing.T) {
	none := preset.Get("none")
	empty := t.TempDir()
	_, err := New(Config{InputDir: empty, OutputDir: t.TempDir(), Preset: none}).Run(context.Background())
	assert.ErrorContains(t, err, "no images found")

	bad := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bad, "a.png"), []byte("x"), 0o644))
	_, err = New(Config{InputDir: bad, OutputDir: t.TempDir(), Preset: none}).Run(context.Background())
	assert.ErrorContains(t, err, "all 1 images failed")

	pr := none
	pr.Format = "gif"
	_, err = New(Config{InputDir: fixtureDir(t), OutputDir: t.TempDir(), Preset: pr}).Run(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(Config{InputDir: fixtureDir(t), OutputDir: t.TempDir(), Preset: none, Workers: 1}).Run(ctx)
	assert.Error(t, err)
}
