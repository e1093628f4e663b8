//go:build ignore

// gen_fixtures creates small test images and a preset file for the batch
// smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

const presetsYAML = `presets:
  - name: smoke-warm
    category: custom
    settings:
      temperature: 35.0
      vibrance: 20.0
    effects:
      - kind: sharpen
        intensity: 30.0
    format: png
    maxSize: 160
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "photos"), 0o755)

	// Landscape (JPEG, 320x180): sky over ground.
	writeJPEG(filepath.Join(dir, "photos", "landscape.jpg"), landscape(320, 180))

	// Color bars (PNG, 240x120) with five distinct clusters.
	writeImage(filepath.Join(dir, "bars.png"), bars(240, 120, []color.NRGBA{
		{230, 57, 70, 255}, {241, 250, 238, 255}, {168, 218, 220, 255},
		{69, 123, 157, 255}, {29, 53, 87, 255},
	}))

	// Radial spot (PNG, 128x128) for vignette and halftone checks.
	writeImage(filepath.Join(dir, "photos", "spot.png"), spot(128, 128))

	// Translucent sticker to exercise the PNG fallback.
	writeImage(filepath.Join(dir, "sticker.png"), sticker(96, 96))

	if err := os.WriteFile(filepath.Join(dir, "presets.yaml"), []byte(presetsYAML), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 4 images and presets.yaml in %s\n", dir)
}

func landscape(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	horizon := h * 3 / 5
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var c color.NRGBA
			if y < horizon {
				t := float64(y) / float64(horizon)
				c = color.NRGBA{R: uint8(90 + 120*t), G: uint8(150 + 60*t), B: 235, A: 255}
			} else {
				t := float64(y-horizon) / float64(h-horizon)
				c = color.NRGBA{R: uint8(60 + 40*t), G: uint8(120 - 50*t), B: 40, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func bars(w, h int, colors []color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, colors[x*len(colors)/w])
		}
	}
	return img
}

func spot(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	r := math.Hypot(cx, cy)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / r
			v := uint8(255 * (1 - d))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v / 2, B: 255 - v, A: 255})
		}
	}
	return img
}

func sticker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
