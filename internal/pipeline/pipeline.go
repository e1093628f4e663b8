// Package pipeline renders every image of a directory with one preset and
// records the outputs in a manifest.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/AnyUserName/phoenyx/internal/encoder"
	"github.com/AnyUserName/phoenyx/internal/logging"
	"github.com/AnyUserName/phoenyx/internal/manifest"
	"github.com/AnyUserName/phoenyx/internal/palette"
	"github.com/AnyUserName/phoenyx/internal/preset"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Preset    preset.Preset
	Workers   int
	Palette   palette.Quality
	Thumbnail int    // longest side of the thumbnail variant; 0 disables it
	Seed      uint64 // 0 draws fresh randomness for noise effects and palettes
}

// Pipeline orchestrates batch processing.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline. Missing preset output parameters
// take their defaults.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	cfg.Preset = cfg.Preset.WithDefaults()
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

// Run processes every image under the input directory and returns the
// manifest. Individual failures are logged and counted; Run fails only
// when nothing could be processed or ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	log := logging.Logger().With("preset", p.cfg.Preset.Name)
	log.Debug(p.registry.String())

	if err := p.cfg.Preset.Validate(); err != nil {
		return nil, err
	}
	if _, err := p.registry.Get(p.cfg.Preset.Format); err != nil {
		return nil, err
	}

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	log.Info("found images", "count", len(sources), "workers", p.cfg.Workers)

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	j := &job{cfg: p.cfg, state: p.cfg.Preset.State(), registry: p.registry}

	// Step 2: Process images in parallel.
	start := time.Now()
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			select {
			case sem <- struct{}{}: // acquire
			case <-ctx.Done():
				results[idx] = processResult{key: s.Key, err: ctx.Err()}
				return
			}
			defer func() { <-sem }() // release

			log.Debug("processing", "key", s.Key)
			results[idx] = j.processImage(s)
			if results[idx].err == nil {
				log.Debug("done", "key", s.Key, "variants", len(results[idx].asset.Variants))
			}
		}(i, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Preset.Name)

	var failed int
	for _, r := range results {
		if r.err == nil {
			if _, dup := m.Assets[r.key]; dup {
				r.err = fmt.Errorf("duplicate asset key %q", r.key)
			}
		}
		if r.err != nil {
			log.Warn("image failed", "key", r.key, "err", r.err)
			failed++
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Partial failures don't fail the entire batch.
	if failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to process", failed)
	}
	if failed > 0 {
		log.Warn("some images had errors", "failed", failed, "total", len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers: p.cfg.Workers,
		Format:  p.cfg.Preset.Format,
		Quality: p.cfg.Preset.Quality,
		Filter:  j.state.FilterString(),
		Seed:    p.cfg.Seed,
	}
	for _, d := range j.state.Effects {
		m.BuildInfo.Effects = append(m.BuildInfo.Effects, fmt.Sprintf("%s:%g", d.Kind, d.Intensity))
	}
	m.Stats.Failed = failed
	m.ComputeStats()

	log.Info("batch complete", "assets", len(m.Assets), "failed", failed,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return m, nil
}

// WriteManifest runs the batch and writes the manifest into the output
// directory, returning its path.
func (p *Pipeline) WriteManifest(ctx context.Context) (*manifest.Manifest, string, error) {
	m, err := p.Run(ctx)
	if err != nil {
		return nil, "", err
	}
	path := filepath.Join(p.cfg.OutputDir, manifest.Filename)
	if err := manifest.WriteJSON(m, path); err != nil {
		return nil, "", fmt.Errorf("write manifest: %w", err)
	}
	return m, path, nil
}
