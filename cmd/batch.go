package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/phoenyx/internal/logging"
	"github.com/AnyUserName/phoenyx/internal/manifest"
	"github.com/AnyUserName/phoenyx/internal/palette"
	"github.com/AnyUserName/phoenyx/internal/pipeline"
	"github.com/AnyUserName/phoenyx/internal/preset"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var (
	batchOutDir      string
	batchPreset      string
	batchPresetsFile string
	batchWorkers     int
	batchFormat      string
	batchQuality     int
	batchMaxSize     int
	batchColors      int
	batchPalette     string
	batchThumb       int
	batchSeed        uint64
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Render every image in a directory with a preset and write a manifest",
	Long: `Scans the input directory for images (png, jpg, jpeg, webp, gif, bmp,
tiff), renders each one with the chosen preset, extracts its palette and
writes the result plus a thumbnail to the output directory.

Output filenames are content-addressed: <key>.<hash>.ext and
<key>.thumb.<hash>.ext. A phoenyx.manifest.json describes every asset.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./phoenyx_out", "output directory")
	batchCmd.Flags().StringVarP(&batchPreset, "preset", "p", preset.Fallback, "preset name")
	batchCmd.Flags().StringVar(&batchPresetsFile, "presets", "", "extra presets file (.yaml, .toml, .json)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "output format (overrides preset)")
	batchCmd.Flags().IntVar(&batchQuality, "quality", 0, "encoder quality 1-100 (0 = preset default)")
	batchCmd.Flags().IntVar(&batchMaxSize, "max-size", 0, "longest output side (0 = preset default)")
	batchCmd.Flags().IntVarP(&batchColors, "colors", "n", 0, "palette size (0 = preset default)")
	batchCmd.Flags().StringVar(&batchPalette, "palette-quality", "balanced", "palette quality: fast, balanced, best")
	batchCmd.Flags().IntVar(&batchThumb, "thumb", 256, "thumbnail size (0 disables)")
	batchCmd.Flags().Uint64Var(&batchSeed, "seed", 0, "random seed for noise effects and palettes (0 = random)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := absPath(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := absPath(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	catalog, err := preset.LoadCatalog(batchPresetsFile)
	if err != nil {
		return err
	}
	p := catalog.Lookup(batchPreset)
	if _, ok := catalog.Get(batchPreset); !ok {
		logging.Logger().Warn("unknown preset, rendering without edits", "preset", batchPreset)
	}
	if batchFormat != "" {
		p.Format = batchFormat
	}
	if batchQuality > 0 {
		p.Quality = batchQuality
	}
	if batchMaxSize > 0 {
		p.MaxSize = batchMaxSize
	}
	if batchColors > 0 {
		p.Colors = batchColors
	}
	q, err := palette.ParseQuality(batchPalette)
	if err != nil {
		return err
	}

	pl := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Preset:    p,
		Workers:   batchWorkers,
		Palette:   q,
		Thumbnail: batchThumb,
		Seed:      batchSeed,
	})

	m, path, err := pl.WriteManifest(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	printBatchReport(cmd.OutOrStdout(), m, path, time.Since(start))
	return nil
}

func absPath(p string) (string, error) {
	p, err := homedir.Expand(p)
	if err != nil {
		return "", err
	}
	return filepath.Abs(p)
}

func printBatchReport(w io.Writer, m *manifest.Manifest, path string, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  phoenyx batch complete (preset %s)\n", m.Preset)
	fmt.Fprintln(w)

	stats := m.Stats
	fmt.Fprintf(w, "  Assets:      %d\n", stats.TotalAssets)
	fmt.Fprintf(w, "  Variants:    %d\n", stats.TotalVariants)
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Fprintf(w, "  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	if stats.Failed > 0 {
		fmt.Fprintf(w, "  Failed:      %d images\n", stats.Failed)
	}
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:     %d\n", m.BuildInfo.Workers)
		fmt.Fprintf(w, "  Output:      %s q%d\n", m.BuildInfo.Format, m.BuildInfo.Quality)
	}
	fmt.Fprintln(w)

	// Top 10 heaviest sources with their dominant color.
	if len(m.Assets) > 0 {
		type assetSize struct {
			key       string
			inputSize int64
			dominant  string
		}
		var items []assetSize
		for key, a := range m.Assets {
			dom := ""
			if len(a.Palette) > 0 {
				dom = a.Palette[0]
			}
			items = append(items, assetSize{key, a.Original.Size, dom})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].inputSize != items[j].inputSize {
				return items[i].inputSize > items[j].inputSize
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		out := terminal(w)
		fmt.Fprintf(w, "  Top %d heaviest:\n", n)
		for _, it := range items[:n] {
			fmt.Fprintf(w, "    %-40s %8s  %s %s\n",
				truncKey(it.key, 40),
				formatBytes(it.inputSize),
				out.String("  ").Background(out.Color(it.dominant)),
				it.dominant,
			)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  Manifest:    %s\n", path)
	fmt.Fprintln(w)
}
