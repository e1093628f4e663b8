package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/AnyUserName/phoenyx/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a batch output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	m, err := manifest.ReadJSON(args[0])
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), m)
	return nil
}

func printStats(w io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(w, "  Preset:           %s\n", m.Preset)
	if b := m.BuildInfo; b != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", b.Workers)
		fmt.Fprintf(w, "  Output:           %s q%d\n", b.Format, b.Quality)
		if b.Filter != "" && b.Filter != "none" {
			fmt.Fprintf(w, "  Filter:           %s\n", b.Filter)
		}
		for _, e := range b.Effects {
			fmt.Fprintf(w, "  Effect:           %s\n", e)
		}
		if b.Seed != 0 {
			fmt.Fprintf(w, "  Seed:             %d\n", b.Seed)
		}
	}
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Total assets:     %d\n", s.TotalAssets)
	fmt.Fprintf(w, "  Total variants:   %d\n", s.TotalVariants)
	fmt.Fprintf(w, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Fprintf(w, "  Size ratio:       %.1f%% of original\n", ratio)
	}
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed sources:   %d\n", s.Failed)
	}
	fmt.Fprintln(w)

	// Per-format breakdown.
	type formatStat struct {
		count int
		bytes int64
	}
	formatStats := map[string]formatStat{}
	roleStats := map[string]int{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			fs := formatStats[v.Format]
			fs.count++
			fs.bytes += v.Size
			formatStats[v.Format] = fs
			roleStats[v.Role]++
		}
	}
	var formats []string
	for f := range formatStats {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	fmt.Fprintln(w, "  Format breakdown:")
	for _, f := range formats {
		fs := formatStats[f]
		fmt.Fprintf(w, "    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Role breakdown:")
	for _, r := range []string{manifest.RoleFull, manifest.RoleThumb} {
		if n, ok := roleStats[r]; ok {
			fmt.Fprintf(w, "    %-6s  %4d variants\n", r, n)
		}
	}
	fmt.Fprintln(w)

	// Most frequent dominant colors across the batch.
	dominant := map[string]int{}
	for _, a := range m.Assets {
		if len(a.Palette) > 0 {
			dominant[a.Palette[0]]++
		}
	}
	var colors []string
	for c := range dominant {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		if dominant[colors[i]] != dominant[colors[j]] {
			return dominant[colors[i]] > dominant[colors[j]]
		}
		return colors[i] < colors[j]
	})
	if len(colors) > 8 {
		colors = colors[:8]
	}
	fmt.Fprintf(w, "  Palette coverage: %d / %d assets\n", len(dominant), len(m.Assets))
	printSwatches(w, colors, "hex")

	// Warnings.
	var warnings []string
	for _, key := range m.Keys() {
		a := m.Assets[key]
		if len(a.Variants) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has no variants", key))
		}
		if len(a.Palette) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q missing palette", key))
		}
	}
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", msg)
		}
	}
	fmt.Fprintln(w)
}
