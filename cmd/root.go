package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/logging"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
	debug   bool
	quiet   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "phoenyx",
	Short: "Perceptual color toolkit and batch photo editor",
	Long: `phoenyx extracts palettes, builds gradients and edits photos with
perceptually uniform color math (Oklab, Oklch, CIE Lab).

Single-shot commands work on one image or a list of colors; batch renders
a whole directory with a named preset and writes a manifest.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: logging.LevelFromFlags(debug, verbose, quiet),
		})
		logging.SetLogger(slog.New(h))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only report errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color swatches")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"phoenyx %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// terminal returns a termenv output for w honoring --no-color.
func terminal(w io.Writer) *termenv.Output {
	if noColor {
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return termenv.NewOutput(w)
}

// printSwatches writes one line per color: a colored block followed by the
// color in the requested notation.
func printSwatches(w io.Writer, colors []string, format string) {
	out := terminal(w)
	for _, c := range colors {
		label := c
		if rgb, err := colorspace.ParseHex(c); err == nil {
			label = colorspace.Format(rgb, format)
		}
		block := out.String("      ").Background(out.Color(c))
		fmt.Fprintf(w, "  %s  %s\n", block, label)
	}
}

// newRand returns a seeded generator, or nil for seed 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
