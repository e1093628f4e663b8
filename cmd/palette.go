package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/imageio"
	"github.com/AnyUserName/phoenyx/internal/palette"
	"github.com/spf13/cobra"
)

var (
	paletteCount   int
	paletteQuality string
	paletteOrder   string
	paletteFormat  string
	paletteExport  string
	paletteTheme   bool
	paletteSeed    uint64
	paletteSim     string
)

var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Extract the dominant colors of an image",
	Long: `Clusters the image's opaque pixels in Oklab and prints one swatch per
cluster. --order sequences the result (greedy, oklab, hue, morton);
--export renders it for CSS, Tailwind or SCSS; --theme derives UI roles.`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

var sortBy string

var sortCmd = &cobra.Command{
	Use:   "sort <color>...",
	Short: "Order colors into a smooth sequence",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colors, err := parseColors(args)
		if err != nil {
			return err
		}
		if colors, err = sequence(colors, sortBy); err != nil {
			return err
		}
		printSwatches(cmd.OutOrStdout(), colors, paletteFormat)
		return nil
	},
}

var harmonyType string

var harmonyCmd = &cobra.Command{
	Use:   "harmony <color>",
	Short: "Build a color scheme around a base color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := palette.ParseHarmony(harmonyType)
		if err != nil {
			return err
		}
		base, err := parseColors(args)
		if err != nil {
			return err
		}
		colors, err := palette.Harmonize(base[0], h)
		if err != nil {
			return err
		}
		printSwatches(cmd.OutOrStdout(), colors, paletteFormat)
		return nil
	},
}

var moodName string

var moodCmd = &cobra.Command{
	Use:   "mood <seed_color>",
	Short: "Generate a palette in a mood around a seed color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := palette.ParseMood(moodName)
		if err != nil {
			return err
		}
		seed, err := parseColors(args)
		if err != nil {
			return err
		}
		colors, err := palette.Generate(seed[0], m, paletteCount, newRand(paletteSeed))
		if err != nil {
			return err
		}
		printSwatches(cmd.OutOrStdout(), colors, paletteFormat)
		return nil
	},
}

var contrastCmd = &cobra.Command{
	Use:   "contrast <foreground> <background>",
	Short: "Grade a color pair against the WCAG contrast thresholds",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		colors, err := parseColors(args)
		if err != nil {
			return err
		}
		c, err := palette.CheckContrast(colors[0], colors[1])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		out := terminal(w)
		sample := out.String(" Aa ").Foreground(out.Color(colors[0])).Background(out.Color(colors[1]))
		fmt.Fprintf(w, "  %s  ratio %.2f:1\n", sample, c.Ratio)
		for _, row := range []struct {
			name string
			ok   bool
		}{{"AA", c.AA}, {"AA large", c.AALarge}, {"AAA", c.AAA}, {"AAA large", c.AAALarge}} {
			mark := "✗"
			if row.ok {
				mark = "✓"
			}
			fmt.Fprintf(w, "  %s %s\n", mark, row.name)
		}
		return nil
	},
}

func init() {
	paletteCmd.Flags().IntVarP(&paletteCount, "colors", "n", 5, "number of colors")
	paletteCmd.Flags().StringVar(&paletteQuality, "quality", "balanced", "fast, balanced or best")
	paletteCmd.Flags().StringVar(&paletteOrder, "order", "greedy", "none, greedy, oklab, hue or morton")
	paletteCmd.Flags().StringVar(&paletteExport, "export", "", "tailwind, css, scss or json")
	paletteCmd.Flags().BoolVar(&paletteTheme, "theme", false, "print theme roles")
	paletteCmd.Flags().StringVar(&paletteSim, "simulate", "", "protanopia, deuteranopia or tritanopia")
	paletteCmd.Flags().Uint64Var(&paletteSeed, "seed", 0, "k-means seed (0 = random)")

	sortCmd.Flags().StringVar(&sortBy, "by", "greedy", "greedy, oklab, hue or morton")
	harmonyCmd.Flags().StringVarP(&harmonyType, "type", "t", "complementary",
		"complementary, analogous, triadic, split-complementary or monochromatic")
	moodCmd.Flags().StringVarP(&moodName, "mood", "m", "pastel", "pastel, neon, earthy, muted or jewel")
	moodCmd.Flags().IntVarP(&paletteCount, "colors", "n", 5, "number of colors")
	moodCmd.Flags().Uint64Var(&paletteSeed, "seed", 0, "random seed (0 = random)")

	for _, c := range []*cobra.Command{paletteCmd, sortCmd, harmonyCmd, moodCmd} {
		c.Flags().StringVar(&paletteFormat, "format", "hex", "hex, rgb, hsl or oklch")
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(contrastCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	q, err := palette.ParseQuality(paletteQuality)
	if err != nil {
		return err
	}
	buf, _, err := imageio.Open(args[0])
	if err != nil {
		return err
	}
	colors, err := palette.Extract(buf, paletteCount, q, newRand(paletteSeed))
	if err != nil {
		return err
	}
	if colors, err = sequence(colors, paletteOrder); err != nil {
		return err
	}
	if paletteSim != "" {
		d, err := palette.ParseDeficiency(paletteSim)
		if err != nil {
			return err
		}
		if colors, err = palette.SimulatePalette(colors, d); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	switch paletteExport {
	case "":
		printSwatches(w, colors, paletteFormat)
	case "json":
		data, err := json.MarshalIndent(colors, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	default:
		fmt.Fprintln(w, palette.Export(colors, name, paletteExport))
	}

	if paletteTheme {
		theme, err := palette.AssignRoles(colors)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		for _, role := range []struct{ name, color string }{
			{"primary", theme.Primary},
			{"secondary", theme.Secondary},
			{"accent", theme.Accent},
			{"surface", theme.Surface},
			{"background", theme.Background},
			{"text", theme.Text},
			{"muted", theme.Muted},
		} {
			if role.color == "" {
				continue
			}
			fmt.Fprintf(w, "  %-10s", role.name)
			printSwatches(w, []string{role.color}, paletteFormat)
		}
	}
	return nil
}

// sequence orders colors with the named strategy.
func sequence(colors []string, by string) ([]string, error) {
	switch strings.ToLower(by) {
	case "", "none":
		return colors, nil
	case "greedy":
		return palette.SequenceGreedy(colors)
	case "oklab":
		return palette.SequenceOklab(colors)
	case "hue":
		return palette.SequenceByHueThenLightness(colors)
	case "morton":
		return palette.SortMorton(colors)
	default:
		return nil, fmt.Errorf("order %q: %w", by, errs.ErrUnknownKind)
	}
}

// parseColors accepts any CSS color and returns uppercase hex.
func parseColors(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		for _, s := range splitList(a) {
			c, err := colorspace.ParseCSS(s)
			if err != nil {
				return nil, err
			}
			out = append(out, c.Hex())
		}
	}
	return out, nil
}
