package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/composite"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/imageio"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/spf13/cobra"
)

var (
	compBase    string
	compLayers  []string
	compWidth   int
	compHeight  int
	compThumb   int
	compQuality int
	compModes   bool
)

var compositeCmd = &cobra.Command{
	Use:   "composite <output>",
	Short: "Stack image layers with blend modes into one image",
	Long: `Layers are drawn bottom to top over --base (or a transparent canvas).
Each --layer is path[:mode[:opacity]], e.g. --layer glow.png:screen:60.
Layers are scaled to the canvas, which defaults to the base size.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if compModes {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runComposite,
}

func init() {
	f := compositeCmd.Flags()
	f.StringVar(&compBase, "base", "", "base image")
	f.StringArrayVarP(&compLayers, "layer", "l", nil, "layer path[:mode[:opacity]] (repeatable)")
	f.IntVar(&compWidth, "width", 0, "canvas width (0 = base or first layer)")
	f.IntVar(&compHeight, "height", 0, "canvas height (0 = base or first layer)")
	f.IntVar(&compThumb, "thumb", 0, "also write a thumbnail with this longest side")
	f.IntVar(&compQuality, "quality", 85, "encoder quality 1-100")
	f.BoolVar(&compModes, "modes", false, "list blend modes")
	rootCmd.AddCommand(compositeCmd)
}

func runComposite(cmd *cobra.Command, args []string) error {
	if compModes {
		for _, m := range composite.Modes() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", m, m.Operator())
		}
		return nil
	}

	var base *pixbuf.Buffer
	if compBase != "" {
		b, _, err := imageio.Open(compBase)
		if err != nil {
			return err
		}
		base = b
	}

	layers := make([]composite.Layer, 0, len(compLayers))
	for _, spec := range compLayers {
		l, err := parseLayer(spec)
		if err != nil {
			return err
		}
		layers = append(layers, l)
	}

	w, h := compWidth, compHeight
	if w == 0 || h == 0 {
		switch {
		case base != nil:
			w, h = base.Width, base.Height
		case len(layers) > 0:
			w, h = layers[0].Source.Width, layers[0].Source.Height
		default:
			return fmt.Errorf("composite: no base and no layers: %w", errs.ErrDegenerateInput)
		}
	}

	out, err := composite.Composite(base, layers, w, h)
	if err != nil {
		return err
	}
	if err := saveImage(out, args[0], compQuality); err != nil {
		return err
	}

	if compThumb > 0 {
		thumb, err := composite.Thumbnail(out, compThumb)
		if err != nil {
			return err
		}
		ext := filepath.Ext(args[0])
		if err := saveImage(thumb, strings.TrimSuffix(args[0], ext)+".thumb"+ext, compQuality); err != nil {
			return err
		}
	}
	return nil
}

// parseLayer reads path[:mode[:opacity]], opacity in percent.
func parseLayer(spec string) (composite.Layer, error) {
	parts := strings.Split(spec, ":")
	l := composite.Layer{Name: filepath.Base(parts[0]), Opacity: 1, Visible: true}
	if len(parts) > 1 && parts[1] != "" {
		m, err := composite.ParseBlendMode(parts[1])
		if err != nil {
			return l, err
		}
		l.Mode = m
	}
	if len(parts) > 2 {
		o, err := strconv.ParseFloat(strings.TrimSuffix(parts[2], "%"), 64)
		if err != nil {
			return l, fmt.Errorf("layer %q: bad opacity: %w", spec, errs.ErrDegenerateInput)
		}
		l.Opacity = o / 100
	}
	src, _, err := imageio.Open(parts[0])
	if err != nil {
		return l, err
	}
	l.Source = src
	return l, nil
}
