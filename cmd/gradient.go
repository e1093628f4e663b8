package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/gradient"
	"github.com/spf13/cobra"
)

var (
	gradPreset  string
	gradMood    string
	gradRandom  int
	gradSteps   int
	gradSpace   string
	gradKind    string
	gradAngle   float64
	gradOutput  string
	gradReverse bool
	gradSmooth  bool
	gradWidth   int
	gradHeight  int
	gradSeed    uint64
)

var gradientCmd = &cobra.Command{
	Use:   "gradient [color[@position]]...",
	Short: "Interpolate and render gradients",
	Long: `Builds a gradient from color stops ("#FF0000@0 #0000FF@100"; stops
without a position are spread evenly), a built-in preset (--preset), a
mood (--mood) or random colors (--random N).

--output selects steps (sampled swatches), css, tailwind, vars, svg or mesh.`,
	RunE: runGradient,
}

func init() {
	f := gradientCmd.Flags()
	f.StringVar(&gradPreset, "preset", "", "built-in gradient name")
	f.StringVar(&gradMood, "mood", "", "generate from a mood: calm, energetic, corporate, playful, luxury, natural")
	f.IntVar(&gradRandom, "random", 0, "generate N random colors")
	f.IntVar(&gradSteps, "steps", 7, "samples for --output steps")
	f.StringVar(&gradSpace, "space", "oklch", "interpolation space")
	f.StringVar(&gradKind, "kind", "", "linear, radial, conic or mesh")
	f.Float64Var(&gradAngle, "angle", 0, "angle in degrees")
	f.StringVarP(&gradOutput, "output", "o", "steps", "steps, css, tailwind, vars, svg or mesh")
	f.BoolVar(&gradReverse, "reverse", false, "mirror the stops")
	f.BoolVar(&gradSmooth, "smooth", false, "re-sample stop colors as an even ramp")
	f.IntVar(&gradWidth, "width", 400, "svg width")
	f.IntVar(&gradHeight, "height", 200, "svg height")
	f.Uint64Var(&gradSeed, "seed", 0, "random seed (0 = random)")
	rootCmd.AddCommand(gradientCmd)
}

func runGradient(cmd *cobra.Command, args []string) error {
	space, err := colorspace.ParseSpace(gradSpace)
	if err != nil {
		return err
	}
	g, err := buildGradient(args)
	if err != nil {
		return err
	}
	if gradKind != "" {
		if g.Kind, err = gradient.ParseKind(gradKind); err != nil {
			return err
		}
	}
	if gradAngle != 0 {
		g.Angle = gradAngle
	}
	if gradReverse {
		g.Stops = gradient.Reverse(g.Stops)
	}
	if gradSmooth {
		if g.Stops, err = gradient.Smoothen(g.Stops, space); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	emit := func(out string, err error) error {
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		return nil
	}
	switch strings.ToLower(gradOutput) {
	case "steps":
		colors, err := gradient.Interpolate(g.Stops, gradSteps, space)
		if err != nil {
			return err
		}
		printSwatches(w, colors, "hex")
	case "css":
		return emit(gradient.CSS(g, space))
	case "tailwind":
		return emit(gradient.Tailwind(g))
	case "vars":
		return emit(gradient.Variables(g, "gradient", space))
	case "svg":
		return emit(gradient.SVG(g, gradWidth, gradHeight))
	case "mesh":
		css, err := gradient.MeshCSS(gradient.MeshFromColors(gradient.Colors(g.Stops)))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, css)
	default:
		return fmt.Errorf("output %q: %w", gradOutput, errs.ErrUnknownKind)
	}
	return nil
}

func buildGradient(args []string) (gradient.Gradient, error) {
	rng := newRand(gradSeed)
	switch {
	case gradPreset != "":
		p, err := gradient.LookupPreset(gradPreset)
		if err != nil {
			return gradient.Gradient{}, err
		}
		return p.Gradient(), nil
	case gradMood != "":
		m, err := gradient.ParseMood(gradMood)
		if err != nil {
			return gradient.Gradient{}, err
		}
		base := ""
		if len(args) > 0 {
			c, err := parseColors(args[:1])
			if err != nil {
				return gradient.Gradient{}, err
			}
			base = c[0]
		}
		colors, err := gradient.Moody(m, base, max(gradSteps, 2), rng)
		if err != nil {
			return gradient.Gradient{}, err
		}
		return gradient.Gradient{Name: m.String(), Stops: gradient.FromColors(colors)}, nil
	case gradRandom > 0:
		colors, err := gradient.Random(gradRandom, rng)
		if err != nil {
			return gradient.Gradient{}, err
		}
		return gradient.Gradient{Name: "random", Stops: gradient.FromColors(colors)}, nil
	}

	if len(args) < 2 {
		return gradient.Gradient{}, fmt.Errorf("gradient needs at least two stops: %w", errs.ErrDegenerateInput)
	}
	stops, err := parseStops(args)
	if err != nil {
		return gradient.Gradient{}, err
	}
	return gradient.Gradient{Name: "custom", Stops: stops}, nil
}

// parseStops reads "color" or "color@position" arguments. When no stop has
// a position they are spread evenly.
func parseStops(args []string) ([]gradient.Stop, error) {
	stops := make([]gradient.Stop, len(args))
	positioned := false
	for i, a := range args {
		color, pos, ok := strings.Cut(a, "@")
		c, err := colorspace.ParseCSS(color)
		if err != nil {
			return nil, err
		}
		stops[i].Color = c.Hex()
		if ok {
			p, err := strconv.ParseFloat(strings.TrimSuffix(pos, "%"), 64)
			if err != nil {
				return nil, fmt.Errorf("stop %q: %w", a, errs.ErrDegenerateInput)
			}
			stops[i].Position = p
			positioned = true
		}
	}
	if !positioned {
		return gradient.Distribute(stops), nil
	}
	return stops, nil
}
