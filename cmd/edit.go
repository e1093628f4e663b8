package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/curve"
	"github.com/AnyUserName/phoenyx/internal/effects"
	"github.com/AnyUserName/phoenyx/internal/encoder"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/imageio"
	"github.com/AnyUserName/phoenyx/internal/logging"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/AnyUserName/phoenyx/internal/preset"
	"github.com/AnyUserName/phoenyx/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	editPreset      string
	editPresetsFile string
	editQuality     int
	editMaxSize     int
	editSeed        uint64
	editRotate      float64
	editFlipX       bool
	editFlipY       bool
	editCrop        string
	editEffects     []string
	editCurves      curveFlags
)

// sliders are the adjust flags, keyed by flag name.
var sliders = map[string]*float64{}

var sliderFlags = []struct{ name, usage string }{
	{"brightness", "brightness percent (100 = neutral)"},
	{"contrast", "contrast percent (100 = neutral)"},
	{"saturation", "saturation percent (100 = neutral)"},
	{"hue-rotate", "hue rotation in degrees"},
	{"sepia", "sepia percent"},
	{"invert", "invert percent"},
	{"blur", "blur radius in pixels"},
	{"temperature", "warm (+) or cool (-), -100..100"},
	{"tint", "magenta (+) or green (-), -100..100"},
	{"shadows", "lift (+) or crush (-) shadows"},
	{"highlights", "boost (+) or recover (-) highlights"},
	{"vibrance", "saturate muted colors, -100..100"},
	{"clarity", "local contrast, -100..100"},
	{"vignette", "corner darkening, 0..100"},
}

var grayscale bool

var adjustCmd = &cobra.Command{
	Use:   "adjust <input> <output>",
	Short: "Apply a preset plus slider, transform, curve and effect edits to one image",
	Long: `Renders one image through the full edit pipeline: crop, resize, basic
filters, rotation and flips, curves, tonal adjustments, then effects.

Slider flags override the preset; --effect may be repeated as kind:intensity.
The output format follows the output file extension.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdjust,
}

var curveCmd = &cobra.Command{
	Use:   "curve [<input> <output>]",
	Short: "Apply tone curves to an image or print the compiled table",
	Long: `Curves are lists of x:y control points in [0,255], e.g.
--rgb 0:0,64:48,192:210,255:255. Without arguments the composed lookup
tables are printed instead.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 args, received %d", len(args))
		}
		return nil
	},
	RunE: runCurve,
}

var effectList bool

var effectCmd = &cobra.Command{
	Use:   "effect <input> <output> <kind[:intensity]>...",
	Short: "Apply one or more effects to an image",
	Args: func(cmd *cobra.Command, args []string) error {
		if effectList {
			return nil
		}
		return cobra.MinimumNArgs(3)(cmd, args)
	},
	RunE: runEffect,
}

func init() {
	for _, c := range []*cobra.Command{adjustCmd, curveCmd, effectCmd} {
		c.Flags().IntVar(&editQuality, "quality", encoder.DefaultJPEGQuality, "encoder quality 1-100")
		c.Flags().Uint64Var(&editSeed, "seed", 0, "random seed for noise effects (0 = random)")
	}

	f := adjustCmd.Flags()
	f.StringVarP(&editPreset, "preset", "p", "", "start from a preset")
	f.StringVar(&editPresetsFile, "presets", "", "extra presets file (.yaml, .toml, .json)")
	f.IntVar(&editMaxSize, "max-size", 0, "longest output side (0 = keep)")
	f.Float64Var(&editRotate, "rotate", 0, "rotation in degrees, counter-clockwise")
	f.BoolVar(&editFlipX, "flip-x", false, "mirror horizontally")
	f.BoolVar(&editFlipY, "flip-y", false, "mirror vertically")
	f.StringVar(&editCrop, "crop", "", "crop rectangle x,y,width,height")
	f.BoolVar(&grayscale, "grayscale", false, "convert to grayscale")
	f.StringArrayVarP(&editEffects, "effect", "e", nil, "effect kind:intensity (repeatable)")
	for _, s := range sliderFlags {
		v := new(float64)
		sliders[s.name] = v
		f.Float64Var(v, s.name, 0, s.usage)
	}
	editCurves.register(f)
	editCurves.register(curveCmd.Flags())

	effectCmd.Flags().BoolVar(&effectList, "list", false, "list effect kinds")

	rootCmd.AddCommand(adjustCmd, curveCmd, effectCmd)
}

func runAdjust(cmd *cobra.Command, args []string) error {
	catalog, err := preset.LoadCatalog(editPresetsFile)
	if err != nil {
		return err
	}
	p := preset.Preset{Name: "adjust"}
	if editPreset != "" {
		if _, ok := catalog.Get(editPreset); !ok {
			return fmt.Errorf("preset %q: %w", editPreset, errs.ErrUnknownKind)
		}
		p = catalog.Lookup(editPreset)
	}

	st := p.State()
	overrideSliders(cmd.Flags(), &st)
	if err := editCurves.apply(cmd.Flags(), &st.Curves); err != nil {
		return err
	}
	for _, e := range editEffects {
		d, err := parseEffect(e)
		if err != nil {
			return err
		}
		st.Effects = append(st.Effects, d)
	}
	st.Rotation, st.FlipX, st.FlipY = editRotate, editFlipX, editFlipY
	if editMaxSize > 0 {
		st.MaxSize = editMaxSize
	}
	if editCrop != "" {
		c, err := parseCrop(editCrop)
		if err != nil {
			return err
		}
		st.Crop = &c
	}

	return renderFile(args[0], args[1], st)
}

func runCurve(cmd *cobra.Command, args []string) error {
	spec := curve.DefaultSpec()
	if err := editCurves.apply(cmd.Flags(), &spec); err != nil {
		return err
	}
	if len(args) == 0 {
		t := curve.Compile(spec)
		w := cmd.OutOrStdout()
		for _, ch := range []struct {
			name string
			lut  curve.LUT
		}{{"r", t.R}, {"g", t.G}, {"b", t.B}} {
			vals := make([]string, len(ch.lut))
			for i, v := range ch.lut {
				vals[i] = strconv.Itoa(int(v))
			}
			fmt.Fprintf(w, "%s: %s\n", ch.name, strings.Join(vals, " "))
		}
		return nil
	}
	st := render.Default()
	st.Curves = spec
	return renderFile(args[0], args[1], st)
}

func runEffect(cmd *cobra.Command, args []string) error {
	if effectList {
		for _, k := range effects.Kinds() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	}
	st := render.Default()
	for _, a := range args[2:] {
		d, err := parseEffect(a)
		if err != nil {
			return err
		}
		st.Effects = append(st.Effects, d)
	}
	return renderFile(args[0], args[1], st)
}

// renderFile renders in with st and saves the result to out.
func renderFile(in, out string, st render.State) error {
	src, _, err := imageio.Open(in)
	if err != nil {
		return err
	}
	buf, err := render.Render(src, st, newRand(editSeed))
	if err != nil {
		return err
	}
	return saveImage(buf, out, editQuality)
}

func saveImage(buf *pixbuf.Buffer, path string, quality int) error {
	if err := imageio.Save(encoder.NewRegistry(), buf, path, quality); err != nil {
		return err
	}
	logging.Logger().Info("wrote", "path", path, "width", buf.Width, "height", buf.Height)
	return nil
}

func overrideSliders(fs *pflag.FlagSet, st *render.State) {
	targets := map[string]*float64{
		"brightness":  &st.Filters.Brightness,
		"contrast":    &st.Filters.Contrast,
		"saturation":  &st.Filters.Saturation,
		"hue-rotate":  &st.Filters.HueRotate,
		"sepia":       &st.Filters.Sepia,
		"invert":      &st.Filters.Invert,
		"blur":        &st.Filters.Blur,
		"temperature": &st.Tone.Temperature,
		"tint":        &st.Tone.Tint,
		"shadows":     &st.Tone.Shadows,
		"highlights":  &st.Tone.Highlights,
		"vibrance":    &st.Tone.Vibrance,
		"clarity":     &st.Tone.Clarity,
		"vignette":    &st.Tone.Vignette,
	}
	for name, dst := range targets {
		if fs.Changed(name) {
			*dst = *sliders[name]
		}
	}
	if fs.Changed("grayscale") {
		st.Filters.Grayscale = grayscale
	}
}

// parseEffect reads "kind" or "kind:intensity". Intensity defaults to 50;
// duotone accepts "duotone:80:#112233:#FFEEDD".
func parseEffect(s string) (effects.Descriptor, error) {
	parts := strings.Split(s, ":")
	k, err := effects.ParseKind(parts[0])
	if err != nil {
		return effects.Descriptor{}, err
	}
	d := effects.Descriptor{Kind: k, Intensity: 50}
	if len(parts) > 1 {
		if d.Intensity, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return effects.Descriptor{}, fmt.Errorf("effect %q: bad intensity: %w", s, errs.ErrDegenerateInput)
		}
	}
	if len(parts) > 2 {
		d.Dark = parts[2]
	}
	if len(parts) > 3 {
		d.Light = parts[3]
	}
	return d, nil
}

func parseCrop(s string) (render.Crop, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return render.Crop{}, fmt.Errorf("crop %q: want x,y,width,height: %w", s, errs.ErrInvalidBufferDimensions)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return render.Crop{}, fmt.Errorf("crop %q: %w", s, errs.ErrInvalidBufferDimensions)
		}
		v[i] = n
	}
	return render.Crop{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// curveFlags holds the --rgb/--red/--green/--blue point lists.
type curveFlags struct {
	rgb, red, green, blue string
}

func (c *curveFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.rgb, "rgb", "", "master curve points x:y,...")
	fs.StringVar(&c.red, "red", "", "red curve points")
	fs.StringVar(&c.green, "green", "", "green curve points")
	fs.StringVar(&c.blue, "blue", "", "blue curve points")
}

func (c *curveFlags) apply(fs *pflag.FlagSet, spec *curve.Spec) error {
	for _, ch := range []struct {
		name string
		val  string
		dst  *[]curve.Point
	}{{"rgb", c.rgb, &spec.RGB}, {"red", c.red, &spec.Red}, {"green", c.green, &spec.Green}, {"blue", c.blue, &spec.Blue}} {
		if !fs.Changed(ch.name) {
			continue
		}
		pts, err := parsePoints(ch.val)
		if err != nil {
			return fmt.Errorf("--%s: %w", ch.name, err)
		}
		*ch.dst = pts
	}
	return nil
}

func parsePoints(s string) ([]curve.Point, error) {
	var pts []curve.Point
	for _, item := range splitList(s) {
		xs, ys, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("point %q: %w", item, errs.ErrDegenerateInput)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", item, errs.ErrDegenerateInput)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", item, errs.ErrDegenerateInput)
		}
		pts = append(pts, curve.Point{X: x, Y: y})
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("need at least two points: %w", errs.ErrDegenerateInput)
	}
	return pts, nil
}
