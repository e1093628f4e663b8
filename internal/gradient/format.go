package gradient

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/hasher"
)

const (
	defaultAngle  = 45
	defaultCenter = 50
)

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// checkStops rejects gradients a formatter cannot render faithfully: fewer
// than two stops or a stop color that is not hex.
func checkStops(op string, stops []Stop) error {
	if len(stops) < 2 {
		return fmt.Errorf("%s: %d stops: %w", op, len(stops), errs.ErrDegenerateInput)
	}
	if _, err := parseStops(stops); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func colorStops(stops []Stop) string {
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = fmt.Sprintf("%s %s%%", s.Color, num(s.Position))
	}
	return strings.Join(parts, ", ")
}

// CSS renders g as a CSS gradient function with an "in <space>" hint.
// The hint is omitted for sRGB, which is the CSS default.
func CSS(g Gradient, space colorspace.Space) (string, error) {
	if err := checkStops("css", g.Stops); err != nil {
		return "", err
	}
	stops := colorStops(Sorted(g.Stops))
	hint := ""
	if space != colorspace.SpaceSRGB {
		hint = " in " + space.String()
	}
	cx, cy := num(orDefault(g.CenterX, defaultCenter)), num(orDefault(g.CenterY, defaultCenter))

	switch g.Kind {
	case Radial:
		return fmt.Sprintf("radial-gradient(circle at %s%% %s%%%s, %s)", cx, cy, hint, stops), nil
	case Conic:
		return fmt.Sprintf("conic-gradient(from %sdeg at %s%% %s%%%s, %s)", num(g.Angle), cx, cy, hint, stops), nil
	case Linear:
		return fmt.Sprintf("linear-gradient(%sdeg%s, %s)", num(orDefault(g.Angle, defaultAngle)), hint, stops), nil
	default:
		return fmt.Sprintf("linear-gradient(%ddeg%s, %s)", defaultAngle, hint, stops), nil
	}
}

var tailwindDirections = []struct {
	angle float64
	dir   string
}{
	{0, "to-t"}, {45, "to-tr"}, {90, "to-r"}, {135, "to-br"},
	{180, "to-b"}, {225, "to-bl"}, {270, "to-l"}, {315, "to-tl"},
}

// Tailwind renders the first and last stop as Tailwind gradient utility
// classes, snapping the angle to the nearest of eight directions.
func Tailwind(g Gradient) (string, error) {
	if err := checkStops("tailwind", g.Stops); err != nil {
		return "", err
	}
	sorted := Sorted(g.Stops)
	angle := orDefault(g.Angle, defaultAngle)
	best := tailwindDirections[0]
	for _, d := range tailwindDirections[1:] {
		if math.Abs(d.angle-angle) < math.Abs(best.angle-angle) {
			best = d
		}
	}
	return fmt.Sprintf("bg-gradient-%s from-[%s] to-[%s]", best.dir, sorted[0].Color, sorted[len(sorted)-1].Color), nil
}

// Variables renders g as a :root block of custom properties under prefix.
func Variables(g Gradient, prefix string, space colorspace.Space) (string, error) {
	css, err := CSS(g, space)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		prefix = "gradient"
	}
	lines := []string{
		":root {",
		fmt.Sprintf("  --%s-name: %q;", prefix, g.Name),
		fmt.Sprintf("  --%s-type: %s;", prefix, g.Kind),
		fmt.Sprintf("  --%s-angle: %sdeg;", prefix, num(orDefault(g.Angle, defaultAngle))),
	}
	for i, s := range g.Stops {
		lines = append(lines,
			fmt.Sprintf("  --%s-color-%d: %s;", prefix, i+1, s.Color),
			fmt.Sprintf("  --%s-position-%d: %s%%;", prefix, i+1, num(s.Position)))
	}
	lines = append(lines, fmt.Sprintf("  --%s: %s;", prefix, css), "}")
	return strings.Join(lines, "\n"), nil
}

// SVGID derives a stable element id from the gradient's stops.
func SVGID(g Gradient) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%v", g.Name, g.Kind, g.Angle)
	for _, s := range g.Stops {
		fmt.Fprintf(&b, "|%s@%v", s.Color, s.Position)
	}
	return "gradient-" + hasher.ContentHash([]byte(b.String()), 8)
}

// SVG renders g as a standalone SVG document filling a width x height
// rect. SVG has no conic primitive, so conic gradients become a radial
// with r=70%.
func SVG(g Gradient, width, height int) (string, error) {
	if err := checkStops("svg", g.Stops); err != nil {
		return "", err
	}
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 200
	}
	id := SVGID(g)
	sorted := Sorted(g.Stops)
	stopXML := make([]string, len(sorted))
	for i, s := range sorted {
		stopXML[i] = fmt.Sprintf(`<stop offset="%s%%" stop-color="%s"/>`, num(s.Position), s.Color)
	}
	stops := strings.Join(stopXML, "\n      ")
	cx, cy := num(orDefault(g.CenterX, defaultCenter)), num(orDefault(g.CenterY, defaultCenter))

	var def string
	switch g.Kind {
	case Linear:
		rad := orDefault(g.Angle, defaultAngle) * math.Pi / 180
		cos, sin := math.Cos(rad), math.Sin(rad)
		def = fmt.Sprintf(`<linearGradient id="%s" x1="%s%%" y1="%s%%" x2="%s%%" y2="%s%%">
      %s
    </linearGradient>`, id, num(round2(50-50*cos)), num(round2(50-50*sin)), num(round2(50+50*cos)), num(round2(50+50*sin)), stops)
	case Radial:
		def = fmt.Sprintf(`<radialGradient id="%s" cx="%s%%" cy="%s%%" r="50%%">
      %s
    </radialGradient>`, id, cx, cy, stops)
	case Conic:
		def = fmt.Sprintf(`<radialGradient id="%s" cx="%s%%" cy="%s%%" r="70%%">
      %s
    </radialGradient>`, id, cx, cy, stops)
	default:
		def = fmt.Sprintf(`<linearGradient id="%s">
      %s
    </linearGradient>`, id, stops)
	}

	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
  <defs>
    %s
  </defs>
  <rect width="100%%" height="100%%" fill="url(#%s)"/>
</svg>`, width, height, def, id), nil
}

// MeshPoint is one radial blob of a mesh gradient, in percent of the box.
type MeshPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Color  string  `json:"color"`
	Radius float64 `json:"radius"`
}

const meshRadius = 50

var meshPositions = [][2]float64{
	{25, 25}, {75, 25}, {50, 75}, {50, 50},
	{15, 50}, {85, 50}, {25, 85}, {75, 85},
}

// NewMeshPoint clamps the position into [0,100] and uses the default radius.
func NewMeshPoint(x, y float64, color string) MeshPoint {
	return MeshPoint{X: clampPct(x), Y: clampPct(y), Color: color, Radius: meshRadius}
}

// MeshFromColors places up to eight colors at fixed anchor positions.
func MeshFromColors(colors []string) []MeshPoint {
	n := min(len(colors), len(meshPositions))
	out := make([]MeshPoint, n)
	for i := 0; i < n; i++ {
		out[i] = NewMeshPoint(meshPositions[i][0], meshPositions[i][1], colors[i])
	}
	return out
}

// MeshCSS layers one radial gradient per point, each fading to the
// transparent version of its color at its radius.
func MeshCSS(points []MeshPoint) (string, error) {
	if len(points) == 0 {
		return "transparent", nil
	}
	parts := make([]string, len(points))
	for i, p := range points {
		c, err := colorspace.ParseHex(p.Color)
		if err != nil {
			return "", fmt.Errorf("mesh point %d: %w", i, err)
		}
		parts[i] = fmt.Sprintf("radial-gradient(circle at %s%% %s%%, %s 0%%, rgba(%d,%d,%d,0) %s%%)",
			num(p.X), num(p.Y), p.Color, c.R, c.G, c.B, num(p.Radius))
	}
	return strings.Join(parts, ", "), nil
}

func clampPct(v float64) float64 { return math.Max(0, math.Min(100, v)) }
