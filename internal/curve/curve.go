// Package curve compiles tone curves drawn as sparse control points into
// 256-entry lookup tables and applies them to pixel buffers.
package curve

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/AnyUserName/phoenyx/internal/pixbuf"
)

// Point is a control point; both coordinates are in [0,255].
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// LUT maps an input byte to an output byte.
type LUT [256]uint8

// samplesPerSegment is the number of parameter steps (t += 0.02) taken
// across each spline segment.
const samplesPerSegment = 50

// alpha selects the centripetal Catmull-Rom parametrization.
const alpha = 0.5

// Identity returns the curve that leaves values unchanged.
func Identity() []Point { return []Point{{0, 0}, {255, 255}} }

// IdentityLUT returns [0, 1, ..., 255].
func IdentityLUT() LUT {
	var l LUT
	for i := range l {
		l[i] = uint8(i)
	}
	return l
}

// IsIdentity reports whether points is exactly the default pair, or has
// too few points to describe a curve.
func IsIdentity(points []Point) bool {
	if len(points) < 2 {
		return true
	}
	return len(points) == 2 &&
		points[0] == Point{0, 0} && points[1] == Point{255, 255}
}

// CompileLUT samples a centripetal Catmull-Rom spline through points and
// resolves it into a table. Inputs left of the first point take its y and
// inputs right of the last take the last y. Of several points sharing an
// x, the last one given wins.
func CompileLUT(points []Point) LUT {
	if IsIdentity(points) {
		return IdentityLUT()
	}
	pts := slices.Clone(points)
	slices.SortStableFunc(pts, func(a, b Point) int { return cmp.Compare(a.X, b.X) })
	pts = dedupeX(pts)

	samples := sampleSpline(pts)
	first, last := pts[0], pts[len(pts)-1]

	var lut LUT
	for v := 0; v < 256; v++ {
		x := float64(v)
		var y float64
		switch {
		case x <= first.X:
			y = first.Y
		case x >= last.X:
			y = last.Y
		default:
			y = lookup(samples, x)
		}
		lut[v] = clampByte(y)
	}
	return lut
}

// dedupeX keeps only the last of each run of points sharing an x in the
// sorted slice pts. It reuses pts' backing array.
func dedupeX(pts []Point) []Point {
	out := pts[:0]
	for i, p := range pts {
		if i+1 < len(pts) && pts[i+1].X == p.X {
			continue
		}
		out = append(out, p)
	}
	return out
}

// lookup finds the first sampled segment bracketing x and interpolates
// linearly along it. An unbracketed x maps to itself.
func lookup(samples []Point, x float64) float64 {
	for i := 0; i < len(samples)-1; i++ {
		a, b := samples[i], samples[i+1]
		lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
		if x < lo || x > hi {
			continue
		}
		if hi-lo < 1e-9 {
			return math.Max(a.Y, b.Y)
		}
		return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
	}
	return x
}

// sampleSpline evaluates every segment between consecutive points. The
// outer phantom points are reflections of the neighbors across the ends.
func sampleSpline(pts []Point) []Point {
	n := len(pts)
	out := make([]Point, 0, (n-1)*samplesPerSegment+1)
	for i := 0; i < n-1; i++ {
		p1, p2 := pts[i], pts[i+1]
		p0 := reflect(p1, p2)
		if i > 0 {
			p0 = pts[i-1]
		}
		p3 := reflect(p2, p1)
		if i+2 < n {
			p3 = pts[i+2]
		}
		start := 0
		if i > 0 {
			start = 1
		}
		for s := start; s <= samplesPerSegment; s++ {
			out = append(out, centripetal(p0, p1, p2, p3, float64(s)/samplesPerSegment))
		}
	}
	return out
}

// reflect mirrors q through p.
func reflect(p, q Point) Point {
	return Point{X: 2*p.X - q.X, Y: 2*p.Y - q.Y}
}

// centripetal evaluates the segment p1..p2 at u in [0,1] with the
// Barry-Goldman pyramid.
func centripetal(p0, p1, p2, p3 Point, u float64) Point {
	t0 := 0.0
	t1 := t0 + knot(p0, p1)
	t2 := t1 + knot(p1, p2)
	t3 := t2 + knot(p2, p3)
	t := t1 + (t2-t1)*u

	a1 := blend(p0, p1, t0, t1, t)
	a2 := blend(p1, p2, t1, t2, t)
	a3 := blend(p2, p3, t2, t3, t)
	b1 := blend(a1, a2, t0, t2, t)
	b2 := blend(a2, a3, t1, t3, t)
	return blend(b1, b2, t1, t2, t)
}

// knot is the parameter distance between two points. Coincident points
// get a unit step so the pyramid never divides by zero.
func knot(a, b Point) float64 {
	d := math.Pow(math.Hypot(b.X-a.X, b.Y-a.Y), alpha)
	if d < 1e-6 {
		return 1
	}
	return d
}

func blend(a, b Point, ta, tb, t float64) Point {
	w := (t - ta) / (tb - ta)
	return Point{X: a.X + (b.X-a.X)*w, Y: a.Y + (b.Y-a.Y)*w}
}

func clampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// Spec is a full curves adjustment: a master curve and one per channel.
// Nil curves are identity.
type Spec struct {
	RGB   []Point `json:"rgb,omitempty" yaml:"rgb,omitempty" toml:"rgb,omitempty"`
	Red   []Point `json:"red,omitempty" yaml:"red,omitempty" toml:"red,omitempty"`
	Green []Point `json:"green,omitempty" yaml:"green,omitempty" toml:"green,omitempty"`
	Blue  []Point `json:"blue,omitempty" yaml:"blue,omitempty" toml:"blue,omitempty"`
}

// DefaultSpec has every curve at identity.
func DefaultSpec() Spec {
	return Spec{RGB: Identity(), Red: Identity(), Green: Identity(), Blue: Identity()}
}

// IsIdentity reports whether applying s would change nothing.
func (s Spec) IsIdentity() bool {
	return IsIdentity(s.RGB) && IsIdentity(s.Red) && IsIdentity(s.Green) && IsIdentity(s.Blue)
}

// Tables holds the composed per-channel tables: the channel curve first,
// then the master curve.
type Tables struct {
	R, G, B LUT
}

// Compile builds the composed tables for s.
func Compile(s Spec) Tables {
	master := CompileLUT(s.RGB)
	compose := func(ch []Point) LUT {
		c := CompileLUT(ch)
		var out LUT
		for i := range out {
			out[i] = master[c[i]]
		}
		return out
	}
	return Tables{R: compose(s.Red), G: compose(s.Green), B: compose(s.Blue)}
}

// Apply maps every pixel's color channels through t. Alpha is untouched.
func (t Tables) Apply(buf *pixbuf.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("apply curves: %w", err)
	}
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = t.R[buf.Pix[i]]
		buf.Pix[i+1] = t.G[buf.Pix[i+1]]
		buf.Pix[i+2] = t.B[buf.Pix[i+2]]
	}
	return nil
}

// Apply compiles s and applies it. An identity spec is a no-op.
func Apply(buf *pixbuf.Buffer, s Spec) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("apply curves: %w", err)
	}
	if s.IsIdentity() {
		return nil
	}
	return Compile(s).Apply(buf)
}
