// Package palette extracts representative colors from images and orders,
// harmonizes and analyzes color lists.
package palette

import (
	"fmt"
	"image"
	"math/rand/v2"
	"strings"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/errs"
	"github.com/AnyUserName/phoenyx/internal/metric"
	"github.com/AnyUserName/phoenyx/internal/pixbuf"
	"github.com/disintegration/imaging"
)

// Quality trades extraction speed for fidelity.
type Quality int

const (
	Fast Quality = iota
	Balanced
	Best
)

// Fallback is returned when no pixel survives the alpha filter.
const Fallback = "#000000"

// alphaCutoff drops pixels that are mostly transparent.
const alphaCutoff = 128

var qualityNames = map[Quality]string{Fast: "fast", Balanced: "balanced", Best: "best"}

func (q Quality) String() string {
	if n, ok := qualityNames[q]; ok {
		return n
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality resolves "fast", "balanced" or "best".
func ParseQuality(s string) (Quality, error) {
	for q, n := range qualityNames {
		if strings.EqualFold(n, s) {
			return q, nil
		}
	}
	return 0, fmt.Errorf("quality %q: %w", s, errs.ErrUnknownKind)
}

// MaxSide is the longest side, in pixels, the image is reduced to before
// clustering.
func (q Quality) MaxSide() int {
	switch q {
	case Fast:
		return 64
	case Best:
		return 256
	default:
		return 128
	}
}

// Iterations is the fixed number of Lloyd iterations.
func (q Quality) Iterations() int {
	switch q {
	case Fast:
		return 5
	case Best:
		return 20
	default:
		return 10
	}
}

// Extract returns up to k representative colors of buf as uppercase hex.
//
// Centroids are seeded by sampling points without replacement from rng; a
// nil rng draws a fresh random seed, so repeated calls on the same image
// may differ. Fewer than k colors are returned when the image has fewer
// opaque pixels than k. An image with no opaque pixel yields [Fallback].
func Extract(buf *pixbuf.Buffer, k int, q Quality, rng *rand.Rand) ([]string, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("extract palette: %w", err)
	}
	if k < 1 {
		return nil, fmt.Errorf("extract palette: k=%d: %w", k, errs.ErrDegenerateInput)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	points := oklabPoints(downsample(buf, q.MaxSide()))
	if len(points) == 0 {
		return []string{Fallback}, nil
	}

	centroids := kMeans(points, k, q.Iterations(), rng)
	out := make([]string, len(centroids))
	for i, c := range centroids {
		s := colorspace.Sample{Space: colorspace.SpaceOklab, C0: c.L, C1: c.A, C2: c.B, Alpha: 1}
		out[i] = colorspace.HexOr(s, Fallback)
	}
	return out, nil
}

// ExtractImage is Extract over a decoded image.
func ExtractImage(img image.Image, k int, q Quality, rng *rand.Rand) ([]string, error) {
	return Extract(pixbuf.FromImage(img), k, q, rng)
}

func downsample(buf *pixbuf.Buffer, maxSide int) *pixbuf.Buffer {
	w, h := pixbuf.FitWithin(buf.Width, buf.Height, maxSide)
	if w == buf.Width && h == buf.Height {
		return buf
	}
	return buf.Resize(w, h, imaging.Box)
}

func oklabPoints(buf *pixbuf.Buffer) []colorspace.Oklab {
	points := make([]colorspace.Oklab, 0, buf.Width*buf.Height)
	for i := 0; i < len(buf.Pix); i += 4 {
		if buf.Pix[i+3] < alphaCutoff {
			continue
		}
		c := colorspace.RGB{R: buf.Pix[i], G: buf.Pix[i+1], B: buf.Pix[i+2]}
		points = append(points, colorspace.RGBToOklab(c))
	}
	return points
}

type centroid struct {
	colorspace.Oklab
	sumL, sumA, sumB float64
	count            int
}

func kMeans(points []colorspace.Oklab, k, iterations int, rng *rand.Rand) []colorspace.Oklab {
	if k > len(points) {
		k = len(points)
	}
	centroids := make([]centroid, k)
	for i, idx := range rng.Perm(len(points))[:k] {
		centroids[i].Oklab = points[idx]
	}

	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < iterations; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, metric.SquaredOklab(p, centroids[0].Oklab)
			for c := 1; c < k; c++ {
				if d := metric.SquaredOklab(p, centroids[c].Oklab); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		for c := range centroids {
			centroids[c].sumL, centroids[c].sumA, centroids[c].sumB, centroids[c].count = 0, 0, 0, 0
		}
		for i, p := range points {
			c := &centroids[assign[i]]
			c.sumL += p.L
			c.sumA += p.A
			c.sumB += p.B
			c.count++
		}
		for c := range centroids {
			// Empty clusters keep their previous position.
			if n := float64(centroids[c].count); n > 0 {
				centroids[c].Oklab = colorspace.Oklab{
					L: centroids[c].sumL / n,
					A: centroids[c].sumA / n,
					B: centroids[c].sumB / n,
				}
			}
		}
	}

	out := make([]colorspace.Oklab, k)
	for i, c := range centroids {
		out[i] = c.Oklab
	}
	return out
}
