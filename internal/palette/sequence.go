package palette

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
	"github.com/AnyUserName/phoenyx/internal/metric"
)

// Hue differences at or below hueBucket degrees, and lightness differences
// at or below lightBucket, are treated as equal by SequenceByHueThenLightness.
// Colors with LCH chroma below neutralChroma have no meaningful hue.
const (
	hueBucket     = 30
	lightBucket   = 10
	neutralChroma = 5
)

// parseAll decodes every color up front so a malformed entry fails the whole
// call before anything is reordered.
func parseAll(colors []string) ([]colorspace.RGB, error) {
	out := make([]colorspace.RGB, len(colors))
	for i, s := range colors {
		c, err := colorspace.ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// SequenceGreedy orders colors into a smooth path: it starts from the
// darkest color (minimum L*) and repeatedly appends the unvisited color
// closest to the last one by CIEDE2000. Ties go to the earlier input.
// Lists of two or fewer colors are returned unchanged.
func SequenceGreedy(colors []string) ([]string, error) {
	rgb, err := parseAll(colors)
	if err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}
	if len(colors) <= 2 {
		return slices.Clone(colors), nil
	}
	labs := make([]colorspace.Lab, len(rgb))
	for i, c := range rgb {
		labs[i] = colorspace.RGBToLab(c)
	}
	order := greedyTour(len(labs),
		func(i int) float64 { return labs[i].L },
		func(i, j int) float64 { return metric.DeltaE2000(labs[i], labs[j]) })
	return permute(colors, order), nil
}

// SequenceOklab is SequenceGreedy with Euclidean Oklab distance in place of
// CIEDE2000 and Oklab L as the anchor.
func SequenceOklab(colors []string) ([]string, error) {
	rgb, err := parseAll(colors)
	if err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}
	if len(colors) <= 2 {
		return slices.Clone(colors), nil
	}
	labs := make([]colorspace.Oklab, len(rgb))
	for i, c := range rgb {
		labs[i] = colorspace.RGBToOklab(c)
	}
	order := greedyTour(len(labs),
		func(i int) float64 { return labs[i].L },
		func(i, j int) float64 { return metric.SquaredOklab(labs[i], labs[j]) })
	return permute(colors, order), nil
}

func greedyTour(n int, lightness func(int) float64, dist func(i, j int) float64) []int {
	start := 0
	for i := 1; i < n; i++ {
		if lightness(i) < lightness(start) {
			start = i
		}
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)
	order = append(order, start)
	visited[start] = true

	for len(order) < n {
		last := order[len(order)-1]
		next, best := -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			if d := dist(last, i); next < 0 || d < best {
				next, best = i, d
			}
		}
		order = append(order, next)
		visited[next] = true
	}
	return order
}

func permute(colors []string, order []int) []string {
	out := make([]string, len(order))
	for i, idx := range order {
		out[i] = colors[idx]
	}
	return out
}

// SequenceByHueThenLightness stable-sorts colors by LCH hue. Pairs whose
// hues are within 30 degrees fall through to lightness, and pairs within
// 10 L* units fall through to chroma, all ascending. Neutral colors lead,
// ordered by lightness alone.
func SequenceByHueThenLightness(colors []string) ([]string, error) {
	rgb, err := parseAll(colors)
	if err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}
	if len(colors) <= 2 {
		return slices.Clone(colors), nil
	}

	type entry struct {
		hex string
		lch colorspace.LCH
	}
	entries := make([]entry, len(colors))
	for i, c := range rgb {
		entries[i] = entry{hex: colors[i], lch: colorspace.RGBToLCH(c)}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		an, bn := a.lch.C < neutralChroma, b.lch.C < neutralChroma
		switch {
		case an && bn:
			return cmp.Compare(a.lch.L, b.lch.L)
		case an:
			return -1
		case bn:
			return 1
		}
		if dh := a.lch.H - b.lch.H; math.Abs(dh) > hueBucket {
			return cmp.Compare(a.lch.H, b.lch.H)
		}
		if dl := a.lch.L - b.lch.L; math.Abs(dl) > lightBucket {
			return cmp.Compare(a.lch.L, b.lch.L)
		}
		return cmp.Compare(a.lch.C, b.lch.C)
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.hex
	}
	return out, nil
}

// SortMorton orders colors along a Z-order curve through the RGB cube,
// interleaving the bits of R, G and B (R most significant).
func SortMorton(colors []string) ([]string, error) {
	rgb, err := parseAll(colors)
	if err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}
	idx := make([]int, len(colors))
	codes := make([]uint32, len(colors))
	for i, c := range rgb {
		idx[i] = i
		codes[i] = morton(c)
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(codes[a], codes[b]) })
	return permute(colors, idx), nil
}

func morton(c colorspace.RGB) uint32 {
	var code uint32
	for bit := 7; bit >= 0; bit-- {
		code = code<<3 |
			uint32(c.R>>bit&1)<<2 |
			uint32(c.G>>bit&1)<<1 |
			uint32(c.B>>bit&1)
	}
	return code
}
