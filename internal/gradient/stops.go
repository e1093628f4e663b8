package gradient

import (
	"fmt"
	"slices"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
)

// Reverse mirrors every position around 50 and reverses the order.
func Reverse(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	for i, s := range stops {
		out[len(stops)-1-i] = Stop{Color: s.Color, Position: 100 - s.Position}
	}
	return out
}

// Distribute keeps the order and spaces positions evenly over [0,100].
func Distribute(stops []Stop) []Stop {
	out := slices.Clone(stops)
	if len(out) == 1 {
		out[0].Position = 0
		return out
	}
	for i := range out {
		out[i].Position = float64(i) / float64(len(out)-1) * 100
	}
	return out
}

// Smoothen re-samples the colors of three or more stops as an even ramp
// through the same colors, keeping each stop's position.
func Smoothen(stops []Stop, space colorspace.Space) ([]Stop, error) {
	if len(stops) < 3 {
		return slices.Clone(stops), nil
	}
	colors, err := Interpolate(Distribute(stops), len(stops), space)
	if err != nil {
		return nil, fmt.Errorf("smoothen: %w", err)
	}
	out := slices.Clone(stops)
	for i := range out {
		out[i].Color = colors[i]
	}
	return out, nil
}

// FromColors spreads colors evenly as stops.
func FromColors(colors []string) []Stop {
	out := make([]Stop, len(colors))
	for i, c := range colors {
		out[i].Color = c
	}
	return Distribute(out)
}

// Colors returns the stop colors in position order.
func Colors(stops []Stop) []string {
	sorted := Sorted(stops)
	out := make([]string, len(sorted))
	for i, s := range sorted {
		out[i] = s.Color
	}
	return out
}
