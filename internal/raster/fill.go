package raster

import (
	"fmt"
	"math"
)

// FillNoData replaces NaN samples in place by linear interpolation between
// the nearest valid samples in flattened row-major order. Samples before the
// first valid sample or after the last one are clamped to that sample's
// value. Returns the number of samples filled; a grid with no valid sample
// at all cannot be filled and is an error.
func (g *Grid) FillNoData() (int, error) {
	// Indices of valid samples, in order.
	valid := make([]int, 0, len(g.Data))
	for i, v := range g.Data {
		if !math.IsNaN(v) {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return 0, fmt.Errorf("raster: cannot fill a grid with no valid samples")
	}
	if len(valid) == len(g.Data) {
		return 0, nil
	}

	filled := 0
	next := 0 // index into valid of the first valid position >= i
	for i := range g.Data {
		if !math.IsNaN(g.Data[i]) {
			continue
		}
		for next < len(valid) && valid[next] < i {
			next++
		}
		switch {
		case next == 0:
			g.Data[i] = g.Data[valid[0]]
		case next == len(valid):
			g.Data[i] = g.Data[valid[len(valid)-1]]
		default:
			lo, hi := valid[next-1], valid[next]
			frac := float64(i-lo) / float64(hi-lo)
			g.Data[i] = g.Data[lo] + frac*(g.Data[hi]-g.Data[lo])
		}
		filled++
	}
	return filled, nil
}
