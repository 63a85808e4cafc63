package texture

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// orientations are the four unit-distance co-occurrence offsets as
// (row, col) deltas: 0° (east), 45°, 90° and 135° in image coordinates.
// Counting is symmetric, so the sign of the offset does not affect the
// resulting matrix.
var orientations = [4][2]int{
	{0, 1},  // 0°
	{1, 1},  // 45°
	{1, 0},  // 90°
	{1, -1}, // 135°
}

// quantize rescales the h*w scratch window into integer gray levels in
// [0, levels-1] using round-half-away-from-zero (math.Round), writing into q.
// NaN samples map to level 0. Returns false when the window has no finite
// sample or its maximum is exactly zero, i.e. the rescale divisor is
// undefined.
func quantize(scratch []float64, q []int, levels int) bool {
	max := math.Inf(-1)
	finite := false
	for _, v := range scratch {
		if math.IsNaN(v) {
			continue
		}
		finite = true
		if v > max {
			max = v
		}
	}
	if !finite || max == 0 {
		return false
	}

	scale := float64(levels-1) / max
	for i, v := range scratch {
		if math.IsNaN(v) {
			q[i] = 0
			continue
		}
		level := int(math.Round(v * scale))
		if level < 0 {
			level = 0
		} else if level > levels-1 {
			level = levels - 1
		}
		q[i] = level
	}
	return true
}

// coOccurrence tallies symmetric gray-level transitions at offset (dr, dc)
// over a quantized h x w window into a levels x levels matrix. Both (a,b)
// and (b,a) are counted for every pair. When normed is set and at least one
// pair exists, the matrix is scaled to sum to 1. The total number of counted
// transitions is returned alongside the matrix; it is zero when the offset
// never fits inside the window (e.g. a vertical offset in a 1-row tile).
func coOccurrence(q []int, h, w, levels, dr, dc int, normed bool) (*mat.Dense, int) {
	m := mat.NewDense(levels, levels, nil)
	pairs := 0
	for r := 0; r < h; r++ {
		r2 := r + dr
		if r2 < 0 || r2 >= h {
			continue
		}
		for c := 0; c < w; c++ {
			c2 := c + dc
			if c2 < 0 || c2 >= w {
				continue
			}
			a := q[r*w+c]
			b := q[r2*w+c2]
			m.Set(a, b, m.At(a, b)+1)
			m.Set(b, a, m.At(b, a)+1)
			pairs += 2
		}
	}
	if normed && pairs > 0 {
		m.Scale(1/float64(pairs), m)
	}
	return m, pairs
}

// reduce collapses one orientation's co-occurrence matrix to a scalar for
// the given property. The matrix is interpreted as a probability mass
// regardless of whether it was stored normalized, so the Normed flag does
// not change reduction results. A matrix with no counted pairs reduces to 0.
func reduce(prop Property, m *mat.Dense, pairs int, normed bool) float64 {
	if pairs == 0 {
		return 0
	}
	total := 1.0
	if !normed {
		total = float64(pairs)
	}

	levels, _ := m.Dims()
	var sum float64
	switch prop {
	case Dissimilarity:
		for i := 0; i < levels; i++ {
			for j := 0; j < levels; j++ {
				if v := m.At(i, j); v != 0 {
					sum += (v / total) * math.Abs(float64(i-j))
				}
			}
		}
	case Homogeneity:
		for i := 0; i < levels; i++ {
			for j := 0; j < levels; j++ {
				if v := m.At(i, j); v != 0 {
					d := float64(i - j)
					sum += (v / total) / (1 + d*d)
				}
			}
		}
	case Entropy:
		for i := 0; i < levels; i++ {
			for j := 0; j < levels; j++ {
				if v := m.At(i, j); v != 0 {
					p := v / total
					sum -= p * math.Log(p)
				}
			}
		}
	}
	return sum
}
