// Package raster provides the in-memory data model for windowed raster
// analysis: dense row-major grids of continuous samples, categorical grids
// with a no-data sentinel, band stacks, and the affine georeference that
// collaborating loaders and writers carry alongside the pixel data.
//
// Row 0 is the top row and column 0 is the leftmost column. The analysis
// engines borrow caller-provided grids for the duration of a call and never
// retain a reference afterwards.
package raster

import (
	"fmt"
	"math"
)

// Grid is a dense row-major raster of float64 samples. NaN marks missing
// data. Data has length Rows*Cols; sample (r,c) lives at Data[r*Cols+c].
type Grid struct {
	Rows int
	Cols int
	Data []float64
}

// NewGrid allocates a zero-filled grid. Returns an error for non-positive
// dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("raster: grid dimensions must be positive, got %dx%d", rows, cols)
	}
	return &Grid{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}, nil
}

// GridFromSlice wraps an existing row-major buffer. The grid takes ownership
// of the slice; len(data) must equal rows*cols.
func GridFromSlice(rows, cols int, data []float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("raster: grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("raster: buffer length %d does not match %dx%d grid", len(data), rows, cols)
	}
	return &Grid{Rows: rows, Cols: cols, Data: data}, nil
}

// Idx converts a (row, col) pair to the flat Data index.
func (g *Grid) Idx(r, c int) int { return r*g.Cols + c }

// At returns the sample at (r, c).
func (g *Grid) At(r, c int) float64 { return g.Data[r*g.Cols+c] }

// Set stores v at (r, c).
func (g *Grid) Set(r, c int, v float64) { g.Data[r*g.Cols+c] = v }

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.Data))
	copy(data, g.Data)
	return &Grid{Rows: g.Rows, Cols: g.Cols, Data: data}
}

// SameShape reports whether g and other have identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	return other != nil && g.Rows == other.Rows && g.Cols == other.Cols
}

// MinMax returns the minimum and maximum finite samples. NaN samples are
// skipped. ok is false when the grid contains no finite sample.
func (g *Grid) MinMax() (min, max float64, ok bool) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range g.Data {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

// Mean returns the mean of the finite samples, ignoring NaN. Returns 0 for a
// grid with no finite sample.
func (g *Grid) Mean() float64 {
	var sum float64
	var n int
	for _, v := range g.Data {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// HasNoData reports whether any sample is NaN.
func (g *Grid) HasNoData() bool {
	for _, v := range g.Data {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
