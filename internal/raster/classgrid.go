package raster

import "fmt"

// DefaultNoData is the categorical no-data sentinel used when a ClassGrid is
// built without an explicit one.
const DefaultNoData = -9999

// ClassGrid is a dense row-major raster of discrete class values, as produced
// by a land-cover classifier. NoData is the sentinel marking missing cells;
// it participates in neighbourhood counting like any other value so that
// missing-data footprints are observable to the caller.
type ClassGrid struct {
	Rows   int
	Cols   int
	NoData int
	Cells  []int
}

// NewClassGrid allocates a zero-filled categorical grid with the default
// no-data sentinel. Returns an error for non-positive dimensions.
func NewClassGrid(rows, cols int) (*ClassGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("raster: class grid dimensions must be positive, got %dx%d", rows, cols)
	}
	return &ClassGrid{
		Rows:   rows,
		Cols:   cols,
		NoData: DefaultNoData,
		Cells:  make([]int, rows*cols),
	}, nil
}

// ClassGridFromSlice wraps an existing row-major class buffer. The grid takes
// ownership of the slice; len(cells) must equal rows*cols.
func ClassGridFromSlice(rows, cols int, cells []int) (*ClassGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("raster: class grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("raster: buffer length %d does not match %dx%d grid", len(cells), rows, cols)
	}
	return &ClassGrid{Rows: rows, Cols: cols, NoData: DefaultNoData, Cells: cells}, nil
}

// Idx converts a (row, col) pair to the flat Cells index.
func (g *ClassGrid) Idx(r, c int) int { return r*g.Cols + c }

// At returns the class at (r, c).
func (g *ClassGrid) At(r, c int) int { return g.Cells[r*g.Cols+c] }

// Set stores v at (r, c).
func (g *ClassGrid) Set(r, c int, v int) { g.Cells[r*g.Cols+c] = v }

// Clone returns a deep copy of the grid.
func (g *ClassGrid) Clone() *ClassGrid {
	cells := make([]int, len(g.Cells))
	copy(cells, g.Cells)
	return &ClassGrid{Rows: g.Rows, Cols: g.Cols, NoData: g.NoData, Cells: cells}
}

// SameShape reports whether g and other have identical dimensions.
func (g *ClassGrid) SameShape(other *ClassGrid) bool {
	return other != nil && g.Rows == other.Rows && g.Cols == other.Cols
}
