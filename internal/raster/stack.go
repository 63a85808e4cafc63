package raster

import "fmt"

// Stack is a band-stacked raster: a slice of grids sharing one shape, in the
// band order delivered by the loading collaborator.
type Stack struct {
	Bands []*Grid
}

// NewStack builds a stack from grids, verifying that every band has the same
// shape.
func NewStack(bands ...*Grid) (*Stack, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("raster: stack requires at least one band")
	}
	first := bands[0]
	if first == nil {
		return nil, fmt.Errorf("raster: stack band 0 is nil")
	}
	for i, b := range bands[1:] {
		if b == nil {
			return nil, fmt.Errorf("raster: stack band %d is nil", i+1)
		}
		if !first.SameShape(b) {
			return nil, fmt.Errorf("raster: stack band %d shape %dx%d does not match band 0 shape %dx%d",
				i+1, b.Rows, b.Cols, first.Rows, first.Cols)
		}
	}
	return &Stack{Bands: bands}, nil
}

// NumBands returns the number of bands in the stack.
func (s *Stack) NumBands() int { return len(s.Bands) }

// Rows returns the shared row count.
func (s *Stack) Rows() int { return s.Bands[0].Rows }

// Cols returns the shared column count.
func (s *Stack) Cols() int { return s.Bands[0].Cols }

// Band returns band i.
func (s *Stack) Band(i int) *Grid { return s.Bands[i] }

// Append adds bands to the stack, verifying shape.
func (s *Stack) Append(bands ...*Grid) error {
	for i, b := range bands {
		if b == nil {
			return fmt.Errorf("raster: appended band %d is nil", i)
		}
		if !s.Bands[0].SameShape(b) {
			return fmt.Errorf("raster: appended band %d shape %dx%d does not match stack shape %dx%d",
				i, b.Rows, b.Cols, s.Rows(), s.Cols())
		}
	}
	s.Bands = append(s.Bands, bands...)
	return nil
}
