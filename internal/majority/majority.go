// Package majority implements a per-pixel neighbourhood majority-vote
// smoothing filter for categorical rasters.
//
// For every pixel the odd-by-odd window is centred on the pixel and clamped
// to the grid bounds, so windows shrink at the borders rather than wrapping
// or padding. Two override rules run before any vote: a no-data centre stays
// no-data (missing-data footprints are preserved exactly), and a centre
// equal to the preserved class stays unchanged (open water must never be
// smoothed away by surrounding land-cover classes). Otherwise the pixel
// becomes the most frequent value in the window, counting the no-data
// sentinel like any other value; ties break to the smallest value, which
// keeps the output deterministic.
package majority

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/tellus-data/surface.report/internal/raster"
)

// ErrInvalidWindow reports window dimensions that are non-positive or not
// both odd. Odd dimensions guarantee an unambiguous single centre pixel.
var ErrInvalidWindow = errors.New("majority: window dimensions must be positive odd integers")

// ErrShapeMismatch reports an output buffer whose shape differs from the
// input.
var ErrShapeMismatch = errors.New("majority: output grid shape mismatch")

// DefaultPreserveClass is the category exempted from voting when Params
// leaves PreserveClass unset, matching the open-water class in the source
// land-cover maps.
const DefaultPreserveClass = 1

// Params configures a majority filter run.
type Params struct {
	// WindowRows and WindowCols give the neighbourhood extent. Both must
	// be positive and odd.
	WindowRows int
	WindowCols int

	// PreserveClass is the category whose pixels bypass the vote
	// unchanged. Zero means DefaultPreserveClass; set it to a value that
	// never occurs in the data to disable the rule.
	PreserveClass int

	// Workers caps the worker pool. Zero means runtime.NumCPU().
	Workers int
}

func (p Params) preserveClass() int {
	if p.PreserveClass == 0 {
		return DefaultPreserveClass
	}
	return p.PreserveClass
}

func (p Params) workers() int {
	if p.Workers <= 0 {
		return runtime.NumCPU()
	}
	return p.Workers
}

func (p Params) validate() error {
	if p.WindowRows <= 0 || p.WindowCols <= 0 {
		return ErrInvalidWindow
	}
	if p.WindowRows%2 == 0 || p.WindowCols%2 == 0 {
		return ErrInvalidWindow
	}
	return nil
}

// Filter runs the majority filter over src and returns a freshly allocated
// grid of identical shape, carrying over the no-data sentinel.
func Filter(ctx context.Context, src *raster.ClassGrid, p Params) (*raster.ClassGrid, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	out, err := raster.NewClassGrid(src.Rows, src.Cols)
	if err != nil {
		return nil, err
	}
	out.NoData = src.NoData
	if err := FilterInto(ctx, out, src, p); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterInto runs the majority filter over src, writing into dst, which must
// match src's shape. Rows are distributed over a fixed-size worker pool;
// every worker reads the shared input and writes only to its own output
// rows. Cancellation is coarse-grained: the context is checked between rows.
func FilterInto(ctx context.Context, dst *raster.ClassGrid, src *raster.ClassGrid, p Params) error {
	if err := p.validate(); err != nil {
		return err
	}
	if dst == nil || !dst.SameShape(src) {
		return ErrShapeMismatch
	}
	dst.NoData = src.NoData

	halfRows := (p.WindowRows - 1) / 2
	halfCols := (p.WindowCols - 1) / 2
	preserve := p.preserveClass()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counts := make(map[int]int, p.WindowRows*p.WindowCols)
			for i := range rows {
				if ctx.Err() != nil {
					continue
				}
				filterRow(dst, src, i, halfRows, halfCols, preserve, counts)
			}
		}()
	}

feed:
	for i := 0; i < src.Rows; i++ {
		select {
		case rows <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(rows)
	wg.Wait()

	return ctx.Err()
}

// filterRow computes output row i. counts is a per-worker scratch map,
// cleared between pixels.
func filterRow(dst, src *raster.ClassGrid, i, halfRows, halfCols, preserve int, counts map[int]int) {
	minRow := i - halfRows
	if minRow < 0 {
		minRow = 0
	}
	maxRow := i + halfRows
	if maxRow > src.Rows-1 {
		maxRow = src.Rows - 1
	}

	for j := 0; j < src.Cols; j++ {
		center := src.At(i, j)
		switch center {
		case src.NoData:
			dst.Set(i, j, src.NoData)
			continue
		case preserve:
			dst.Set(i, j, preserve)
			continue
		}

		minCol := j - halfCols
		if minCol < 0 {
			minCol = 0
		}
		maxCol := j + halfCols
		if maxCol > src.Cols-1 {
			maxCol = src.Cols - 1
		}

		clear(counts)
		for r := minRow; r <= maxRow; r++ {
			base := r * src.Cols
			for c := minCol; c <= maxCol; c++ {
				counts[src.Cells[base+c]]++
			}
		}

		best := center
		bestCount := -1
		for v, n := range counts {
			if n > bestCount || (n == bestCount && v < best) {
				best = v
				bestCount = n
			}
		}
		dst.Set(i, j, best)
	}
}
