// Package texture computes gray-level co-occurrence (GLCM) texture
// statistics over disjoint tiles of a raster grid.
//
// The input grid is partitioned row-major into wy x wx tiles; partial tiles
// at the bottom and right borders are processed with whatever rows and
// columns remain. Each tile is copied into a per-worker scratch buffer
// before quantization so the shared input is never mutated, quantized into
// GrayLevels integer levels, reduced through four-orientation co-occurrence
// matrices, and the orientation scalars are averaged into one output cell.
//
// A tile whose maximum value is zero cannot be quantized. The default
// policy (DegenerateSentinel) writes NaN to that output cell and continues;
// DegenerateFail aborts on the first such tile instead.
package texture

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/tellus-data/surface.report/internal/monitoring"
	"github.com/tellus-data/surface.report/internal/raster"
)

// DefaultGrayLevels is the quantization depth used when Params leaves
// GrayLevels unset.
const DefaultGrayLevels = 32

// DegeneratePolicy selects how a zero-maximum tile is handled.
type DegeneratePolicy int

const (
	// DegenerateSentinel writes NaN to the affected output cell and
	// continues with the remaining tiles.
	DegenerateSentinel DegeneratePolicy = iota
	// DegenerateFail aborts the whole computation with a
	// *DegenerateWindowError on the first degenerate tile.
	DegenerateFail
)

// Params configures a texture computation.
type Params struct {
	// WindowRows and WindowCols give the tile extent. Both must be
	// positive; tiles never overlap.
	WindowRows int
	WindowCols int

	// GrayLevels is the quantization depth L; quantized levels lie in
	// [0, L-1]. Zero means DefaultGrayLevels. Must be at least 2.
	GrayLevels int

	// Normed stores each orientation's co-occurrence matrix scaled to sum
	// to 1. Reductions always operate on the probability mass, so this
	// only affects matrices observed through the package internals.
	Normed bool

	// Degenerate selects the zero-maximum tile policy.
	Degenerate DegeneratePolicy

	// Workers caps the worker pool. Zero means runtime.NumCPU().
	Workers int
}

// grayLevels returns the effective quantization depth.
func (p Params) grayLevels() int {
	if p.GrayLevels == 0 {
		return DefaultGrayLevels
	}
	return p.GrayLevels
}

// workers returns the effective pool size.
func (p Params) workers() int {
	if p.Workers <= 0 {
		return runtime.NumCPU()
	}
	return p.Workers
}

// validate reports precondition failures before any computation starts.
func (p Params) validate() error {
	if p.WindowRows <= 0 || p.WindowCols <= 0 {
		return ErrInvalidWindow
	}
	if p.grayLevels() < 2 {
		return ErrInvalidGrayLevels
	}
	return nil
}

// OutputShape returns the tile-grid dimensions ceil(rows/wy) x ceil(cols/wx)
// for an input of the given shape.
func (p Params) OutputShape(rows, cols int) (int, int) {
	return (rows + p.WindowRows - 1) / p.WindowRows,
		(cols + p.WindowCols - 1) / p.WindowCols
}

// Compute runs the texture engine over img and returns a freshly allocated
// output grid of shape OutputShape(img.Rows, img.Cols).
func Compute(ctx context.Context, img *raster.Grid, prop Property, p Params) (*raster.Grid, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	outRows, outCols := p.OutputShape(img.Rows, img.Cols)
	out, err := raster.NewGrid(outRows, outCols)
	if err != nil {
		return nil, err
	}
	if err := ComputeInto(ctx, out, img, prop, p); err != nil {
		return nil, err
	}
	return out, nil
}

// ComputeInto runs the texture engine over img, writing per-tile scalars
// into dst. dst must already have shape OutputShape(img.Rows, img.Cols).
// Tiles are distributed over a fixed-size worker pool; each worker reads
// only its own window slice and writes a disjoint output cell. Cancellation
// is coarse-grained: the context is checked between tiles, never mid-tile.
func ComputeInto(ctx context.Context, dst *raster.Grid, img *raster.Grid, prop Property, p Params) error {
	if err := p.validate(); err != nil {
		return err
	}
	if !prop.Valid() {
		return ErrUnsupportedProperty
	}
	outRows, outCols := p.OutputShape(img.Rows, img.Cols)
	if dst == nil || dst.Rows != outRows || dst.Cols != outCols {
		return ErrShapeMismatch
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type tile struct{ ti, tj int }
	jobs := make(chan tile)

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		firstErr   error
		degenerate atomic.Int64
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	levels := p.grayLevels()
	for w := 0; w < p.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scratch := make([]float64, p.WindowRows*p.WindowCols)
			quantized := make([]int, p.WindowRows*p.WindowCols)
			for t := range jobs {
				if ctx.Err() != nil {
					continue
				}
				v, err := tileValue(img, t.ti, t.tj, prop, p, levels, scratch, quantized)
				if err != nil {
					var degErr *DegenerateWindowError
					if errors.As(err, &degErr) && p.Degenerate == DegenerateSentinel {
						degenerate.Add(1)
						dst.Set(t.ti, t.tj, math.NaN())
						continue
					}
					fail(err)
					continue
				}
				dst.Set(t.ti, t.tj, v)
			}
		}()
	}

feed:
	for ti := 0; ti < outRows; ti++ {
		for tj := 0; tj < outCols; tj++ {
			select {
			case jobs <- tile{ti, tj}:
			case <-ctx.Done():
				break feed
			}
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if n := degenerate.Load(); n > 0 {
		monitoring.Logf("texture: %d degenerate tile(s) set to NaN (property=%s window=%dx%d)",
			n, prop, p.WindowRows, p.WindowCols)
	}
	return nil
}

// tileValue computes the averaged four-orientation texture scalar for tile
// (ti, tj). The tile is copied into scratch before quantization so the
// shared input grid is never written.
func tileValue(img *raster.Grid, ti, tj int, prop Property, p Params, levels int, scratch []float64, quantized []int) (float64, error) {
	r0 := ti * p.WindowRows
	c0 := tj * p.WindowCols
	h := p.WindowRows
	if r0+h > img.Rows {
		h = img.Rows - r0
	}
	w := p.WindowCols
	if c0+w > img.Cols {
		w = img.Cols - c0
	}

	win := scratch[:h*w]
	for r := 0; r < h; r++ {
		srcRow := img.Data[img.Idx(r0+r, c0) : img.Idx(r0+r, c0)+w]
		copy(win[r*w:(r+1)*w], srcRow)
	}

	q := quantized[:h*w]
	if !quantize(win, q, levels) {
		return 0, &DegenerateWindowError{TileRow: ti, TileCol: tj}
	}

	var sum float64
	for _, off := range orientations {
		m, pairs := coOccurrence(q, h, w, levels, off[0], off[1], p.Normed)
		sum += reduce(prop, m, pairs, p.Normed)
	}
	return sum / float64(len(orientations)), nil
}
