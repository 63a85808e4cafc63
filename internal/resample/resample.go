// Package resample changes the resolution of in-memory raster grids and
// rescales the accompanying affine transform so the resampled grid covers
// the same spatial extent.
package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/tellus-data/surface.report/internal/raster"
)

// Method selects the resampling kernel.
type Method int

const (
	// Nearest picks the nearest source sample. Suitable for categorical
	// data and fast previews.
	Nearest Method = iota
	// Bilinear blends the four surrounding source samples. NaN in any
	// contributing sample propagates to the output.
	Bilinear
	// Average takes the mean of the source footprint covered by each
	// output pixel, skipping NaN. The usual choice for downsampling.
	Average
)

// ErrInvalidFactor reports a non-positive scale factor or one that collapses
// the grid to zero size.
var ErrInvalidFactor = errors.New("resample: scale factor must be positive and keep at least one pixel")

// String returns the method name used in configuration and logs.
func (m Method) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case Average:
		return "average"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod converts a method name to its Method value.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "nearest":
		return Nearest, nil
	case "bilinear":
		return Bilinear, nil
	case "average":
		return Average, nil
	}
	return 0, fmt.Errorf("resample: unknown method %q (valid: nearest, bilinear, average)", name)
}

// Grid resamples src by factor: factor > 1 upsamples, factor < 1 downsamples.
// Output dimensions are truncated to int(rows*factor) x int(cols*factor).
func Grid(src *raster.Grid, factor float64, m Method) (*raster.Grid, error) {
	if factor <= 0 {
		return nil, ErrInvalidFactor
	}
	outRows := int(float64(src.Rows) * factor)
	outCols := int(float64(src.Cols) * factor)
	if outRows < 1 || outCols < 1 {
		return nil, ErrInvalidFactor
	}

	out, err := raster.NewGrid(outRows, outCols)
	if err != nil {
		return nil, err
	}

	switch m {
	case Nearest:
		nearest(out, src)
	case Bilinear:
		bilinear(out, src)
	case Average:
		average(out, src)
	default:
		return nil, fmt.Errorf("resample: unknown method %d", m)
	}
	return out, nil
}

// GridWithGeoref resamples src and returns the georeference with the pixel
// size rescaled by the old-to-new shape ratio, as a raster writer expects.
func GridWithGeoref(src *raster.Grid, georef raster.Georef, factor float64, m Method) (*raster.Grid, raster.Georef, error) {
	out, err := Grid(src, factor, m)
	if err != nil {
		return nil, raster.Georef{}, err
	}
	scaled := raster.Georef{
		Transform: georef.Transform.Scale(
			float64(src.Cols)/float64(out.Cols),
			float64(src.Rows)/float64(out.Rows),
		),
		CRS: georef.CRS,
	}
	return out, scaled, nil
}

func nearest(out, src *raster.Grid) {
	for r := 0; r < out.Rows; r++ {
		sr := r * src.Rows / out.Rows
		for c := 0; c < out.Cols; c++ {
			sc := c * src.Cols / out.Cols
			out.Set(r, c, src.At(sr, sc))
		}
	}
}

func bilinear(out, src *raster.Grid) {
	rScale := float64(src.Rows) / float64(out.Rows)
	cScale := float64(src.Cols) / float64(out.Cols)
	for r := 0; r < out.Rows; r++ {
		// Centre-aligned source coordinate, clamped so border output
		// pixels take the edge sample instead of extrapolating.
		fr := clampf((float64(r)+0.5)*rScale-0.5, 0, float64(src.Rows-1))
		r0 := int(math.Floor(fr))
		dr := fr - float64(r0)
		r1 := clamp(r0+1, 0, src.Rows-1)
		for c := 0; c < out.Cols; c++ {
			fc := clampf((float64(c)+0.5)*cScale-0.5, 0, float64(src.Cols-1))
			c0 := int(math.Floor(fc))
			dc := fc - float64(c0)
			c1 := clamp(c0+1, 0, src.Cols-1)

			top := src.At(r0, c0)*(1-dc) + src.At(r0, c1)*dc
			bot := src.At(r1, c0)*(1-dc) + src.At(r1, c1)*dc
			out.Set(r, c, top*(1-dr)+bot*dr)
		}
	}
}

func average(out, src *raster.Grid) {
	for r := 0; r < out.Rows; r++ {
		r0 := r * src.Rows / out.Rows
		r1 := (r + 1) * src.Rows / out.Rows
		if r1 <= r0 {
			r1 = r0 + 1
		}
		for c := 0; c < out.Cols; c++ {
			c0 := c * src.Cols / out.Cols
			c1 := (c + 1) * src.Cols / out.Cols
			if c1 <= c0 {
				c1 = c0 + 1
			}

			var sum float64
			var n int
			for sr := r0; sr < r1; sr++ {
				for sc := c0; sc < c1; sc++ {
					v := src.At(sr, sc)
					if math.IsNaN(v) {
						continue
					}
					sum += v
					n++
				}
			}
			if n == 0 {
				out.Set(r, c, math.NaN())
				continue
			}
			out.Set(r, c, sum/float64(n))
		}
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
