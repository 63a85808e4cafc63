// Package indices derives spectral band indices and cross-band statistics
// from a band-stacked raster.
//
// The index formulas target MODIS-2 band ordering (band 0 = NIR, band 1 =
// red, band 2 = green) and will produce wrong values for other sensors.
// Indices are scaled by 1000 to bring them onto the same magnitude as the
// raw band values.
package indices

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tellus-data/surface.report/internal/raster"
)

// IndexScale brings the unit-range ratios onto the raw band magnitude.
const IndexScale = 1000

// ErrTooFewBands reports a stack without the three bands the index formulas
// consume.
var ErrTooFewBands = errors.New("indices: stack must have at least 3 bands")

// ErrNoValidPixels reports a stack with no pixel valid across all bands.
var ErrNoValidPixels = errors.New("indices: no pixel is valid in every band")

// AddIndices appends NDVI, NDWI and GVI bands to the stack, in that order.
// A pixel whose denominator is zero gets NaN rather than a silent infinity.
func AddIndices(s *raster.Stack) error {
	if s.NumBands() < 3 {
		return ErrTooFewBands
	}

	b0, b1, b2 := s.Band(0), s.Band(1), s.Band(2)
	ndvi, err := raster.NewGrid(s.Rows(), s.Cols())
	if err != nil {
		return err
	}
	ndwi, err := raster.NewGrid(s.Rows(), s.Cols())
	if err != nil {
		return err
	}
	gvi, err := raster.NewGrid(s.Rows(), s.Cols())
	if err != nil {
		return err
	}

	for i := range b0.Data {
		ndvi.Data[i] = normalizedDiff(b0.Data[i], b1.Data[i])
		ndwi.Data[i] = normalizedDiff(b2.Data[i], b0.Data[i])
		gvi.Data[i] = normalizedDiff(b0.Data[i], b2.Data[i])
	}
	return s.Append(ndvi, ndwi, gvi)
}

// normalizedDiff is the scaled (a-b)/(a+b) ratio underlying all three
// indices.
func normalizedDiff(a, b float64) float64 {
	sum := a + b
	if sum == 0 {
		return math.NaN()
	}
	return (a - b) / sum * IndexScale
}

// CorrelationMatrix computes the Pearson correlation matrix across the
// stack's bands, one variable per band, one observation per pixel. Pixels
// that are NaN in any band are excluded from every variable so the
// observation rows stay aligned.
func CorrelationMatrix(s *raster.Stack) (*mat.SymDense, error) {
	bands := s.NumBands()
	size := s.Rows() * s.Cols()

	valid := make([]bool, size)
	n := 0
	for i := 0; i < size; i++ {
		ok := true
		for b := 0; b < bands; b++ {
			if math.IsNaN(s.Band(b).Data[i]) {
				ok = false
				break
			}
		}
		valid[i] = ok
		if ok {
			n++
		}
	}
	if n == 0 {
		return nil, ErrNoValidPixels
	}

	obs := mat.NewDense(n, bands, nil)
	row := 0
	for i := 0; i < size; i++ {
		if !valid[i] {
			continue
		}
		for b := 0; b < bands; b++ {
			obs.Set(row, b, s.Band(b).Data[i])
		}
		row++
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, obs, nil)
	return &corr, nil
}
