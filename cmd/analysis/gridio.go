package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/tellus-data/surface.report/internal/raster"
	"github.com/tellus-data/surface.report/internal/security"
)

// readGridCSV loads a float grid from CSV. Empty fields and "nan" become
// NaN.
func readGridCSV(path string) (*raster.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty grid", path)
	}

	rows := len(records)
	cols := len(records[0])
	data := make([]float64, 0, rows*cols)
	for i, record := range records {
		if len(record) != cols {
			return nil, fmt.Errorf("%s: row %d has %d fields, expected %d", path, i, len(record), cols)
		}
		for j, field := range record {
			if field == "" || field == "nan" || field == "NaN" {
				data = append(data, math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad value at row %d col %d: %w", path, i, j, err)
			}
			data = append(data, v)
		}
	}
	return raster.GridFromSlice(rows, cols, data)
}

// writeGridCSV writes a float grid as CSV, emitting "nan" for NaN samples.
func writeGridCSV(path string, g *raster.Grid) error {
	if err := security.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := make([]string, g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			v := g.At(r, c)
			if math.IsNaN(v) {
				record[c] = "nan"
				continue
			}
			record[c] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// readClassGridCSV loads a categorical grid from CSV. Empty fields become
// the no-data sentinel.
func readClassGridCSV(path string) (*raster.ClassGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty grid", path)
	}

	rows := len(records)
	cols := len(records[0])
	cells := make([]int, 0, rows*cols)
	for i, record := range records {
		if len(record) != cols {
			return nil, fmt.Errorf("%s: row %d has %d fields, expected %d", path, i, len(record), cols)
		}
		for j, field := range record {
			if field == "" {
				cells = append(cells, raster.DefaultNoData)
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%s: bad class at row %d col %d: %w", path, i, j, err)
			}
			cells = append(cells, v)
		}
	}
	return raster.ClassGridFromSlice(rows, cols, cells)
}

// writeClassGridCSV writes a categorical grid as CSV.
func writeClassGridCSV(path string, g *raster.ClassGrid) error {
	if err := security.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := make([]string, g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			record[c] = strconv.Itoa(g.At(r, c))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
