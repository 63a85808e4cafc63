// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tellus-data/surface.report/internal/raster"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// MustGrid builds a grid from row-major values, failing the test on a shape
// mismatch.
func MustGrid(t *testing.T, rows, cols int, values ...float64) *raster.Grid {
	t.Helper()
	g, err := raster.GridFromSlice(rows, cols, values)
	if err != nil {
		t.Fatalf("bad test grid: %v", err)
	}
	return g
}

// MustClassGrid builds a categorical grid from row-major values, failing the
// test on a shape mismatch.
func MustClassGrid(t *testing.T, rows, cols int, values ...int) *raster.ClassGrid {
	t.Helper()
	g, err := raster.ClassGridFromSlice(rows, cols, values)
	if err != nil {
		t.Fatalf("bad test class grid: %v", err)
	}
	return g
}

// AssertGridsEqual compares two grids exactly, treating NaN as equal to NaN.
func AssertGridsEqual(t *testing.T, want, got *raster.Grid) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

// AssertGridsAlmostEqual compares two grids within tol, treating NaN as
// equal to NaN.
func AssertGridsAlmostEqual(t *testing.T, want, got *raster.Grid, tol float64) {
	t.Helper()
	opts := cmp.Options{cmpopts.EquateNaNs(), cmpopts.EquateApprox(0, tol)}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

// AssertClassGridsEqual compares two categorical grids exactly.
func AssertClassGridsEqual(t *testing.T, want, got *raster.ClassGrid) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("class grid mismatch (-want +got):\n%s", diff)
	}
}
