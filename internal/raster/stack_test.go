package raster

import "testing"

func TestNewStack(t *testing.T) {
	t.Parallel()

	t.Run("shape mismatch", func(t *testing.T) {
		t.Parallel()
		a, _ := NewGrid(2, 2)
		b, _ := NewGrid(2, 3)
		if _, err := NewStack(a, b); err == nil {
			t.Error("expected error for mismatched band shapes")
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		if _, err := NewStack(); err == nil {
			t.Error("expected error for empty stack")
		}
	})

	t.Run("accessors", func(t *testing.T) {
		t.Parallel()
		a, _ := NewGrid(2, 3)
		b, _ := NewGrid(2, 3)
		s, err := NewStack(a, b)
		if err != nil {
			t.Fatalf("NewStack failed: %v", err)
		}
		if s.NumBands() != 2 || s.Rows() != 2 || s.Cols() != 3 {
			t.Errorf("got %d bands %dx%d, want 2 bands 2x3", s.NumBands(), s.Rows(), s.Cols())
		}
		if s.Band(1) != b {
			t.Error("Band(1) should return the second band")
		}
	})
}

func TestStackAppend(t *testing.T) {
	t.Parallel()
	a, _ := NewGrid(2, 2)
	s, _ := NewStack(a)

	good, _ := NewGrid(2, 2)
	if err := s.Append(good); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if s.NumBands() != 2 {
		t.Errorf("NumBands = %d, want 2", s.NumBands())
	}

	bad, _ := NewGrid(3, 2)
	if err := s.Append(bad); err == nil {
		t.Error("expected error appending mismatched band")
	}
}
