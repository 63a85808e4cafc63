package texture

import (
	"math"
	"testing"
)

func TestQuantize(t *testing.T) {
	t.Parallel()

	t.Run("rescales by max", func(t *testing.T) {
		t.Parallel()
		// scale = (32-1)/10 = 3.1; 5*3.1 = 15.5 rounds half away from
		// zero to 16.
		scratch := []float64{10, 5, 0}
		q := make([]int, 3)
		if !quantize(scratch, q, 32) {
			t.Fatal("quantize reported degenerate window")
		}
		want := []int{31, 16, 0}
		for i := range want {
			if q[i] != want[i] {
				t.Errorf("q[%d] = %d, want %d", i, q[i], want[i])
			}
		}
	})

	t.Run("does not mutate the scratch window", func(t *testing.T) {
		t.Parallel()
		scratch := []float64{4, 2}
		q := make([]int, 2)
		quantize(scratch, q, 8)
		if scratch[0] != 4 || scratch[1] != 2 {
			t.Errorf("scratch mutated to %v", scratch)
		}
	})

	t.Run("all zero is degenerate", func(t *testing.T) {
		t.Parallel()
		if quantize([]float64{0, 0, 0}, make([]int, 3), 32) {
			t.Error("all-zero window must be degenerate")
		}
	})

	t.Run("all NaN is degenerate", func(t *testing.T) {
		t.Parallel()
		nan := math.NaN()
		if quantize([]float64{nan, nan}, make([]int, 2), 32) {
			t.Error("all-NaN window must be degenerate")
		}
	})

	t.Run("NaN samples map to level zero", func(t *testing.T) {
		t.Parallel()
		q := make([]int, 2)
		if !quantize([]float64{math.NaN(), 8}, q, 4) {
			t.Fatal("window with a finite maximum must quantize")
		}
		if q[0] != 0 || q[1] != 3 {
			t.Errorf("q = %v, want [0 3]", q)
		}
	})

	t.Run("clamps to level range", func(t *testing.T) {
		t.Parallel()
		q := make([]int, 2)
		if !quantize([]float64{-5, 10}, q, 4) {
			t.Fatal("unexpected degenerate")
		}
		if q[0] != 0 {
			t.Errorf("negative sample quantized to %d, want clamp to 0", q[0])
		}
	})
}

func TestCoOccurrence(t *testing.T) {
	t.Parallel()

	// 2x2 checkerboard at 2 levels:
	//   0 1
	//   1 0
	q := []int{0, 1, 1, 0}

	t.Run("horizontal", func(t *testing.T) {
		t.Parallel()
		m, pairs := coOccurrence(q, 2, 2, 2, 0, 1, false)
		if pairs != 4 {
			t.Fatalf("pairs = %d, want 4", pairs)
		}
		if m.At(0, 1) != 2 || m.At(1, 0) != 2 {
			t.Errorf("off-diagonal counts = %v/%v, want 2/2", m.At(0, 1), m.At(1, 0))
		}
		if m.At(0, 0) != 0 || m.At(1, 1) != 0 {
			t.Errorf("diagonal counts = %v/%v, want 0/0", m.At(0, 0), m.At(1, 1))
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		t.Parallel()
		// 45° offset pairs (0,0)-(1,1): both level 0.
		m, pairs := coOccurrence(q, 2, 2, 2, 1, 1, false)
		if pairs != 2 {
			t.Fatalf("pairs = %d, want 2", pairs)
		}
		if m.At(0, 0) != 2 {
			t.Errorf("m(0,0) = %v, want 2", m.At(0, 0))
		}
	})

	t.Run("normalized sums to one", func(t *testing.T) {
		t.Parallel()
		m, _ := coOccurrence(q, 2, 2, 2, 0, 1, true)
		var sum float64
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				sum += m.At(i, j)
			}
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("normalized matrix sums to %v, want 1", sum)
		}
	})

	t.Run("offset never fits", func(t *testing.T) {
		t.Parallel()
		// Vertical offset in a single-row window.
		_, pairs := coOccurrence([]int{0, 1, 0}, 1, 3, 2, 1, 0, false)
		if pairs != 0 {
			t.Errorf("pairs = %d, want 0", pairs)
		}
	})
}

func TestReduce(t *testing.T) {
	t.Parallel()
	q := []int{0, 1, 1, 0}

	// Horizontal checkerboard GLCM: p(0,1) = p(1,0) = 0.5.
	t.Run("raw counts", func(t *testing.T) {
		t.Parallel()
		m, pairs := coOccurrence(q, 2, 2, 2, 0, 1, false)
		if got := reduce(Dissimilarity, m, pairs, false); math.Abs(got-1) > 1e-12 {
			t.Errorf("dissimilarity = %v, want 1", got)
		}
		if got := reduce(Homogeneity, m, pairs, false); math.Abs(got-0.5) > 1e-12 {
			t.Errorf("homogeneity = %v, want 0.5", got)
		}
		if got := reduce(Entropy, m, pairs, false); math.Abs(got-math.Ln2) > 1e-12 {
			t.Errorf("entropy = %v, want ln 2", got)
		}
	})

	// The Normed flag changes storage, not reduction results.
	t.Run("normalized matches raw", func(t *testing.T) {
		t.Parallel()
		mRaw, pairs := coOccurrence(q, 2, 2, 2, 0, 1, false)
		mNorm, _ := coOccurrence(q, 2, 2, 2, 0, 1, true)
		for _, prop := range []Property{Dissimilarity, Homogeneity, Entropy} {
			raw := reduce(prop, mRaw, pairs, false)
			norm := reduce(prop, mNorm, pairs, true)
			if math.Abs(raw-norm) > 1e-12 {
				t.Errorf("%s: raw %v != normalized %v", prop, raw, norm)
			}
		}
	})

	t.Run("no pairs reduce to zero", func(t *testing.T) {
		t.Parallel()
		m, pairs := coOccurrence([]int{0}, 1, 1, 2, 0, 1, false)
		for _, prop := range []Property{Dissimilarity, Homogeneity, Entropy} {
			if got := reduce(prop, m, pairs, false); got != 0 {
				t.Errorf("%s over empty matrix = %v, want 0", prop, got)
			}
		}
	})
}
