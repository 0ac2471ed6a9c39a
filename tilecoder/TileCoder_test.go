package tilecoder

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestEncodeWorkedExample verifies tile computation on a single
// variable with range [0.3, 2.0], 13 bins, and three tilings offset by
// {0, 0.4, 0.8} fractions of a bin width. The state value 0.99 falls
// in bins {5, 4, 4} for the three tilings respectively.
func TestEncodeWorkedExample(t *testing.T) {
	coder, err := New(
		mat.NewVecDense(1, []float64{0.3}),
		mat.NewVecDense(1, []float64{2.0}),
		[]int{13},
		1,
		[][]float64{{0.0}, {0.4}, {0.8}},
	)
	if err != nil {
		t.Fatalf("could not construct tile coder: %v", err)
	}

	combos := coder.EncodeTiles(mat.NewVecDense(1, []float64{0.99}))
	expected := []int{5, 4, 4}

	for tiling := range expected {
		if combos[tiling] != expected[tiling] {
			t.Errorf("tiling %d: expected bin %d, got %d", tiling,
				expected[tiling], combos[tiling])
		}
	}
}

// TestEncodeCollisionFree checks that the feature indices produced for
// any (state, action) pair are pairwise distinct and lie within the
// feature vector bounds.
func TestEncodeCollisionFree(t *testing.T) {
	const numActions = 3

	coder, err := NewRandomOffsets(
		mat.NewVecDense(2, []float64{-1.2, -0.07}),
		mat.NewVecDense(2, []float64{0.6, 0.07}),
		[]int{8, 9},
		10,
		numActions,
		192382,
	)
	if err != nil {
		t.Fatalf("could not construct tile coder: %v", err)
	}

	states := []*mat.VecDense{
		mat.NewVecDense(2, []float64{-1.2, -0.07}),
		mat.NewVecDense(2, []float64{-0.5, 0.0}),
		mat.NewVecDense(2, []float64{0.6, 0.07}),
		mat.NewVecDense(2, []float64{0.33, -0.01}),
	}

	seen := make(map[int]bool)
	for _, state := range states {
		for action := 0; action < numActions; action++ {
			indices := coder.Encode(state, action)

			if len(indices) != coder.NumTilings() {
				t.Fatalf("expected %d indices, got %d", coder.NumTilings(),
					len(indices))
			}

			for k := range seen {
				delete(seen, k)
			}
			for _, index := range indices {
				if index < 0 || index >= coder.VecLength() {
					t.Errorf("index %d outside feature vector of length %d",
						index, coder.VecLength())
				}
				if seen[index] {
					t.Errorf("state %v action %d: duplicate index %d",
						state.RawVector().Data, action, index)
				}
				seen[index] = true
			}
		}
	}
}

// TestEncodeActionPartition checks that the same state encoded with
// different actions never shares a feature index.
func TestEncodeActionPartition(t *testing.T) {
	coder, err := NewRandomOffsets(
		mat.NewVecDense(1, []float64{0.0}),
		mat.NewVecDense(1, []float64{1.0}),
		[]int{4},
		3,
		2,
		42,
	)
	if err != nil {
		t.Fatalf("could not construct tile coder: %v", err)
	}

	state := mat.NewVecDense(1, []float64{0.5})
	first := coder.Encode(state, 0)
	second := coder.Encode(state, 1)

	for _, i := range first {
		for _, j := range second {
			if i == j {
				t.Errorf("actions 0 and 1 share feature index %d", i)
			}
		}
	}
}

// TestEncodeTabular checks that a single zero-offset tiling reduces to
// tabular discretization: states in the same bin share an index and
// states in different bins do not.
func TestEncodeTabular(t *testing.T) {
	coder, err := New(
		mat.NewVecDense(1, []float64{0.0}),
		mat.NewVecDense(1, []float64{1.0}),
		[]int{4},
		1,
		[][]float64{{0.0}},
	)
	if err != nil {
		t.Fatalf("could not construct tile coder: %v", err)
	}

	index := func(x float64) int {
		return coder.Encode(mat.NewVecDense(1, []float64{x}), 0)[0]
	}

	if index(0.1) != index(0.2) {
		t.Error("states in the same bin should share an index")
	}
	if index(0.1) == index(0.3) {
		t.Error("states in different bins should have distinct indices")
	}

	for i := 0; i < 4; i++ {
		x := 0.125 + 0.25*float64(i)
		if index(x) != i {
			t.Errorf("state %v: expected tabular index %d, got %d", x, i,
				index(x))
		}
	}
}

// TestEncodeClampsOutOfRange checks that states at or beyond the
// configured bounds still produce valid in-range indices for every
// tiling offset.
func TestEncodeClampsOutOfRange(t *testing.T) {
	coder, err := New(
		mat.NewVecDense(1, []float64{-1.0}),
		mat.NewVecDense(1, []float64{1.0}),
		[]int{5},
		2,
		[][]float64{{0.0}, {0.25}, {0.5}, {0.75}, {0.99}},
	)
	if err != nil {
		t.Fatalf("could not construct tile coder: %v", err)
	}

	states := []float64{-1.0, 1.0, -100.0, 100.0}
	for _, x := range states {
		for action := 0; action < 2; action++ {
			state := mat.NewVecDense(1, []float64{x})
			for _, index := range coder.Encode(state, action) {
				if index < 0 || index >= coder.VecLength() {
					t.Errorf("state %v action %d: index %d out of [0, %d)",
						x, action, index, coder.VecLength())
				}
			}
		}
	}

	// The minimum bound, offset upward in every tiling, must collapse
	// to tile 0 rather than a negative tile
	combos := coder.EncodeTiles(mat.NewVecDense(1, []float64{-1.0}))
	for tiling, combo := range combos {
		if combo != 0 {
			t.Errorf("tiling %d: minimum bound should fall in tile 0, "+
				"got %d", tiling, combo)
		}
	}
}

// TestNewRandomOffsetsDeterministic checks that offsets are frozen at
// construction and reproducible from the seed.
func TestNewRandomOffsetsDeterministic(t *testing.T) {
	minDims := mat.NewVecDense(2, []float64{-1.2, -0.07})
	maxDims := mat.NewVecDense(2, []float64{0.6, 0.07})

	first, err := NewRandomOffsets(minDims, maxDims, []int{8, 8}, 10, 3, 7)
	if err != nil {
		t.Fatalf("could not construct tile coder: %v", err)
	}
	second, err := NewRandomOffsets(minDims, maxDims, []int{8, 8}, 10, 3, 7)
	if err != nil {
		t.Fatalf("could not construct tile coder: %v", err)
	}

	state := mat.NewVecDense(2, []float64{-0.35, 0.01})
	for action := 0; action < 3; action++ {
		a := first.Encode(state, action)
		b := second.Encode(state, action)
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("same seed produced different encodings: %v != %v",
					a, b)
			}
		}
	}
}

func TestNewInvalidConfiguration(t *testing.T) {
	minDims := mat.NewVecDense(1, []float64{0.0})
	maxDims := mat.NewVecDense(1, []float64{1.0})

	if _, err := New(maxDims, minDims, []int{4}, 1,
		[][]float64{{0.0}}); err == nil {
		t.Error("expected error for max bound below min bound")
	}
	if _, err := New(minDims, maxDims, []int{0}, 1,
		[][]float64{{0.0}}); err == nil {
		t.Error("expected error for zero bins")
	}
	if _, err := New(minDims, maxDims, []int{4}, 1,
		[][]float64{}); err == nil {
		t.Error("expected error for zero tilings")
	}
	if _, err := New(minDims, maxDims, []int{4}, 0,
		[][]float64{{0.0}}); err == nil {
		t.Error("expected error for zero actions")
	}
	if _, err := New(minDims, maxDims, []int{4}, 1,
		[][]float64{{1.0}}); err == nil {
		t.Error("expected error for offset fraction outside [0, 1)")
	}
	if _, err := New(minDims, maxDims, []int{4, 4}, 1,
		[][]float64{{0.0, 0.0}}); err == nil {
		t.Error("expected error for mismatched bins length")
	}
}

func TestEncodePanicsOnDomainErrors(t *testing.T) {
	coder, err := New(
		mat.NewVecDense(1, []float64{0.0}),
		mat.NewVecDense(1, []float64{1.0}),
		[]int{4},
		2,
		[][]float64{{0.0}},
	)
	if err != nil {
		t.Fatalf("could not construct tile coder: %v", err)
	}

	assertPanics(t, "action out of range", func() {
		coder.Encode(mat.NewVecDense(1, []float64{0.5}), 2)
	})
	assertPanics(t, "dimension mismatch", func() {
		coder.Encode(mat.NewVecDense(2, []float64{0.5, 0.5}), 0)
	})
}

func assertPanics(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%v: expected panic", name)
		}
	}()
	f()
}

func BenchmarkEncode(b *testing.B) {
	coder, err := NewRandomOffsets(
		mat.NewVecDense(8, make([]float64, 8)),
		mat.NewVecDense(8, []float64{1, 1, 1, 1, 1, 1, 1, 1}),
		[]int{8, 8, 8, 8, 8, 8, 8, 8},
		8,
		3,
		12,
	)
	if err != nil {
		b.Fatalf("could not construct tile coder: %v", err)
	}

	y := mat.NewVecDense(8, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5})

	for i := 0; i < b.N; i++ {
		coder.Encode(y, 1)
	}
}
