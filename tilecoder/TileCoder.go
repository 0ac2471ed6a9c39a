// Package tilecoder implements CMAC tile coding of state vectors
package tilecoder

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/samuelfneumann/gocmac/utils/floatutils"
)

// TileCoder implements functionality for tile coding a state vector
// with respect to a discrete action. Tile coding takes a
// low-dimensional, continuous vector and changes it into a large,
// sparse binary representation. Instead of materializing that binary
// vector, the TileCoder returns the indices of its nonzero entries,
// one per tiling. For example, with two tilings:
//
//	[0.5, 0.1], action 1 -> [103, 257]
//
// Each tiling is a full grid over the bounded state space, offset from
// the grid origin by a fixed fraction of a tile width along each
// dimension. The offsets differ between tilings so that nearby states
// share some, but not all, active tiles, which is what produces
// generalization between states.
//
// Feature indices are action-dependent: the address space is
// partitioned so that indices from different tilings, different
// actions, or different tile combinations can never collide. The total
// number of features is (tilings x actions x tiles per tiling).
//
// This implementation uses dense tilings over the entire state space;
// hash-based index reduction is not used. Every tiling uses the same
// number of tiles per dimension.
type TileCoder struct {
	numTilings int
	numActions int
	minDims    mat.Vector
	bins       []int
	binLengths []float64
	offsets    [][]float64 // fractions of a bin length, in [0, 1)
	comboSpace int         // number of tile combinations per tiling
}

// New creates and returns a new TileCoder. The minDims and maxDims
// arguments are the bounds on each state dimension between which
// tilings are placed and should have the same length as vectors which
// will be tile coded. The bins argument determines how many tiles are
// placed along each dimension in every tiling.
//
// The offsets argument fixes the tiling offsets explicitly: one slice
// per tiling, one fraction per dimension, each in [0, 1). A fraction f
// shifts that tiling's grid by f tile widths along the dimension. The
// number of tilings equals len(offsets). To sample offsets randomly
// instead, use NewRandomOffsets.
func New(minDims, maxDims mat.Vector, bins []int, numActions int,
	offsets [][]float64) (*TileCoder, error) {
	if minDims.Len() != maxDims.Len() {
		return nil, fmt.Errorf("tilecoder: cannot specify minimum with "+
			"fewer dimensions than maximum: %d != %d", minDims.Len(),
			maxDims.Len())
	}
	if len(bins) != minDims.Len() {
		return nil, fmt.Errorf("tilecoder: there should be a single number "+
			"of bins for each dimension: \n\thave (%d) \n\twant (%d)",
			len(bins), minDims.Len())
	}
	if len(offsets) < 1 {
		return nil, fmt.Errorf("tilecoder: cannot have less than 1 tiling")
	}
	if numActions < 1 {
		return nil, fmt.Errorf("tilecoder: cannot have less than 1 action")
	}

	for i := 0; i < minDims.Len(); i++ {
		if maxDims.AtVec(i) <= minDims.AtVec(i) {
			return nil, fmt.Errorf("tilecoder: dimension %d: maximum bound "+
				"(%v) must exceed minimum bound (%v)", i, maxDims.AtVec(i),
				minDims.AtVec(i))
		}
		if bins[i] < 1 {
			return nil, fmt.Errorf("tilecoder: dimension %d: cannot have "+
				"less than 1 bin", i)
		}
	}

	for t, tilingOffsets := range offsets {
		if len(tilingOffsets) != minDims.Len() {
			return nil, fmt.Errorf("tilecoder: tiling %d: there should be "+
				"a single offset for each dimension: \n\thave (%d) "+
				"\n\twant (%d)", t, len(tilingOffsets), minDims.Len())
		}
		for i, offset := range tilingOffsets {
			if offset < 0.0 || offset >= 1.0 {
				return nil, fmt.Errorf("tilecoder: tiling %d: offset "+
					"fraction for dimension %d must be in [0, 1): have %v",
					t, i, offset)
			}
		}
	}

	// Calculate the length of bins along each dimension
	binLengths := make([]float64, minDims.Len())
	for i := 0; i < minDims.Len(); i++ {
		binLengths[i] = (maxDims.AtVec(i) - minDims.AtVec(i)) /
			float64(bins[i])
	}

	comboSpace := prod(bins)

	return &TileCoder{len(offsets), numActions, minDims, bins, binLengths,
		offsets, comboSpace}, nil
}

// NewRandomOffsets creates and returns a new TileCoder whose offset
// fractions are sampled uniformly from [0, 1) once, using the argument
// seed, and then frozen. Two TileCoders created with the same
// configuration and seed produce identical encodings.
func NewRandomOffsets(minDims, maxDims mat.Vector, bins []int, numTilings,
	numActions int, seed uint64) (*TileCoder, error) {
	if numTilings < 1 {
		return nil, fmt.Errorf("tilecoder: cannot have less than 1 tiling")
	}

	// Create RNG for uniform sampling of tiling offset fractions
	bounds := make([]r1.Interval, minDims.Len())
	for i := range bounds {
		bounds[i] = r1.Interval{Min: 0.0, Max: 1.0}
	}
	source := rand.NewSource(seed)
	u := distmv.NewUniform(bounds, source)
	sampler := samplemv.IID{Dist: u}

	// Sample offset fractions
	offsets := make([][]float64, numTilings)
	for t := 0; t < numTilings; t++ {
		samples := mat.NewDense(1, len(bounds), nil)
		sampler.Sample(samples)

		offsets[t] = samples.RawRowView(0)
	}

	return New(minDims, maxDims, bins, numActions, offsets)
}

// EncodeTiles returns, for each tiling, the index of the tile
// combination in which the state vector v falls. The returned slice
// has one entry per tiling, each in [0, ComboSpace()). State values
// outside the configured bounds are clamped to the boundary tiles, so
// every state maps to a defined tile.
func (t *TileCoder) EncodeTiles(v mat.Vector) []int {
	if v.Len() != t.minDims.Len() {
		panic(fmt.Sprintf("encodeTiles: state should have %d dimensions, "+
			"have %d", t.minDims.Len(), v.Len()))
	}

	combos := make([]int, t.numTilings)
	for tiling := 0; tiling < t.numTilings; tiling++ {
		index := 0
		stride := 1

		for i := len(t.bins) - 1; i > -1; i-- {
			// Offset the tiling
			data := v.AtVec(i) - t.offsets[tiling][i]*t.binLengths[i]

			// Calculate the index of the tile along the current
			// dimension in which the state falls
			tile := math.Floor((data - t.minDims.AtVec(i)) / t.binLengths[i])

			// Clip tile to within tiling bounds. Values pushed below
			// tile 0 by the offset collapse to tile 0.
			tile = floatutils.Clip(tile, 0.0, float64(t.bins[i]-1))

			index += int(tile) * stride
			stride *= t.bins[i]
		}
		combos[tiling] = index
	}
	return combos
}

// Index returns the feature index of tile combination combo of tiling
// number tiling, for the argument action. Indices from different
// tilings, actions, or tile combinations never collide.
func (t *TileCoder) Index(tiling, action, combo int) int {
	t.checkAction(action)
	return (tiling*t.numActions+action)*t.comboSpace + combo
}

// Encode returns the nonzero feature indices of the tile-coded
// representation of state vector v with respect to the argument
// action: exactly one index per tiling, each a valid position in a
// weight vector of length VecLength(). Encode is a pure function of
// its arguments and the frozen TileCoder configuration.
func (t *TileCoder) Encode(v mat.Vector, action int) []int {
	t.checkAction(action)

	indices := t.EncodeTiles(v)
	for tiling, combo := range indices {
		indices[tiling] = t.Index(tiling, action, combo)
	}
	return indices
}

// VecLength returns the number of features in a tile-coded
// representation over all tilings and actions
func (t *TileCoder) VecLength() int {
	return t.numTilings * t.numActions * t.comboSpace
}

// ComboSpace returns the number of tile combinations in a single
// tiling
func (t *TileCoder) ComboSpace() int {
	return t.comboSpace
}

// NumTilings returns the number of tilings the TileCoder uses for
// encoding state vectors
func (t *TileCoder) NumTilings() int {
	return t.numTilings
}

// NumActions returns the number of actions the TileCoder encodes for
func (t *TileCoder) NumActions() int {
	return t.numActions
}

// String returns a string representation of a *TileCoder
func (t *TileCoder) String() string {
	return fmt.Sprintf("Tilings: %d  |  Actions: %d  |  Tiles: %v",
		t.numTilings, t.numActions, t.bins)
}

func (t *TileCoder) checkAction(action int) {
	if action < 0 || action >= t.numActions {
		panic(fmt.Sprintf("tilecoder: illegal action %d ∉ [0, %d)",
			action, t.numActions))
	}
}

// prod calculates the product of all integers in a []int
func prod(i []int) int {
	prod := 1
	for _, v := range i {
		prod *= v
	}
	return prod
}
