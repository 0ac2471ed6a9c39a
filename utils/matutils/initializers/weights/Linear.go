package weights

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LinearUV initializes a vector of linear function approximation
// weights, with each weight drawn independently from a univariate
// distribution.
type LinearUV struct {
	distuv.Rander
}

// NewLinearUV creates and returns a new LinearUV, with weights drawn
// from the distribution defined by rand
func NewLinearUV(rand distuv.Rander) LinearUV {
	if rand == nil {
		panic("rand cannot be nil")
	}
	return LinearUV{rand}
}

// Initialize initializes a vector of weights using values drawn from
// a univariate distribution
func (l LinearUV) Initialize(weights *mat.VecDense) {
	if weights == nil {
		return
	}

	backingData := weights.RawVector().Data
	for i := range backingData {
		backingData[i] = l.Rand()
	}
}
