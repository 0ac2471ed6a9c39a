package weights

// ConstantUV implements the distuv.Rander interface, always returning
// the same value. It supports optimistic weight initialization, where
// every weight starts at some constant so that early value estimates
// exceed attainable returns and drive exploration.
type ConstantUV struct {
	value float64
}

// NewConstantUV returns a new ConstantUV which always draws value
func NewConstantUV(value float64) ConstantUV {
	return ConstantUV{value}
}

// Rand draws a random number from the interval [value, value]
func (c ConstantUV) Rand() float64 {
	return c.value
}
