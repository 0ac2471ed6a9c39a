package mountaincar

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gocmac/environment"
	ts "github.com/samuelfneumann/gocmac/timestep"
)

// Discrete implements the discrete action Mountain Car environment.
//
// Actions are 1-dimensional and discrete in (0, 1, 2). Actions
// determine in which direction to apply full accelerating force to the
// car:
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Do nothing
//	  2		Accelerate right
//
// Actions outside this range result in a panic.
//
// Discrete implements the environment.Environment interface.
type Discrete struct {
	*base
}

// NewDiscrete creates a new discrete action Mountain Car environment
// with the argument task
func NewDiscrete(t env.Task, discount float64) (*Discrete, ts.TimeStep) {
	baseEnv, firstStep := newBase(t, discount)

	return &Discrete{baseEnv}, firstStep
}

// ActionSpec returns the action specification of the environment
func (m *Discrete) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// Step takes one environmental step given action a and returns the
// next timestep and a bool indicating whether or not the episode has
// ended. Legal actions are in the set {0, 1, 2}; actions outside this
// range cause a panic.
func (m *Discrete) Step(a mat.Vector) (ts.TimeStep, bool) {
	if a.Len() > ActionDims {
		panic("mountaincar: actions should be 1-dimensional")
	}

	action := a.AtVec(0)

	intAction := int(action)
	if intAction > MaxDiscreteAction || intAction < MinDiscreteAction {
		panic(fmt.Sprintf("mountaincar: illegal action %v ∉ (0, 1, 2)",
			intAction))
	}

	// Actions {0, 1, 2} map to forces {-1, 0, 1}
	force := action - 1.0

	newState := m.nextState(force)

	return m.update(a, newState)
}
