// Package agent defines an agent interface
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gocmac/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns weights, and a
// Policy which chooses actions in each state. The Policy chooses which
// actions are taken, and the Learner uses these actions to update the
// Policy.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how weights are
// updated.
type Learner interface {
	// Step performs a single update to the learner
	Step()

	// Observe records that an action lead to some timestep
	Observe(action mat.Vector, nextStep timestep.TimeStep)

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep)

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// TdErrorer is a Learner that can report the TD error of its most
// recent update
type TdErrorer interface {
	Learner

	// TdError returns the TD error of the last completed update
	TdError() float64
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. Agents usually have a
// target and a behaviour policy. For a given agent, the Policy and
// Learner should reference the same weights so that any changes the
// Learner makes to the weights are reflected in the actions the Policy
// chooses.
type Policy interface {
	SelectAction(t timestep.TimeStep) mat.Vector
}

// ActionValuer computes action values from state observations. Value
// functions using linear function approximation satisfy this
// interface so that policies can select actions without knowing how
// values are represented.
type ActionValuer interface {
	// ActionValues returns the estimated value of every action in the
	// argument state
	ActionValues(state mat.Vector) *mat.VecDense

	// NumActions returns the number of available actions
	NumActions() int
}
