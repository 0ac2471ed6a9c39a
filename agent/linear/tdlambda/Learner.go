package tdlambda

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gocmac/timestep"
)

// Learner implements the update functionality for TD(λ) control over a
// QValueCMAC value function.
//
// Both SARSA(λ) and Watkins' Q(λ) need to know which action is
// actually executed from the next state before the update for a
// transition can be completed: SARSA bootstraps off that action, and
// Q(λ) must cut its traces when that action is exploratory. The
// Learner therefore holds each transition pending until the next
// action is observed, and completes the final transition of an episode
// immediately, since no further action follows it.
type Learner struct {
	valueFn  *QValueCMAC
	step     timestep.TimeStep
	action   int
	nextStep timestep.TimeStep
	pending  bool
	tdError  float64
}

// NewLearner creates a new Learner updating the argument value
// function
func NewLearner(valueFn *QValueCMAC) *Learner {
	return &Learner{valueFn: valueFn, action: NoAction}
}

// ObserveFirst observes and records the first episodic timestep
func (l *Learner) ObserveFirst(t timestep.TimeStep) {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)", t.Number)
	}
	l.step = timestep.TimeStep{}
	l.action = NoAction
	l.nextStep = t
	l.pending = false

	// Traces must be exactly zero before the first step of an episode
	l.valueFn.EndEpisode()
}

// Observe observes and records any timestep other than the first
// timestep. If an update is pending from the previous step, the
// argument action is the action executed from that transition's next
// state, so the pending update is completed first.
func (l *Learner) Observe(action mat.Vector, nextStep timestep.TimeStep) {
	if action.Len() != 1 {
		fmt.Fprintf(os.Stderr, "Warning: value-based methods should not "+
			"have multi-dimensional actions (action dim = %d)", action.Len())
	}
	a := int(action.AtVec(0))

	if l.pending {
		l.tdError = l.valueFn.Update(l.step.Observation, l.action,
			l.nextStep.Reward, l.nextStep.Observation, a, false)
		l.pending = false
	}

	l.step = l.nextStep
	l.action = a
	l.nextStep = nextStep
}

// Step updates the weights of the value function. Mid-episode
// transitions are held pending until the next action is observed; the
// final transition of an episode is updated immediately, with no
// bootstrap when a terminal state was reached.
func (l *Learner) Step() {
	if !l.nextStep.Last() {
		l.pending = true
		return
	}

	terminal := l.nextStep.TerminalEnd()
	l.tdError = l.valueFn.Update(l.step.Observation, l.action,
		l.nextStep.Reward, l.nextStep.Observation, NoAction, terminal)
	l.pending = false
}

// TdError returns the TD error of the last completed update
func (l *Learner) TdError() float64 {
	return l.tdError
}

// EndEpisode performs cleanup at the end of an episode, clearing all
// eligibility traces
func (l *Learner) EndEpisode() {
	l.pending = false
	l.valueFn.EndEpisode()
}
