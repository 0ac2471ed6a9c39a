package tdlambda

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gocmac/timestep"
)

func action(a int) mat.Vector {
	return mat.NewVecDense(1, []float64{float64(a)})
}

// TestLearnerEpisode drives a Learner through a scripted two-step
// episode and checks the update arithmetic. With a single shared
// feature, γ = 1, λ = 0, and unit learning rate, the first transition
// (reward -1) drives the weight to -1 and the terminal transition then
// has TD error -1 + 1 = 0.
func TestLearnerEpisode(t *testing.T) {
	valueFn := newTabularValueFn(t, 1, 1.0, 1.0, 0.0, ReplaceTraces, Sarsa)
	learner := NewLearner(valueFn)

	first := timestep.New(timestep.First, 0.0, 1.0, state(0.1), 0)
	learner.ObserveFirst(first)

	mid := timestep.New(timestep.Mid, -1.0, 1.0, state(0.5), 1)
	learner.Observe(action(0), mid)
	learner.Step()

	// The first transition is pending until the next action is known
	if got := valueFn.Value(state(0.1), 0); got != 0.0 {
		t.Fatalf("update should be pending before next action, value %v",
			got)
	}

	last := timestep.New(timestep.Last, -1.0, 1.0, state(0.9), 2)
	last.SetEnd(timestep.TerminalStateReached)
	learner.Observe(action(0), last)

	// Observing the next action completes the first transition:
	// δ = -1 + Q - Q = -1, so the shared weight becomes -1
	if got := valueFn.Value(state(0.1), 0); got != -1.0 {
		t.Fatalf("first transition should set value to -1, got %v", got)
	}

	learner.Step()

	// Terminal transition: δ = -1 + 0 - (-1) = 0
	if got := learner.TdError(); math.Abs(got) > 1e-12 {
		t.Errorf("terminal TD error should be 0, got %v", got)
	}

	learner.EndEpisode()
	for i := 0; i < valueFn.traces.Len(); i++ {
		if valueFn.traces.AtVec(i) != 0.0 {
			t.Errorf("trace %d should be zero after EndEpisode, got %v", i,
				valueFn.traces.AtVec(i))
		}
	}
}

// TestLearnerTimeoutBootstraps checks that an episode cut off by a
// step limit still bootstraps off the final state instead of treating
// it as terminal.
func TestLearnerTimeoutBootstraps(t *testing.T) {
	valueFn := newTabularValueFn(t, 1, 1.0, 1.0, 0.0, ReplaceTraces, Sarsa)
	valueFn.weights.SetVec(0, 2.0)
	learner := NewLearner(valueFn)

	first := timestep.New(timestep.First, 0.0, 1.0, state(0.1), 0)
	learner.ObserveFirst(first)

	cutoff := timestep.New(timestep.Last, -1.0, 1.0, state(0.5), 1)
	cutoff.SetEnd(timestep.Timeout)
	learner.Observe(action(0), cutoff)
	learner.Step()

	// δ = -1 + Q(s', greedy) - Q(s, a) = -1 + 2 - 2 = -1
	if got := learner.TdError(); math.Abs(got-(-1.0)) > 1e-12 {
		t.Errorf("timeout TD error should bootstrap: want -1, got %v", got)
	}
}

// TestLearnerObserveFirstClearsTraces checks that traces left over
// from a previous episode are cleared when a new episode begins.
func TestLearnerObserveFirstClearsTraces(t *testing.T) {
	valueFn := newTabularValueFn(t, 1, 1.0, 1.0, 0.9, ReplaceTraces, Sarsa)
	learner := NewLearner(valueFn)

	valueFn.Update(state(0.5), 0, 0.0, state(0.5), 0, false)

	first := timestep.New(timestep.First, 0.0, 1.0, state(0.1), 0)
	learner.ObserveFirst(first)

	for i := 0; i < valueFn.traces.Len(); i++ {
		if valueFn.traces.AtVec(i) != 0.0 {
			t.Errorf("trace %d should be zero at episode start, got %v", i,
				valueFn.traces.AtVec(i))
		}
	}
}
