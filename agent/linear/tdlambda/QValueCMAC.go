package tdlambda

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gocmac/tilecoder"
	"github.com/samuelfneumann/gocmac/utils/matutils"
	"github.com/samuelfneumann/gocmac/utils/matutils/initializers/weights"
)

// NoAction indicates that no next action exists for an update, either
// because the transition is terminal or because the episode was cut
// off before another action was selected.
const NoAction int = -1

// QValueCMAC is a linear action-value function over CMAC tile-coded
// features, together with an eligibility trace vector and the TD(λ)
// update rule that mutates both.
//
// The weight and trace vectors are owned exclusively by the QValueCMAC
// instance and are mutated only by Update and EndEpisode on the
// calling goroutine. Independent learners must each own an independent
// QValueCMAC.
//
// The effective step size of updates is the configured learning rate
// divided by the number of tilings, so that the magnitude of a full
// update to a state-action value is independent of how many tilings
// are used.
type QValueCMAC struct {
	coder *tilecoder.TileCoder

	weights *mat.VecDense
	traces  *mat.VecDense

	alpha      float64 // learning rate / number of tilings
	discount   float64 // γ
	traceDecay float64 // λ
	traceMode  TraceMode
	target     Target
}

// NewQValueCMAC creates a new QValueCMAC over the argument tile coder.
// Weights are initialized by init; traces start at zero.
func NewQValueCMAC(coder *tilecoder.TileCoder, learningRate, discount,
	traceDecay float64, traceMode TraceMode, target Target,
	init weights.Initializer) (*QValueCMAC, error) {
	if learningRate <= 0 {
		return nil, fmt.Errorf("tdlambda: learning rate must be positive")
	}
	if discount < 0 || discount > 1 {
		return nil, fmt.Errorf("tdlambda: discount must be in [0, 1]")
	}
	if traceDecay < 0 || traceDecay > 1 {
		return nil, fmt.Errorf("tdlambda: trace decay must be in [0, 1]")
	}

	weightVec := mat.NewVecDense(coder.VecLength(), nil)
	if init != nil {
		init.Initialize(weightVec)
	}
	traceVec := mat.NewVecDense(coder.VecLength(), nil)

	alpha := learningRate / float64(coder.NumTilings())

	return &QValueCMAC{coder, weightVec, traceVec, alpha, discount,
		traceDecay, traceMode, target}, nil
}

// Value returns the estimated action value of the argument state and
// action: the sum of weights at the active features.
func (q *QValueCMAC) Value(state mat.Vector, action int) float64 {
	value := 0.0
	for _, feature := range q.coder.Encode(state, action) {
		value += q.weights.AtVec(feature)
	}
	return value
}

// ActionValues returns the estimated value of every action in the
// argument state
func (q *QValueCMAC) ActionValues(state mat.Vector) *mat.VecDense {
	combos := q.coder.EncodeTiles(state)
	numActions := q.coder.NumActions()

	values := mat.NewVecDense(numActions, nil)
	for action := 0; action < numActions; action++ {
		value := 0.0
		for tiling, combo := range combos {
			value += q.weights.AtVec(q.coder.Index(tiling, action, combo))
		}
		values.SetVec(action, value)
	}
	return values
}

// NumActions returns the number of available actions
func (q *QValueCMAC) NumActions() int {
	return q.coder.NumActions()
}

// GreedyAction returns the action with the highest estimated value in
// the argument state, ties broken by the first encountered index
func (q *QValueCMAC) GreedyAction(state mat.Vector) int {
	return matutils.MaxVec(q.ActionValues(state))
}

// Update performs one TD(λ) update for the transition (state, action,
// reward, nextState) and returns the TD error.
//
// The bootstrap value is Q(nextState, nextAction) for a Sarsa target
// and max over actions of Q(nextState, ·) for a QLearning target; it
// is zero when terminal is true. Passing NoAction as nextAction is
// legal when the transition is terminal or when no further action was
// selected; a Sarsa target then falls back to the greedy bootstrap.
//
// Eligibility traces are decayed by γλ, then refreshed for the active
// features according to the trace mode. Replacing traces also clears
// the traces of the same tiles under every other action, so that
// credit for a tile flows only to the action most recently taken in
// it. For a QLearning target, taking a non-greedy nextAction clears
// all traces after the weight update (Watkins' cutoff), since
// subsequent rewards no longer reflect the greedy policy being
// evaluated.
func (q *QValueCMAC) Update(state mat.Vector, action int, reward float64,
	nextState mat.Vector, nextAction int, terminal bool) float64 {
	greedy := NoAction

	// Compute the bootstrap value of the next state
	bootstrap := 0.0
	if !terminal {
		greedy = q.GreedyAction(nextState)

		bootstrapAction := greedy
		if q.target == Sarsa && nextAction != NoAction {
			bootstrapAction = nextAction
		}
		bootstrap = q.Value(nextState, bootstrapAction)
	}

	delta := reward + q.discount*bootstrap - q.Value(state, action)

	// Decay all traces, then refresh the active features
	q.traces.ScaleVec(q.discount*q.traceDecay, q.traces)

	combos := q.coder.EncodeTiles(state)
	for tiling, combo := range combos {
		feature := q.coder.Index(tiling, action, combo)

		switch q.traceMode {
		case AccumulateTraces:
			q.traces.SetVec(feature, q.traces.AtVec(feature)+1.0)
		default:
			for a := 0; a < q.coder.NumActions(); a++ {
				q.traces.SetVec(q.coder.Index(tiling, a, combo), 0.0)
			}
			q.traces.SetVec(feature, 1.0)
		}
	}

	// Gradient step along the traces
	q.weights.AddScaledVec(q.weights, q.alpha*delta, q.traces)

	// Watkins' cutoff for off-policy traces
	if q.target == QLearning && !terminal && nextAction != NoAction &&
		nextAction != greedy {
		q.traces.Zero()
	}

	return delta
}

// EndEpisode clears all eligibility traces. It must be called at every
// episode boundary so that no credit flows between episodes.
func (q *QValueCMAC) EndEpisode() {
	q.traces.Zero()
}

// Weights returns the weight vector of the value function. The caller
// may serialize it as an opaque array keyed by feature index, but must
// not mutate it while learning is in progress.
func (q *QValueCMAC) Weights() *mat.VecDense {
	return q.weights
}
