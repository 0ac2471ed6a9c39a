// Package policy implements policies over action-value functions
// using linear function approximation
package policy

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gocmac/agent"
	"github.com/samuelfneumann/gocmac/timestep"
	"github.com/samuelfneumann/gocmac/utils/matutils"
)

// EGreedy implements an ε-greedy policy over an action-value function.
// With probability ε a random action is selected; otherwise the
// greedy action is selected, ties broken by the first encountered
// index.
type EGreedy struct {
	valueFn agent.ActionValuer
	epsilon float64
	seed    rand.Source
}

// NewEGreedy constructs a new EGreedy policy, where e = epsilon is the
// probability with which a random action is selected. Action values
// are computed by the argument valueFn.
func NewEGreedy(e float64, seed uint64, valueFn agent.ActionValuer) *EGreedy {
	if e < 0.0 || e > 1.0 {
		panic("epsilon must be in [0, 1]")
	}
	source := rand.NewSource(seed)

	return &EGreedy{valueFn, e, source}
}

// SelectAction selects an action from the ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) mat.Vector {
	actionValues := p.valueFn.ActionValues(t.Observation)
	numActions := p.valueFn.NumActions()

	// Find the greedy action
	greedyAction := matutils.MaxVec(actionValues)

	// Calculate the ε probability of choosing any action at random
	prob := p.epsilon / float64(numActions)
	actionProbabilities := make([]float64, numActions)
	for i := 0; i < numActions; i++ {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilities[greedyAction] += (1.0 - p.epsilon)

	// Construct a categorical distribution over actions using the
	// action probabilities and sample from it
	dist := distuv.NewCategorical(actionProbabilities, p.seed)

	return mat.NewVecDense(1, []float64{dist.Rand()})
}
