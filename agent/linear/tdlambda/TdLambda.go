package tdlambda

import (
	"fmt"

	"github.com/samuelfneumann/gocmac/agent"
	"github.com/samuelfneumann/gocmac/agent/linear/policy"
	"github.com/samuelfneumann/gocmac/environment"
	"github.com/samuelfneumann/gocmac/tilecoder"
	"github.com/samuelfneumann/gocmac/utils/matutils/initializers/weights"
)

// TdLambda implements online TD(λ) control with CMAC tile coding and
// linear function approximation. Actions selected by this algorithm
// will always be enumerated as (0, 1, 2, ... N) where N is the
// maximum possible action.
//
// The behaviour policy is ε-greedy over the learned action values.
// Whether the learner evaluates that behaviour (SARSA(λ)) or the
// greedy policy (Watkins' Q(λ)) is determined by the Target in the
// Config.
type TdLambda struct {
	agent.Learner
	agent.Policy // Behaviour
	Target       agent.Policy
	seed         uint64
}

// New creates a new TdLambda agent acting in and learning from the
// argument environment. The discount factor is taken from the
// environment's discount specification. Weights are initialized by
// init.
func New(env environment.Environment, config Config,
	init weights.Initializer, seed uint64) (*TdLambda, error) {
	// Ensure environment has discrete actions
	if env.ActionSpec().Cardinality != environment.Discrete {
		return nil, fmt.Errorf("tdlambda: cannot use non-discrete actions")
	}
	if env.ActionSpec().LowerBound.Len() > 1 {
		return nil, fmt.Errorf("tdlambda: actions must be 1-dimensional")
	}
	if env.ActionSpec().LowerBound.AtVec(0) != 0.0 {
		return nil, fmt.Errorf("tdlambda: actions must be enumerated " +
			"starting from 0")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("tdlambda: invalid configuration: %v", err)
	}

	numActions := int(env.ActionSpec().UpperBound.AtVec(0)) + 1
	obsSpec := env.ObservationSpec()

	// Construct the tile coder over the environment's observation
	// bounds, with explicit offsets when the config fixes them and
	// seeded random offsets otherwise
	var coder *tilecoder.TileCoder
	var err error
	if config.Offsets != nil {
		coder, err = tilecoder.New(obsSpec.LowerBound, obsSpec.UpperBound,
			config.Bins, numActions, config.Offsets)
	} else {
		coder, err = tilecoder.NewRandomOffsets(obsSpec.LowerBound,
			obsSpec.UpperBound, config.Bins, config.Tilings, numActions,
			seed)
	}
	if err != nil {
		return nil, fmt.Errorf("tdlambda: %v", err)
	}

	discount := env.DiscountSpec().UpperBound.AtVec(0)

	valueFn, err := NewQValueCMAC(coder, config.LearningRate, discount,
		config.TraceDecay, config.TraceMode, config.Target, init)
	if err != nil {
		return nil, err
	}

	behaviour := policy.NewEGreedy(config.Epsilon, seed, valueFn)
	target := policy.NewGreedy(seed, valueFn)
	learner := NewLearner(valueFn)

	return &TdLambda{learner, behaviour, target, seed}, nil
}

// ValueFn returns the agent's action-value function. The weight vector
// it exposes may be serialized by the caller for checkpointing.
func (t *TdLambda) ValueFn() *QValueCMAC {
	return t.Learner.(*Learner).valueFn
}
