// Package tdlambda implements linear TD(λ) control with CMAC tile
// coding: SARSA(λ) and Watkins' Q(λ)
package tdlambda

import "fmt"

// Target determines which bootstrap target the learner uses: the
// action value of the actually-taken next action (SARSA, on-policy) or
// the maximum action value in the next state (Q-learning, off-policy).
// The target is fixed at construction.
type Target int

const (
	Sarsa Target = iota
	QLearning
)

func (t Target) String() string {
	switch t {
	case Sarsa:
		return "Sarsa"
	case QLearning:
		return "QLearning"
	default:
		return "Unknown"
	}
}

// ParseTarget returns the Target named by a string, as used in
// configuration files and command line flags
func ParseTarget(name string) (Target, error) {
	switch name {
	case "sarsa":
		return Sarsa, nil
	case "qlearning":
		return QLearning, nil
	}
	return Sarsa, fmt.Errorf("no such target %q, expected one of "+
		"{sarsa, qlearning}", name)
}

// TraceMode determines how eligibility traces of active features are
// refreshed on each step: set to 1 (replace) or incremented by 1
// (accumulate). Replacing traces bounds trace growth on revisited
// features and is the default.
type TraceMode int

const (
	ReplaceTraces TraceMode = iota
	AccumulateTraces
)

func (m TraceMode) String() string {
	switch m {
	case ReplaceTraces:
		return "Replace"
	case AccumulateTraces:
		return "Accumulate"
	default:
		return "Unknown"
	}
}

// ParseTraceMode returns the TraceMode named by a string
func ParseTraceMode(name string) (TraceMode, error) {
	switch name {
	case "replace":
		return ReplaceTraces, nil
	case "accumulate":
		return AccumulateTraces, nil
	}
	return ReplaceTraces, fmt.Errorf("no such trace mode %q, expected one "+
		"of {replace, accumulate}", name)
}

// Config represents a configuration for the TdLambda agent
type Config struct {
	// Tilings is the number of overlapping tilings laid over the
	// state space
	Tilings int

	// Bins is the number of tiles along each state dimension
	Bins []int

	// Offsets optionally fixes the per-tiling, per-dimension offset
	// fractions explicitly. When nil, offsets are sampled uniformly
	// from [0, 1) using the construction seed and then frozen.
	Offsets [][]float64

	LearningRate float64 // α
	TraceDecay   float64 // λ
	TraceMode    TraceMode
	Target       Target
	Epsilon      float64 // ε for the behaviour policy
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Tilings < 1 {
		return fmt.Errorf("cannot have less than 1 tiling")
	}
	if len(c.Bins) == 0 {
		return fmt.Errorf("bins per dimension must be specified")
	}
	if c.Offsets != nil && len(c.Offsets) != c.Tilings {
		return fmt.Errorf("explicit offsets must specify one slice per "+
			"tiling: \n\thave (%d) \n\twant (%d)", len(c.Offsets), c.Tilings)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive")
	}
	if c.TraceDecay < 0 || c.TraceDecay > 1 {
		return fmt.Errorf("trace decay must be in [0, 1]")
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1]")
	}
	return nil
}
