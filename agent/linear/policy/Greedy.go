package policy

import "github.com/samuelfneumann/gocmac/agent"

// NewGreedy creates a new greedy policy over an action-value function
func NewGreedy(seed uint64, valueFn agent.ActionValuer) *EGreedy {
	return NewEGreedy(0.0, seed, valueFn)
}
