package tdlambda

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/gocmac/environment"
	"github.com/samuelfneumann/gocmac/environment/mountaincar"
	"github.com/samuelfneumann/gocmac/utils/matutils/initializers/weights"
)

func newMountainCar(seed uint64) environment.Environment {
	positions := r1.Interval{Min: -0.6, Max: -0.4}
	velocities := r1.Interval{Min: 0.0, Max: 0.0}
	starter := environment.NewUniformStarter(
		[]r1.Interval{positions, velocities}, seed)
	task := mountaincar.NewGoal(starter, 200, mountaincar.GoalPosition)
	env, _ := mountaincar.NewDiscrete(task, 1.0)
	return env
}

func zeroInit() weights.Initializer {
	return weights.NewLinearUV(weights.NewZeroUV())
}

func validConfig() Config {
	return Config{
		Tilings:      8,
		Bins:         []int{8, 8},
		LearningRate: 0.1,
		TraceDecay:   0.9,
		TraceMode:    ReplaceTraces,
		Target:       Sarsa,
		Epsilon:      0.1,
	}
}

// TestNewFromEnvironment ensures an agent can be constructed directly
// from an environment's specifications.
func TestNewFromEnvironment(t *testing.T) {
	env := newMountainCar(1823)

	agent, err := New(env, validConfig(), zeroInit(), 1823)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	if got := agent.ValueFn().NumActions(); got != 3 {
		t.Errorf("expected 3 actions from environment spec, got %d", got)
	}
}

// TestNewExplicitOffsets checks that fixed offsets take precedence
// over random offset generation and that their dimensions are
// validated against the observation space.
func TestNewExplicitOffsets(t *testing.T) {
	env := newMountainCar(1823)

	config := validConfig()
	config.Tilings = 2
	config.Offsets = [][]float64{{0.0, 0.0}, {0.5, 0.5}}
	if _, err := New(env, config, zeroInit(), 1823); err != nil {
		t.Errorf("valid explicit offsets rejected: %v", err)
	}

	config.Offsets = [][]float64{{0.0}, {0.5}}
	if _, err := New(env, config, zeroInit(), 1823); err == nil {
		t.Error("expected error for offsets with wrong dimensionality")
	}
}

func TestNewInvalidConfig(t *testing.T) {
	env := newMountainCar(1823)

	invalid := []struct {
		name   string
		modify func(*Config)
	}{
		{"no tilings", func(c *Config) { c.Tilings = 0 }},
		{"no bins", func(c *Config) { c.Bins = nil }},
		{"negative learning rate", func(c *Config) { c.LearningRate = -0.1 }},
		{"trace decay above one", func(c *Config) { c.TraceDecay = 1.5 }},
		{"epsilon above one", func(c *Config) { c.Epsilon = 1.1 }},
	}

	for _, test := range invalid {
		config := validConfig()
		test.modify(&config)
		if _, err := New(env, config, zeroInit(), 1823); err == nil {
			t.Errorf("expected error for config with %v", test.name)
		}
	}
}
