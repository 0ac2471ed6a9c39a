package cli

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/gocmac/agent/linear/tdlambda"
	"github.com/samuelfneumann/gocmac/environment"
	"github.com/samuelfneumann/gocmac/environment/mountaincar"
	"github.com/samuelfneumann/gocmac/experiment"
	"github.com/samuelfneumann/gocmac/experiment/trackers"
	"github.com/samuelfneumann/gocmac/utils/matutils/initializers/weights"
)

// MountainCarCommand returns the command which trains a TD(λ) agent
// on the Mountain Car environment and saves its learning curves
func MountainCarCommand() *cobra.Command {
	var (
		tilings      int
		positionBins int
		velocityBins int
		learningRate float64
		discount     float64
		traceDecay   float64
		epsilon      float64
		initialValue float64
		episodeSteps int
		target       string
		traceMode    string
	)

	cmd := &cobra.Command{
		Use:   "mountaincar",
		Short: "Train a TD(λ) agent with tile coding on Mountain Car",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetRule, err := tdlambda.ParseTarget(target)
			if err != nil {
				return err
			}
			mode, err := tdlambda.ParseTraceMode(traceMode)
			if err != nil {
				return err
			}

			// Create the environment. Episodes start near the valley
			// floor with negligible velocity.
			bounds := r1.Interval{Min: -0.6, Max: -0.4}
			velocities := r1.Interval{Min: 0.0, Max: 0.0}
			starter := environment.NewUniformStarter(
				[]r1.Interval{bounds, velocities}, seed)
			task := mountaincar.NewGoal(starter, episodeSteps,
				mountaincar.GoalPosition)
			env, _ := mountaincar.NewDiscrete(task, discount)

			// Create the learning algorithm
			config := tdlambda.Config{
				Tilings:      tilings,
				Bins:         []int{positionBins, velocityBins},
				LearningRate: learningRate,
				TraceDecay:   traceDecay,
				TraceMode:    mode,
				Target:       targetRule,
				Epsilon:      epsilon,
			}
			init := weights.NewLinearUV(weights.NewConstantUV(
				initialValue / float64(tilings)))
			agent, err := tdlambda.New(env, config, init, seed)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(saveDir, 0o755); err != nil {
				return err
			}

			// Run the experiment
			returns := trackers.NewReturn(path.Join(saveDir, "returns.bin"))
			lengths := trackers.NewEpisodeLength(
				path.Join(saveDir, "lengths.bin"))
			exp := experiment.NewOnline(env, agent, maxSteps, returns,
				lengths)
			exp.Run()
			if err := exp.Save(); err != nil {
				return err
			}

			fmt.Printf("\nEpisodes finished: %d\n", len(returns.Data()))

			name := fmt.Sprintf("%v(λ=%v)", targetRule, traceDecay)
			if err := plotSeries(path.Join(saveDir, "returns.png"),
				"Mountain Car", "Return", []string{name},
				[][]float64{returns.Data()}); err != nil {
				return err
			}
			return plotSeries(path.Join(saveDir, "lengths.png"),
				"Mountain Car", "Steps to goal", []string{name},
				[][]float64{lengths.Data()})
		},
	}

	cmd.Flags().IntVar(&tilings, "tilings", 10, "Number of tilings")
	cmd.Flags().IntVar(&positionBins, "position-bins", 8,
		"Tiles along the position dimension of each tiling")
	cmd.Flags().IntVar(&velocityBins, "velocity-bins", 9,
		"Tiles along the velocity dimension of each tiling")
	cmd.Flags().Float64Var(&learningRate, "learning-rate", 0.5,
		"Learning rate α, divided evenly among the tilings")
	cmd.Flags().Float64Var(&discount, "discount", 1.0, "Discount factor γ")
	cmd.Flags().Float64Var(&traceDecay, "trace-decay", 0.9,
		"Eligibility trace decay λ")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0.1,
		"Probability of a random action under the behaviour policy")
	cmd.Flags().Float64Var(&initialValue, "initial-value", 0.0,
		"Initial value estimate of every state-action pair")
	cmd.Flags().IntVar(&episodeSteps, "episode-steps", 1000,
		"Maximum number of steps per episode")
	cmd.Flags().StringVar(&target, "target", "sarsa",
		"Learning target, one of {sarsa, qlearning}")
	cmd.Flags().StringVar(&traceMode, "trace-mode", "replace",
		"Eligibility trace mode, one of {replace, accumulate}")

	return cmd
}
