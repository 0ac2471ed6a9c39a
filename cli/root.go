// Package cli defines the command line interface for running CMAC
// tile coding experiments
package cli

import "github.com/spf13/cobra"

var (
	seed     uint64
	maxSteps uint
	saveDir  string
)

// GetRootCommand returns the root command line argument parser, with
// a subcommand per environment
func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "gocmac",
		Short: "Linear TD(λ) control with CMAC tile coding",
	}
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 192382,
		"Seed for tiling offsets, starting states, and action selection")
	rootCommand.PersistentFlags().UintVar(&maxSteps, "steps", 100_000,
		"Total number of environment steps to run")
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s",
		"results", "Save the result data in the specified folder")
	rootCommand.AddCommand(MountainCarCommand())
	return rootCommand
}
