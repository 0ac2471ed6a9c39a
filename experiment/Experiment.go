// Package experiment implements functionality for running an
// experiment
package experiment

import (
	"github.com/samuelfneumann/gocmac/experiment/trackers"
	ts "github.com/samuelfneumann/gocmac/timestep"
)

// Experiment outlines structs that can run experiments. Experiments
// track environment TimeSteps, sending each TimeStep to their
// registered Trackers, which cache data in RAM to be later saved to
// disk with Save(). The Run() method runs episodes until the maximum
// timestep limit is reached. The RunEpisode() method runs a single
// episode.
type Experiment interface {
	Run()
	RunEpisode() bool // Returns whether the step limit was reached

	// Save all tracked data to disk
	Save() error

	// Register adds a new Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t trackers.Tracker)

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)
}
