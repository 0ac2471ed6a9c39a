// Package trackers implements Trackers, which track and save data
// generated in an experiment
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/gocmac/timestep"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished. Experiments send each TimeStep to their
// Trackers using the Track() method; the Tracker then determines
// which data from the TimeStep it caches and saves.
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []float64

	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode data: %v", err)
	}

	return data, nil
}
