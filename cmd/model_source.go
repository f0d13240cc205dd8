package cmd

import (
	"github.com/sirupsen/logrus"

	sim "github.com/inference-sim/proxel-sim/sim"
)

// resolveModelFile loads the model file at path, or the named preset when path is empty.
func resolveModelFile(path, preset string) (*sim.ModelFile, error) {
	if path != "" {
		logrus.Infof("Loading model file %s", path)
		return sim.LoadModelFile(path)
	}
	logrus.Infof("Using built-in model %q", preset)
	return sim.Preset(preset)
}
