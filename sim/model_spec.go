package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/proxel-sim/sim/hazard"
)

// ModelFile is the YAML form of a model and its run parameters.
// All fields must be listed to satisfy KnownFields(true) strict parsing.
type ModelFile struct {
	Name        string           `yaml:"name"`
	States      []string         `yaml:"states"`
	Initial     string           `yaml:"initial"`
	Run         RunSpec          `yaml:"run"`
	Transitions []TransitionSpec `yaml:"transitions"`
}

// RunSpec carries the run parameters of a ModelFile. Pointer fields distinguish
// an explicit zero from an absent value.
type RunSpec struct {
	TotalTime float64  `yaml:"total_time"`
	StepSize  float64  `yaml:"step_size"`
	MinProb   *float64 `yaml:"min_prob,omitempty"`
	Horizon   int      `yaml:"horizon,omitempty"`
	Seed      *int64   `yaml:"seed,omitempty"`
}

// TransitionSpec describes one transition by state names.
type TransitionSpec struct {
	Name        string      `yaml:"name,omitempty"`
	From        string      `yaml:"from"`
	To          string      `yaml:"to"`
	Clock       string      `yaml:"clock,omitempty"`
	ResetMemory bool        `yaml:"reset_memory,omitempty"`
	Hazard      hazard.Spec `yaml:"hazard"`
}

// ParseModelFile decodes a YAML model with strict field checking.
func ParseModelFile(data []byte) (*ModelFile, error) {
	var mf ModelFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&mf); err != nil {
		return nil, fmt.Errorf("parsing model YAML: %w", err)
	}
	if len(mf.States) == 0 {
		return nil, ErrEmptyModel
	}
	return &mf, nil
}

// LoadModelFile reads and parses a YAML model file.
func LoadModelFile(path string) (*ModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	mf, err := ParseModelFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mf, nil
}

// RunConfig returns the run parameters, with defaults for absent optional fields.
func (mf *ModelFile) RunConfig() RunConfig {
	cfg := NewRunConfig(mf.Run.TotalTime, mf.Run.StepSize)
	cfg.Horizon = mf.Run.Horizon
	if mf.Run.MinProb != nil {
		cfg.MinProb = *mf.Run.MinProb
	}
	if mf.Run.Seed != nil {
		cfg.Seed = *mf.Run.Seed
	}
	return cfg
}

// Build constructs the Model. stepSize parameterizes deterministic hazards.
func (mf *ModelFile) Build(stepSize float64) (*Model, error) {
	m, err := NewModel(mf.Name, mf.States, mf.Initial)
	if err != nil {
		return nil, err
	}
	for i, ts := range mf.Transitions {
		label := ts.Name
		if label == "" {
			label = fmt.Sprintf("#%d (%s->%s)", i, ts.From, ts.To)
		}
		from, err := m.StateIndex(ts.From)
		if err != nil {
			return nil, fmt.Errorf("transition %s: from: %w", label, err)
		}
		to, err := m.StateIndex(ts.To)
		if err != nil {
			return nil, fmt.Errorf("transition %s: to: %w", label, err)
		}
		clock, err := ParseClock(ts.Clock)
		if err != nil {
			return nil, fmt.Errorf("transition %s: %w", label, err)
		}
		h, err := hazard.New(ts.Hazard, stepSize)
		if err != nil {
			return nil, fmt.Errorf("transition %s: %w", label, err)
		}
		if err := m.AddTransition(Transition{
			Name:        ts.Name,
			From:        from,
			To:          to,
			Hazard:      h,
			Clock:       clock,
			ResetMemory: ts.ResetMemory,
		}); err != nil {
			return nil, fmt.Errorf("transition %s: %w", label, err)
		}
	}
	return m, nil
}
