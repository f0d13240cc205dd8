package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/proxel-sim/sim/hazard"
)

const overheatYAML = `
name: overheat
states: [HPM, LPM]
initial: HPM
run:
  total_time: 100
  step_size: 4
  min_prob: 1.0e-10
  horizon: 100
  seed: 7
transitions:
  - name: overheat
    from: HPM
    to: LPM
    hazard:
      type: weibull
      params: {scale: 55, shape: 4}
  - from: LPM
    to: HPM
    hazard:
      type: uniform
      params: {a: 9, b: 11}
`

func TestParseModelFile_ValidModel(t *testing.T) {
	// GIVEN a complete model file
	mf, err := ParseModelFile([]byte(overheatYAML))
	require.NoError(t, err)

	// THEN run parameters are carried over, including explicit optional ones
	cfg := mf.RunConfig()
	assert.Equal(t, 100.0, cfg.TotalTime)
	assert.Equal(t, 4.0, cfg.StepSize)
	assert.Equal(t, 1e-10, cfg.MinProb)
	assert.Equal(t, 100, cfg.Horizon)
	assert.Equal(t, int64(7), cfg.Seed)

	// AND the model builds with the declared transitions
	m, err := mf.Build(cfg.StepSize)
	require.NoError(t, err)
	assert.Equal(t, "overheat", m.Name)
	require.Len(t, m.Transitions(0), 1)
	assert.Equal(t, hazard.Weibull{Scale: 55, Shape: 4}, m.Transitions(0)[0].Hazard)
	assert.Equal(t, "LPM->HPM", m.Transitions(1)[0].Name)
}

func TestModelFile_RunConfig_DefaultsForAbsentFields(t *testing.T) {
	mf, err := ParseModelFile([]byte("name: x\nstates: [A]\ninitial: A\nrun: {total_time: 10, step_size: 1}\n"))
	require.NoError(t, err)

	cfg := mf.RunConfig()
	assert.Equal(t, DefaultMinProb, cfg.MinProb)
	assert.Equal(t, DefaultSeed, cfg.Seed)
	assert.Equal(t, 0, cfg.Horizon)
}

func TestParseModelFile_StrictFields(t *testing.T) {
	// GIVEN a typo in a field name
	data := "name: x\nstates: [A]\ninitial: A\nrun: {total_time: 10, stepsize: 1}\n"

	// WHEN parsed
	_, err := ParseModelFile([]byte(data))

	// THEN the unknown field is rejected
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stepsize")
}

func TestParseModelFile_NoStates(t *testing.T) {
	_, err := ParseModelFile([]byte("name: x\ninitial: A\n"))
	assert.ErrorIs(t, err, ErrEmptyModel)
}

func TestModelFile_Build_Errors(t *testing.T) {
	exp := hazard.Spec{Type: "exponential", Params: map[string]float64{"rate": 1}}
	tests := []struct {
		name    string
		tr      TransitionSpec
		wantErr string
	}{
		{"unknown source", TransitionSpec{From: "Q", To: "A", Hazard: exp}, "unknown state"},
		{"unknown target", TransitionSpec{Name: "t", From: "A", To: "Q", Hazard: exp}, "transition t: to"},
		{"unknown clock", TransitionSpec{From: "A", To: "B", Clock: "wall", Hazard: exp}, "unknown clock"},
		{"unknown hazard", TransitionSpec{From: "A", To: "B", Hazard: hazard.Spec{Type: "pareto"}}, `unknown hazard type "pareto"`},
		{"missing parameter", TransitionSpec{From: "A", To: "B", Hazard: hazard.Spec{Type: "uniform", Params: map[string]float64{"a": 1}}}, `parameter "b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mf := &ModelFile{Name: "m", States: []string{"A", "B"}, Initial: "A", Transitions: []TransitionSpec{tt.tr}}
			_, err := mf.Build(1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestModelFile_Build_MemoryClockAndReset(t *testing.T) {
	mf := &ModelFile{
		Name: "m", States: []string{"A", "B"}, Initial: "A",
		Transitions: []TransitionSpec{
			{From: "A", To: "B", Clock: "memory", Hazard: hazard.Spec{Type: "exponential", Params: map[string]float64{"rate": 1}}},
			{From: "B", To: "A", ResetMemory: true, Hazard: hazard.Spec{Type: "deterministic", Params: map[string]float64{"at": 2}}},
		},
	}
	m, err := mf.Build(0.5)
	require.NoError(t, err)

	assert.True(t, m.UsesMemory())
	assert.Equal(t, ClockMemory, m.Transitions(0)[0].Clock)
	assert.True(t, m.Transitions(1)[0].ResetMemory)
	assert.Equal(t, hazard.Deterministic{Delay: 2, StepSize: 0.5}, m.Transitions(1)[0].Hazard)
}

func TestLoadModelFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overheat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overheatYAML), 0o644))

	mf, err := LoadModelFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"HPM", "LPM"}, mf.States)

	_, err = LoadModelFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading model file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("states: [A]\nbogus: 1\n"), 0o644))
	_, err = LoadModelFile(bad)
	assert.ErrorContains(t, err, bad)
}
