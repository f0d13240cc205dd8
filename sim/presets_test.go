package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPresets_Sorted(t *testing.T) {
	assert.Equal(t, []string{"overheat", "repair"}, ListPresets())
}

func TestPreset_Unknown(t *testing.T) {
	_, err := Preset("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overheat, repair")
}

func TestPreset_ReturnsFreshCopy(t *testing.T) {
	a, err := Preset("overheat")
	require.NoError(t, err)
	a.States[0] = "mutated"
	a.Transitions[0].Hazard.Params["scale"] = 1

	b, err := Preset("overheat")
	require.NoError(t, err)
	assert.Equal(t, "HPM", b.States[0])
	assert.Equal(t, 55.0, b.Transitions[0].Hazard.Params["scale"])
}

func TestPresets_BuildAndValidate(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			mf, err := Preset(name)
			require.NoError(t, err)
			cfg := mf.RunConfig()
			require.NoError(t, cfg.Validate())
			m, err := mf.Build(cfg.StepSize)
			require.NoError(t, err)
			assert.Equal(t, name, m.Name)
		})
	}
}

func TestRepairPreset_UsesMemoryClock(t *testing.T) {
	mf, err := Preset("repair")
	require.NoError(t, err)
	m, err := mf.Build(mf.Run.StepSize)
	require.NoError(t, err)
	assert.True(t, m.UsesMemory())
}
