package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inference-sim/proxel-sim/sim/hazard"
)

// presets are built-in models selectable by name.
var presets = map[string]func() *ModelFile{
	"overheat": overheatPreset,
	"repair":   repairPreset,
}

// overheatPreset is a machine alternating between a high-performance mode, left
// when it overheats, and a low-performance mode, left once it has cooled down.
func overheatPreset() *ModelFile {
	return &ModelFile{
		Name:    "overheat",
		States:  []string{"HPM", "LPM"},
		Initial: "HPM",
		Run:     RunSpec{TotalTime: 100, StepSize: 4},
		Transitions: []TransitionSpec{
			{Name: "overheat", From: "HPM", To: "LPM",
				Hazard: hazard.Spec{Type: "weibull", Params: map[string]float64{"scale": 55, "shape": 4}}},
			{Name: "cooldown", From: "LPM", To: "HPM",
				Hazard: hazard.Spec{Type: "uniform", Params: map[string]float64{"a": 9, "b": 11}}},
		},
	}
}

// repairPreset is a component that degrades, fails and is repaired. Wear-out
// reads the memory clock, so it keeps counting through the degraded state until
// a completed repair resets it.
func repairPreset() *ModelFile {
	return &ModelFile{
		Name:    "repair",
		States:  []string{"up", "degraded", "down"},
		Initial: "up",
		Run:     RunSpec{TotalTime: 50, StepSize: 1},
		Transitions: []TransitionSpec{
			{Name: "degrade", From: "up", To: "degraded",
				Hazard: hazard.Spec{Type: "lognormal", Params: map[string]float64{"mu": 2.5, "sigma": 0.4}}},
			{Name: "wearout", From: "up", To: "down", Clock: "memory",
				Hazard: hazard.Spec{Type: "weibull", Params: map[string]float64{"scale": 40, "shape": 3}}},
			{Name: "fail", From: "degraded", To: "down",
				Hazard: hazard.Spec{Type: "normal", Params: map[string]float64{"mean": 8, "stddev": 2}}},
			{Name: "service", From: "degraded", To: "up",
				Hazard: hazard.Spec{Type: "exponential", Params: map[string]float64{"rate": 0.05}}},
			{Name: "repair", From: "down", To: "up", ResetMemory: true,
				Hazard: hazard.Spec{Type: "deterministic", Params: map[string]float64{"at": 5}}},
		},
	}
}

// ListPresets returns the names of the built-in models in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of the named built-in model.
func Preset(name string) (*ModelFile, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q; valid presets: %s", name, strings.Join(ListPresets(), ", "))
	}
	return build(), nil
}
