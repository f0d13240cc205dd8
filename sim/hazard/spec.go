package hazard

import (
	"fmt"
	"sort"
)

// Spec describes a hazard by distribution name and named parameters, as written in
// model files:
//
//	hazard:
//	  type: weibull
//	  params: {scale: 55, shape: 4}
type Spec struct {
	Type   string             `yaml:"type" json:"type"`
	Params map[string]float64 `yaml:"params" json:"params"`
}

// Types lists the accepted Spec.Type values.
func Types() []string {
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// required maps each distribution to its mandatory parameters.
var required = map[string][]string{
	"exponential":   {"rate"},
	"deterministic": {"at"},
	"uniform":       {"a", "b"},
	"weibull":       {"scale", "shape"},
	"normal":        {"mean", "stddev"},
	"lognormal":     {"mu", "sigma"},
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("hazard requires parameter %q", k)
		}
	}
	return nil
}

// New builds a Hazard from a Spec. stepSize is needed by the deterministic hazard,
// whose rate is expressed per step.
func New(spec Spec, stepSize float64) (Hazard, error) {
	keys, ok := required[spec.Type]
	if !ok {
		return nil, fmt.Errorf("unknown hazard type %q", spec.Type)
	}
	if err := requireParam(spec.Params, keys...); err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Type, err)
	}
	p := spec.Params

	switch spec.Type {
	case "exponential":
		return Exponential{Lambda: p["rate"]}, nil
	case "deterministic":
		if stepSize <= 0 {
			return nil, fmt.Errorf("deterministic: step size must be positive, got %g", stepSize)
		}
		return Deterministic{Delay: p["at"], StepSize: stepSize}, nil
	case "uniform":
		if p["b"] <= p["a"] {
			return nil, fmt.Errorf("uniform: b (%g) must exceed a (%g)", p["b"], p["a"])
		}
		return Uniform{Min: p["a"], Max: p["b"]}, nil
	case "weibull":
		// offset is optional; a missing key reads as 0
		return Weibull{Scale: p["scale"], Shape: p["shape"], Offset: p["offset"]}, nil
	case "normal":
		return Normal{Mean: p["mean"], StdDev: p["stddev"]}, nil
	default: // lognormal
		return LogNormal{Mu: p["mu"], Sigma: p["sigma"]}, nil
	}
}
