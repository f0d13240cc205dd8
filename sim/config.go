package sim

import (
	"fmt"
	"math"
)

// DefaultMinProb is the truncation threshold below which proxels are discarded.
const DefaultMinProb = 1e-12

// DefaultProgressEvery is the step interval between progress log lines.
const DefaultProgressEvery = 100

// DefaultSeed seeds the extraction coin flips when no seed is given.
const DefaultSeed int64 = 42

// RunConfig groups the parameters of one solver run.
type RunConfig struct {
	TotalTime     float64 // simulated time T (must be > 0)
	StepSize      float64 // discretization step dt (must be > 0)
	MinProb       float64 // truncation threshold (0 disables truncation)
	Horizon       int     // age bound; 0 = derived from Steps()
	ProgressEvery int     // steps between progress logs; 0 disables
	Seed          int64   // seed for the extraction coin flips
}

// NewRunConfig creates a RunConfig with default threshold, progress interval and seed.
func NewRunConfig(totalTime, stepSize float64) RunConfig {
	return RunConfig{
		TotalTime:     totalTime,
		StepSize:      stepSize,
		MinProb:       DefaultMinProb,
		ProgressEvery: DefaultProgressEvery,
		Seed:          DefaultSeed,
	}
}

// Steps returns k_max = round(TotalTime / StepSize). The sweep runs k = 1 .. k_max+1.
func (c RunConfig) Steps() int {
	return int(math.Floor(c.TotalTime/c.StepSize + 0.5))
}

// EffectiveHorizon returns the age bound used for id encoding and clamping.
// An unset Horizon derives from k_max, with a minimum of 1.
func (c RunConfig) EffectiveHorizon() int {
	if c.Horizon > 0 {
		return c.Horizon
	}
	return max(c.Steps(), 1)
}

// Validate checks the run parameters.
func (c RunConfig) Validate() error {
	if !(c.StepSize > 0) || math.IsInf(c.StepSize, 0) {
		return fmt.Errorf("%w: step size must be a positive finite number, got %v", ErrInvalidRunConfig, c.StepSize)
	}
	if !(c.TotalTime > 0) || math.IsInf(c.TotalTime, 0) {
		return fmt.Errorf("%w: total time must be a positive finite number, got %v", ErrInvalidRunConfig, c.TotalTime)
	}
	if !(c.MinProb >= 0) || c.MinProb >= 1 {
		return fmt.Errorf("%w: truncation threshold must be in [0, 1), got %v", ErrInvalidRunConfig, c.MinProb)
	}
	if c.Horizon < 0 {
		return fmt.Errorf("%w: horizon must be >= 0, got %d", ErrInvalidRunConfig, c.Horizon)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress interval must be >= 0, got %d", ErrInvalidRunConfig, c.ProgressEvery)
	}
	return nil
}
