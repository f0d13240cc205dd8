package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRunConfig_Defaults(t *testing.T) {
	cfg := NewRunConfig(100, 4)

	assert.Equal(t, DefaultMinProb, cfg.MinProb)
	assert.Equal(t, DefaultProgressEvery, cfg.ProgressEvery)
	assert.Equal(t, DefaultSeed, cfg.Seed)
	assert.Equal(t, 0, cfg.Horizon)
	assert.NoError(t, cfg.Validate())
}

func TestRunConfig_Steps_RoundsToNearest(t *testing.T) {
	tests := []struct {
		total, dt float64
		want      int
	}{
		{100, 4, 25},
		{10, 3, 3},
		{11, 2, 6}, // 5.5 rounds up
		{1, 4, 0},
		{60, 0.5, 120},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewRunConfig(tt.total, tt.dt).Steps(), "T=%g dt=%g", tt.total, tt.dt)
	}
}

func TestRunConfig_EffectiveHorizon(t *testing.T) {
	cfg := NewRunConfig(100, 4)
	assert.Equal(t, 25, cfg.EffectiveHorizon(), "derived from k_max")

	cfg.Horizon = 100
	assert.Equal(t, 100, cfg.EffectiveHorizon(), "explicit horizon wins")

	short := NewRunConfig(1, 4)
	assert.Equal(t, 1, short.EffectiveHorizon(), "never below 1")
}

func TestRunConfig_Validate_Rejects(t *testing.T) {
	base := NewRunConfig(100, 4)
	tests := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"zero step", func(c *RunConfig) { c.StepSize = 0 }},
		{"negative step", func(c *RunConfig) { c.StepSize = -1 }},
		{"NaN step", func(c *RunConfig) { c.StepSize = math.NaN() }},
		{"infinite step", func(c *RunConfig) { c.StepSize = math.Inf(1) }},
		{"zero time", func(c *RunConfig) { c.TotalTime = 0 }},
		{"negative threshold", func(c *RunConfig) { c.MinProb = -1e-3 }},
		{"threshold of one", func(c *RunConfig) { c.MinProb = 1 }},
		{"negative horizon", func(c *RunConfig) { c.Horizon = -1 }},
		{"negative progress", func(c *RunConfig) { c.ProgressEvery = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, ErrInvalidRunConfig), "got %v", err)
		})
	}
}

func TestRunConfig_Validate_ZeroThresholdDisablesTruncation(t *testing.T) {
	cfg := NewRunConfig(10, 1)
	cfg.MinProb = 0
	assert.NoError(t, cfg.Validate())
}
