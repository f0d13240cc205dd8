package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/inference-sim/proxel-sim/sim"
)

// parseRunFlags registers the run flags on a fresh flag set and parses args.
func parseRunFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerRunFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestApplyRunFlags_UnsetFlagsKeepModelValues(t *testing.T) {
	// GIVEN model run parameters that differ from every flag default
	base := sim.RunConfig{TotalTime: 100, StepSize: 4, MinProb: 1e-9, Horizon: 50, ProgressEvery: 7, Seed: 3}

	// WHEN no flags are given
	cfg := applyRunFlags(parseRunFlags(t), base)

	// THEN nothing is overwritten by flag defaults
	assert.Equal(t, base, cfg)
}

func TestApplyRunFlags_ChangedFlagsOverride(t *testing.T) {
	base := sim.NewRunConfig(100, 4)

	cfg := applyRunFlags(parseRunFlags(t, "--dt=2", "--horizon=80", "--seed=9", "--min-prob=0"), base)

	assert.Equal(t, 100.0, cfg.TotalTime, "unchanged")
	assert.Equal(t, 2.0, cfg.StepSize)
	assert.Equal(t, 80, cfg.Horizon)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 0.0, cfg.MinProb, "explicit zero disables truncation")
}

func TestApplyRunFlags_TimeAndProgress(t *testing.T) {
	cfg := applyRunFlags(parseRunFlags(t, "--time=40", "--progress-every=0"), sim.NewRunConfig(100, 4))

	assert.Equal(t, 40.0, cfg.TotalTime)
	assert.Equal(t, 10, cfg.Steps())
	assert.Equal(t, 0, cfg.ProgressEvery)
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "presets", "describe"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
	for _, flag := range []string{"model", "preset", "time", "dt", "min-prob", "horizon", "seed", "out", "format", "metrics-file", "plot", "trace"} {
		assert.NotNil(t, runCmd.Flags().Lookup(flag), "run is missing --%s", flag)
	}
}
