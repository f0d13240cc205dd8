package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModelFile_Preset(t *testing.T) {
	mf, err := resolveModelFile("", "repair")
	require.NoError(t, err)
	assert.Equal(t, "repair", mf.Name)
}

func TestResolveModelFile_FileWinsOverPreset(t *testing.T) {
	// GIVEN a model file on disk
	path := filepath.Join(t.TempDir(), "m.yaml")
	data := "name: coin\nstates: [heads, tails]\ninitial: heads\nrun: {total_time: 4, step_size: 1}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	// WHEN both a file and a preset are given
	mf, err := resolveModelFile(path, "overheat")

	// THEN the file is used
	require.NoError(t, err)
	assert.Equal(t, "coin", mf.Name)
}

func TestResolveModelFile_Errors(t *testing.T) {
	_, err := resolveModelFile("", "nope")
	assert.ErrorContains(t, err, "unknown preset")

	_, err = resolveModelFile(filepath.Join(t.TempDir(), "absent.yaml"), "overheat")
	assert.ErrorContains(t, err, "reading model file")
}
